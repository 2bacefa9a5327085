// Package service
package service

import (
	"slices"
	"strings"
	"testing"

	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
)

// fakeSiteOperation keeps sites in a slice with naive slug handling.
type fakeSiteOperation struct {
	sites  []*operation.FlyingSite
	nextId uint
}

func slugOf(title operation.LocalizedText) string {
	if title.Bg != "" {
		return title.Bg
	}
	return title.En
}

func (f *fakeSiteOperation) CreateSite(site *operation.FlyingSite) error {
	if err := operation.ValidateSite(site); err != nil {
		return err
	}
	slug := slugOf(site.Title)
	for _, existing := range f.sites {
		if existing.Url == slug {
			return operation.ErrSlugTaken
		}
	}
	f.nextId++
	site.ID = f.nextId
	site.Url = slug
	f.sites = append(f.sites, site)
	return nil
}

func (f *fakeSiteOperation) GetSiteById(id uint) (*operation.FlyingSite, error) {
	for _, site := range f.sites {
		if site.ID == id {
			return site, nil
		}
	}
	return nil, operation.ErrSiteNotFound
}

func (f *fakeSiteOperation) GetSiteByUrl(url string) (*operation.FlyingSite, error) {
	for _, site := range f.sites {
		if site.Url == url {
			return site, nil
		}
	}
	return nil, operation.ErrSiteNotFound
}

func (f *fakeSiteOperation) GetSites(windDirection string) ([]*operation.FlyingSite, error) {
	if windDirection == "" {
		return f.sites, nil
	}
	result := make([]*operation.FlyingSite, 0)
	for _, site := range f.sites {
		if slices.Contains(site.WindDirection, windDirection) {
			result = append(result, site)
		}
	}
	return result, nil
}

func (f *fakeSiteOperation) UpdateSite(id uint, patch *operation.SitePatch) (*operation.FlyingSite, error) {
	site, err := f.GetSiteById(id)
	if err != nil {
		return nil, err
	}
	url := site.Url
	site.ApplyPatch(patch)
	site.Url = url
	if err := operation.ValidateSite(site); err != nil {
		return nil, err
	}
	return site, nil
}

func (f *fakeSiteOperation) DeleteSite(id uint) error {
	for index, site := range f.sites {
		if site.ID == id {
			f.sites = append(f.sites[:index], f.sites[index+1:]...)
			return nil
		}
	}
	return operation.ErrSiteNotFound
}

func (f *fakeSiteOperation) MigrateSiteUrls() (*operation.SlugMigrationReport, error) {
	return &operation.SlugMigrationReport{Skipped: []string{}}, nil
}

func newTestSiteService(t *testing.T) (*SiteService, *fakeSiteOperation) {
	t.Helper()
	siteOperation := &fakeSiteOperation{}
	return NewSiteService(&testLogger{}, testHttpConfig(), siteOperation), siteOperation
}

func publishedPayload(bg string, directions []string) SitePayload {
	longitude, latitude := 23.3, 42.6
	return SitePayload{
		Title:         &operation.LocalizedText{Bg: bg},
		Location:      &operation.GeoPoint{Longitude: &longitude, Latitude: &latitude},
		WindDirection: &directions,
	}
}

func TestCreateSiteValidationSurfacesAllFields(t *testing.T) {
	service, _ := newTestSiteService(t)

	response := service.CreateSite(&RequestSiteCreate{
		Uid:     1,
		Payload: SitePayload{WindDirection: &[]string{"NNX"}},
	})
	if response.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q; expected VALIDATION_ERROR", response.Code)
	}
	for _, field := range []string{"title", "windDirection(NNX)"} {
		if !strings.Contains(response.Message, field) {
			t.Errorf("message %q misses field %q", response.Message, field)
		}
	}
}

func TestCreateSiteSlugConflictStatus(t *testing.T) {
	service, _ := newTestSiteService(t)

	first := service.CreateSite(&RequestSiteCreate{Uid: 1, Payload: publishedPayload("Сопот", []string{"N"})})
	if first.Code != SuccessCreateSite.StatusName {
		t.Fatalf("first create failed: %q", first.Code)
	}
	second := service.CreateSite(&RequestSiteCreate{Uid: 1, Payload: publishedPayload("Сопот", []string{"S"})})
	if second.Code != ErrSlugConflict.StatusName {
		t.Errorf("second create code = %q; expected slug conflict", second.Code)
	}
}

func TestGetSiteBySlugAndById(t *testing.T) {
	service, _ := newTestSiteService(t)
	created := service.CreateSite(&RequestSiteCreate{Uid: 1, Payload: publishedPayload("Витоша", []string{"N"})})
	if created.Data == nil {
		t.Fatalf("create failed: %q", created.Code)
	}

	bySlug := service.GetSite(&RequestSiteGet{Id: "Витоша"})
	if bySlug.Data == nil || bySlug.Data.Site.ID != created.Data.ID {
		t.Errorf("slug lookup failed: %q", bySlug.Code)
	}

	byId := service.GetSite(&RequestSiteGet{Id: "1"})
	if byId.Data == nil || byId.Data.CanonicalUrl != created.Data.Url {
		t.Errorf("id lookup failed or misses canonical url: %+v", byId)
	}
}

func TestGetSiteNotFound(t *testing.T) {
	service, _ := newTestSiteService(t)
	response := service.GetSite(&RequestSiteGet{Id: "липсва"})
	if response.Code != ErrSiteNotFound.StatusName {
		t.Errorf("code = %q; expected not found", response.Code)
	}
}

func TestUpdateSiteBySlug(t *testing.T) {
	service, _ := newTestSiteService(t)
	service.CreateSite(&RequestSiteCreate{Uid: 1, Payload: publishedPayload("Сопот", []string{"N"})})

	altitude := 1350.0
	response := service.UpdateSite(&RequestSiteUpdate{
		Uid:     1,
		Id:      "Сопот",
		Payload: SitePayload{Altitude: &altitude},
	})
	if response.Code != SuccessUpdateSite.StatusName {
		t.Fatalf("update failed: %q %q", response.Code, response.Message)
	}
	if response.Data.Altitude == nil || *response.Data.Altitude != 1350 {
		t.Errorf("altitude = %v; expected patched", response.Data.Altitude)
	}
	if response.Data.Title.Bg != "Сопот" {
		t.Errorf("title = %+v; expected unpatched", response.Data.Title)
	}
}

func TestDeleteSiteService(t *testing.T) {
	service, siteOperation := newTestSiteService(t)
	service.CreateSite(&RequestSiteCreate{Uid: 1, Payload: publishedPayload("Сопот", []string{"N"})})

	response := service.DeleteSite(&RequestSiteDelete{Uid: 1, Id: "Сопот"})
	if response.Code != SuccessDeleteSite.StatusName {
		t.Fatalf("delete failed: %q", response.Code)
	}
	if len(siteOperation.sites) != 0 {
		t.Errorf("sites = %d; expected empty", len(siteOperation.sites))
	}
}

func TestMigrateSiteUrlsRequiresAdmin(t *testing.T) {
	service, _ := newTestSiteService(t)

	denied := service.MigrateSiteUrls(&RequestSiteMigrate{Uid: 1})
	if denied.Code != ErrNoPermission.StatusName {
		t.Errorf("non-admin code = %q; expected forbidden", denied.Code)
	}

	allowed := service.MigrateSiteUrls(&RequestSiteMigrate{Uid: 1, IsSuperAdmin: true})
	if allowed.Code != SuccessMigrateUrls.StatusName {
		t.Errorf("admin code = %q; expected success", allowed.Code)
	}
}
