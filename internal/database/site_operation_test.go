// Package database
package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&FlyingSite{}, &GalleryImage{}, &User{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func newTestSiteOperation(t *testing.T) *SiteOperation {
	t.Helper()
	return NewSiteOperation(newTestDatabase(t), 5*time.Second, &c.DatabaseConfig{})
}

func float(v float64) *float64 {
	return &v
}

func publishedSite(bg string, directions ...string) *FlyingSite {
	return &FlyingSite{
		Title:         LocalizedText{Bg: bg},
		Location:      GeoPoint{Longitude: float(23.3), Latitude: float(42.6)},
		WindDirection: directions,
	}
}

func TestCreateSiteDerivesSlug(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	site := publishedSite("Витоша", "N", "NE")
	if err := siteOperation.CreateSite(site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	if site.Url != "витоша" {
		t.Errorf("site url = %q; expected %q", site.Url, "витоша")
	}
	if site.ID == 0 {
		t.Error("site id not assigned")
	}
}

func TestCreateSiteSlugConflict(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	first := publishedSite("Сопот", "W")
	if err := siteOperation.CreateSite(first); err != nil {
		t.Fatalf("CreateSite first: %v", err)
	}

	second := publishedSite("Сопот", "S")
	if err := siteOperation.CreateSite(second); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("CreateSite second = %v; expected ErrSlugTaken", err)
	}

	holder, err := siteOperation.GetSiteById(first.ID)
	if err != nil {
		t.Fatalf("GetSiteById: %v", err)
	}
	if holder.Url != "сопот" {
		t.Errorf("existing holder url = %q; expected unchanged %q", holder.Url, "сопот")
	}
}

func TestCreateSiteValidation(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	site := &FlyingSite{
		Location:      GeoPoint{Longitude: float(23.3), Latitude: float(42.6)},
		WindDirection: []string{"NNX"},
	}
	err := siteOperation.CreateSite(site)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateSite = %v; expected ValidationError", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("validation fields = %v; expected title and windDirection(NNX)", verr.Fields)
	}
}

func TestGetSiteByIdAndSlugMatch(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	site := publishedSite("Клисура", "NW")
	site.Altitude = float(1340)
	if err := siteOperation.CreateSite(site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	byId, err := siteOperation.GetSiteById(site.ID)
	if err != nil {
		t.Fatalf("GetSiteById: %v", err)
	}
	bySlug, err := siteOperation.GetSiteByUrl(site.Url)
	if err != nil {
		t.Fatalf("GetSiteByUrl: %v", err)
	}
	if byId.ID != bySlug.ID || byId.Title != bySlug.Title || *byId.Altitude != *bySlug.Altitude {
		t.Errorf("id and slug lookups disagree: %+v vs %+v", byId, bySlug)
	}
}

func TestUpdateSitePatchRoundTrip(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	site := publishedSite("Сопот", "N")
	site.Altitude = float(1350)
	if err := siteOperation.CreateSite(site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	newDirections := []string{"S", "SW"}
	updated, err := siteOperation.UpdateSite(site.ID, &SitePatch{
		WindDirection: &newDirections,
		Tracklogs:     &LocalizedText{En: "xcontest links"},
	})
	if err != nil {
		t.Fatalf("UpdateSite: %v", err)
	}
	if updated.Url != "сопот" {
		t.Errorf("url changed on ordinary edit: %q", updated.Url)
	}

	fetched, err := siteOperation.GetSiteById(site.ID)
	if err != nil {
		t.Fatalf("GetSiteById: %v", err)
	}
	if len(fetched.WindDirection) != 2 || fetched.WindDirection[0] != "S" {
		t.Errorf("wind direction = %v; expected patched %v", fetched.WindDirection, newDirections)
	}
	if fetched.Tracklogs.En != "xcontest links" {
		t.Errorf("tracklogs = %+v; expected patched", fetched.Tracklogs)
	}
	if *fetched.Altitude != 1350 {
		t.Errorf("altitude = %v; expected unpatched 1350", *fetched.Altitude)
	}
	if fetched.Title.Bg != "Сопот" {
		t.Errorf("title = %+v; expected unpatched", fetched.Title)
	}
}

func TestUpdateSiteGalleryReplacement(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	site := publishedSite("Беклемето", "E")
	site.GalleryImages = []*GalleryImage{
		{Path: "images/a.jpg"},
		{Path: "images/b.jpg"},
	}
	if err := siteOperation.CreateSite(site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	replacement := []*GalleryImage{{Path: "images/c.jpg", Author: "pilot"}}
	if _, err := siteOperation.UpdateSite(site.ID, &SitePatch{GalleryImages: &replacement}); err != nil {
		t.Fatalf("UpdateSite: %v", err)
	}

	fetched, err := siteOperation.GetSiteById(site.ID)
	if err != nil {
		t.Fatalf("GetSiteById: %v", err)
	}
	if len(fetched.GalleryImages) != 1 || fetched.GalleryImages[0].Path != "images/c.jpg" {
		t.Errorf("gallery = %+v; expected single replacement image", fetched.GalleryImages)
	}
}

func TestGetSitesWindFilter(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	north := publishedSite("Витоша", "N", "NE")
	south := publishedSite("Сопот", "S", "SW")
	for _, site := range []*FlyingSite{north, south} {
		if err := siteOperation.CreateSite(site); err != nil {
			t.Fatalf("CreateSite: %v", err)
		}
	}

	filtered, err := siteOperation.GetSites("N")
	if err != nil {
		t.Fatalf("GetSites: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != north.ID {
		t.Errorf("filter N = %d sites; expected only the northern one", len(filtered))
	}

	empty, err := siteOperation.GetSites("WNW")
	if err != nil {
		t.Fatalf("GetSites: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("filter WNW = %d sites; expected none", len(empty))
	}

	all, err := siteOperation.GetSites("")
	if err != nil {
		t.Fatalf("GetSites: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered = %d sites; expected 2", len(all))
	}
}

func TestDeleteSite(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	site := publishedSite("Сопот", "S")
	if err := siteOperation.CreateSite(site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	if err := siteOperation.DeleteSite(site.ID); err != nil {
		t.Fatalf("DeleteSite: %v", err)
	}
	if _, err := siteOperation.GetSiteById(site.ID); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("GetSiteById after delete = %v; expected ErrSiteNotFound", err)
	}
	if err := siteOperation.DeleteSite(site.ID); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("DeleteSite twice = %v; expected ErrSiteNotFound", err)
	}
}

func TestMigrateSiteUrls(t *testing.T) {
	siteOperation := newTestSiteOperation(t)

	legacy := publishedSite("Враца", "W")
	if err := siteOperation.db.Create(legacy).Error; err != nil {
		t.Fatalf("seed legacy site: %v", err)
	}
	holder := publishedSite("Сопот", "N")
	if err := siteOperation.CreateSite(holder); err != nil {
		t.Fatalf("CreateSite holder: %v", err)
	}
	colliding := publishedSite("Сопот", "S")
	if err := siteOperation.db.Create(colliding).Error; err != nil {
		t.Fatalf("seed colliding site: %v", err)
	}

	report, err := siteOperation.MigrateSiteUrls()
	if err != nil {
		t.Fatalf("MigrateSiteUrls: %v", err)
	}
	if report.Updated != 1 {
		t.Errorf("updated = %d; expected 1", report.Updated)
	}
	if len(report.Skipped) != 1 {
		t.Errorf("skipped = %v; expected the colliding record", report.Skipped)
	}

	migrated, err := siteOperation.GetSiteById(legacy.ID)
	if err != nil {
		t.Fatalf("GetSiteById: %v", err)
	}
	if migrated.Url != "враца" {
		t.Errorf("migrated url = %q; expected %q", migrated.Url, "враца")
	}
}
