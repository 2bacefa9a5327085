// Package service
package service

import (
	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
)

type SiteService struct {
	logger        log.LoggerInterface
	config        *c.HttpServerConfig
	siteOperation operation.SiteOperationInterface
}

func NewSiteService(
	logger log.LoggerInterface,
	config *c.HttpServerConfig,
	siteOperation operation.SiteOperationInterface,
) *SiteService {
	return &SiteService{
		logger:        logger,
		config:        config,
		siteOperation: siteOperation,
	}
}

var (
	ErrTooManyImages = ApiStatus{StatusName: "TOO_MANY_IMAGES", Description: "too many gallery images", HttpCode: BadRequest}
	ErrTitleTooLong  = ApiStatus{StatusName: "TITLE_TOO_LONG", Description: "site title too long", HttpCode: BadRequest}
	SuccessListSites = ApiStatus{StatusName: "LIST_SITES_SUCCESS", Description: "sites fetched", HttpCode: Ok}
)

func (siteService *SiteService) checkPayloadLimits(payload *SitePayload) *ApiStatus {
	limits := siteService.config.Limits
	if payload.Title != nil &&
		(len(payload.Title.Bg) > limits.SiteTitleLengthMax || len(payload.Title.En) > limits.SiteTitleLengthMax) {
		return &ErrTitleTooLong
	}
	if payload.GalleryImages != nil && len(*payload.GalleryImages) > limits.GalleryImagesMax {
		return &ErrTooManyImages
	}
	return nil
}

func (siteService *SiteService) ListSites(req *RequestSiteList) *ApiResponse[ResponseSiteList] {
	sites, res := CallDBFuncAndCheckError[[]*operation.FlyingSite, ResponseSiteList](func() (*[]*operation.FlyingSite, error) {
		sites, err := siteService.siteOperation.GetSites(req.WindDirection)
		return &sites, err
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessListSites, Unsatisfied, &ResponseSiteList{Items: *sites})
}

var (
	SuccessGetSite = ApiStatus{StatusName: "GET_SITE_SUCCESS", Description: "site fetched", HttpCode: Ok}
)

// GetSite resolves either a url slug or a legacy numeric id. The canonical
// slug travels back with the entity so the transport layer can redirect
// legacy links.
func (siteService *SiteService) GetSite(req *RequestSiteGet) *ApiResponse[ResponseSiteGet] {
	if req.Id == "" {
		return NewApiResponse[ResponseSiteGet](&ErrLackParam, Unsatisfied, nil)
	}
	siteId := operation.GetSiteId(req.Id)
	site, res := CallDBFuncAndCheckError[operation.FlyingSite, ResponseSiteGet](func() (*operation.FlyingSite, error) {
		return siteId.GetSite(siteService.siteOperation)
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessGetSite, Unsatisfied, &ResponseSiteGet{
		Site:         site,
		CanonicalUrl: site.Url,
	})
}

var (
	SuccessCreateSite = ApiStatus{StatusName: "CREATE_SITE_SUCCESS", Description: "site created", HttpCode: Ok}
)

func (siteService *SiteService) CreateSite(req *RequestSiteCreate) *ApiResponse[operation.FlyingSite] {
	if res := siteService.checkPayloadLimits(&req.Payload); res != nil {
		return NewApiResponse[operation.FlyingSite](res, Unsatisfied, nil)
	}
	site := req.Payload.Site()
	if _, res := CallDBFuncAndCheckError[any, operation.FlyingSite](func() (*any, error) {
		return nil, siteService.siteOperation.CreateSite(site)
	}); res != nil {
		return res
	}
	siteService.logger.InfoF("Site %s created by uid %d", site.Url, req.Uid)
	return NewApiResponse(&SuccessCreateSite, Unsatisfied, site)
}

var (
	SuccessUpdateSite = ApiStatus{StatusName: "UPDATE_SITE_SUCCESS", Description: "site updated", HttpCode: Ok}
)

func (siteService *SiteService) UpdateSite(req *RequestSiteUpdate) *ApiResponse[operation.FlyingSite] {
	if req.Id == "" {
		return NewApiResponse[operation.FlyingSite](&ErrLackParam, Unsatisfied, nil)
	}
	if res := siteService.checkPayloadLimits(&req.Payload); res != nil {
		return NewApiResponse[operation.FlyingSite](res, Unsatisfied, nil)
	}

	siteId := operation.GetSiteId(req.Id)
	site, res := CallDBFuncAndCheckError[operation.FlyingSite, operation.FlyingSite](func() (*operation.FlyingSite, error) {
		return siteId.GetSite(siteService.siteOperation)
	})
	if res != nil {
		return res
	}

	updated, res := CallDBFuncAndCheckError[operation.FlyingSite, operation.FlyingSite](func() (*operation.FlyingSite, error) {
		return siteService.siteOperation.UpdateSite(site.ID, req.Payload.Patch())
	})
	if res != nil {
		return res
	}
	siteService.logger.InfoF("Site %s updated by uid %d", updated.Url, req.Uid)
	return NewApiResponse(&SuccessUpdateSite, Unsatisfied, updated)
}

var (
	SuccessDeleteSite = ApiStatus{StatusName: "DELETE_SITE_SUCCESS", Description: "site deleted", HttpCode: Ok}
)

func (siteService *SiteService) DeleteSite(req *RequestSiteDelete) *ApiResponse[any] {
	if req.Id == "" {
		return NewApiResponse[any](&ErrLackParam, Unsatisfied, nil)
	}
	siteId := operation.GetSiteId(req.Id)
	site, res := CallDBFuncAndCheckError[operation.FlyingSite, any](func() (*operation.FlyingSite, error) {
		return siteId.GetSite(siteService.siteOperation)
	})
	if res != nil {
		return res
	}
	if _, res := CallDBFuncAndCheckError[any, any](func() (*any, error) {
		return nil, siteService.siteOperation.DeleteSite(site.ID)
	}); res != nil {
		return res
	}
	siteService.logger.InfoF("Site %s deleted by uid %d", site.Url, req.Uid)
	return NewApiResponse[any](&SuccessDeleteSite, Unsatisfied, nil)
}

var (
	SuccessMigrateUrls = ApiStatus{StatusName: "MIGRATE_URLS_SUCCESS", Description: "url migration finished", HttpCode: Ok}
)

// MigrateSiteUrls backfills slugs for legacy records. Admin only.
func (siteService *SiteService) MigrateSiteUrls(req *RequestSiteMigrate) *ApiResponse[ResponseSiteMigrate] {
	if !req.IsSuperAdmin {
		return NewApiResponse[ResponseSiteMigrate](&ErrNoPermission, Unsatisfied, nil)
	}
	report, res := CallDBFuncAndCheckError[operation.SlugMigrationReport, ResponseSiteMigrate](func() (*operation.SlugMigrationReport, error) {
		return siteService.siteOperation.MigrateSiteUrls()
	})
	if res != nil {
		return res
	}
	siteService.logger.InfoF("Url migration by uid %d: %d updated, %d skipped", req.Uid, report.Updated, len(report.Skipped))
	return NewApiResponse(&SuccessMigrateUrls, Unsatisfied, &ResponseSiteMigrate{
		Updated: report.Updated,
		Skipped: report.Skipped,
	})
}
