// Package controller
package controller

import (
	"net/http"

	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type SiteControllerInterface interface {
	ListSites(ctx echo.Context) error
	GetSite(ctx echo.Context) error
	CreateSite(ctx echo.Context) error
	UpdateSite(ctx echo.Context) error
	DeleteSite(ctx echo.Context) error
	MigrateSiteUrls(ctx echo.Context) error
}

type SiteController struct {
	logger  log.LoggerInterface
	service SiteServiceInterface
}

func NewSiteController(logger log.LoggerInterface, service SiteServiceInterface) *SiteController {
	return &SiteController{
		logger:  logger,
		service: service,
	}
}

func claimsOf(ctx echo.Context) *Claims {
	token := ctx.Get("user").(*jwt.Token)
	return token.Claims.(*Claims)
}

func (controller *SiteController) ListSites(ctx echo.Context) error {
	data := &RequestSiteList{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("SiteController.ListSites bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	return controller.service.ListSites(data).Response(ctx)
}

// GetSite serves one site by slug or legacy numeric id. A numeric id that
// resolves to a site with a slug answers with a permanent redirect to the
// canonical address instead of the entity.
func (controller *SiteController) GetSite(ctx echo.Context) error {
	data := &RequestSiteGet{Id: ctx.Param("id")}
	response := controller.service.GetSite(data)
	if response.HttpCode != Ok.Code() {
		return response.Response(ctx)
	}
	if _, numeric := operation.GetSiteId(data.Id).(operation.IntSiteId); numeric && response.Data.CanonicalUrl != "" {
		return ctx.Redirect(http.StatusMovedPermanently, "/api/site/"+response.Data.CanonicalUrl)
	}
	return response.Response(ctx)
}

func (controller *SiteController) CreateSite(ctx echo.Context) error {
	payload := &SitePayload{}
	if err := ctx.Bind(payload); err != nil {
		controller.logger.ErrorF("SiteController.CreateSite bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	claim := claimsOf(ctx)
	data := &RequestSiteCreate{Uid: claim.Uid, IsSuperAdmin: claim.IsSuperAdmin, Payload: *payload}
	return controller.service.CreateSite(data).Response(ctx)
}

func (controller *SiteController) UpdateSite(ctx echo.Context) error {
	payload := &SitePayload{}
	if err := ctx.Bind(payload); err != nil {
		controller.logger.ErrorF("SiteController.UpdateSite bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	claim := claimsOf(ctx)
	data := &RequestSiteUpdate{
		Uid:          claim.Uid,
		IsSuperAdmin: claim.IsSuperAdmin,
		Id:           ctx.Param("id"),
		Payload:      *payload,
	}
	return controller.service.UpdateSite(data).Response(ctx)
}

func (controller *SiteController) DeleteSite(ctx echo.Context) error {
	claim := claimsOf(ctx)
	data := &RequestSiteDelete{
		Uid:          claim.Uid,
		IsSuperAdmin: claim.IsSuperAdmin,
		Id:           ctx.Param("id"),
	}
	return controller.service.DeleteSite(data).Response(ctx)
}

func (controller *SiteController) MigrateSiteUrls(ctx echo.Context) error {
	claim := claimsOf(ctx)
	data := &RequestSiteMigrate{Uid: claim.Uid, IsSuperAdmin: claim.IsSuperAdmin}
	return controller.service.MigrateSiteUrls(data).Response(ctx)
}
