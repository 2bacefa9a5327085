package service

import (
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
)

// SitePayload mirrors the editable part of a flying site. Pointer fields
// distinguish "absent" from "set to empty" so the same shape serves both
// create and partial update.
type SitePayload struct {
	Title            *operation.LocalizedText   `json:"title"`
	Location         *operation.GeoPoint        `json:"location"`
	WindDirection    *[]string                  `json:"windDirection"`
	AccessOptions    *[]string                  `json:"accessOptions"`
	Altitude         *float64                   `json:"altitude"`
	GalleryImages    *[]*operation.GalleryImage `json:"galleryImages"`
	Tracklogs        *operation.LocalizedText   `json:"tracklogs"`
	LocalPilotsClubs *operation.LocalizedText   `json:"localPilotsClubs"`
	Accomodations    *operation.LocalizedText   `json:"accomodations"`
	Alternatives     *operation.LocalizedText   `json:"alternatives"`
	LandingFields    *operation.LocalizedText   `json:"landingFields"`
	Access           *operation.LocalizedText   `json:"access"`
}

// Patch converts a payload into the gateway patch shape.
func (payload *SitePayload) Patch() *operation.SitePatch {
	return &operation.SitePatch{
		Title:            payload.Title,
		Location:         payload.Location,
		WindDirection:    payload.WindDirection,
		AccessOptions:    payload.AccessOptions,
		Altitude:         payload.Altitude,
		GalleryImages:    payload.GalleryImages,
		Tracklogs:        payload.Tracklogs,
		LocalPilotsClubs: payload.LocalPilotsClubs,
		Accomodations:    payload.Accomodations,
		Alternatives:     payload.Alternatives,
		LandingFields:    payload.LandingFields,
		Access:           payload.Access,
	}
}

// Site builds a fresh entity from the payload.
func (payload *SitePayload) Site() *operation.FlyingSite {
	site := &operation.FlyingSite{}
	site.ApplyPatch(payload.Patch())
	return site
}

type RequestSiteList struct {
	WindDirection string `query:"windDirection"`
}

type ResponseSiteList struct {
	Items []*operation.FlyingSite `json:"items"`
}

type RequestSiteGet struct {
	Id string `param:"id"`
}

// ResponseSiteGet carries the canonical slug next to the entity so the
// transport layer can redirect legacy numeric links.
type ResponseSiteGet struct {
	Site         *operation.FlyingSite `json:"site"`
	CanonicalUrl string                `json:"canonicalUrl"`
}

type RequestSiteCreate struct {
	Uid          uint `json:"-"`
	IsSuperAdmin bool `json:"-"`
	Payload      SitePayload
}

type RequestSiteUpdate struct {
	Uid          uint   `json:"-"`
	IsSuperAdmin bool   `json:"-"`
	Id           string `param:"id"`
	Payload      SitePayload
}

type RequestSiteDelete struct {
	Uid          uint   `json:"-"`
	IsSuperAdmin bool   `json:"-"`
	Id           string `param:"id"`
}

type RequestSiteMigrate struct {
	Uid          uint `json:"-"`
	IsSuperAdmin bool `json:"-"`
}

type ResponseSiteMigrate struct {
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped"`
}

type SiteServiceInterface interface {
	ListSites(req *RequestSiteList) *ApiResponse[ResponseSiteList]
	GetSite(req *RequestSiteGet) *ApiResponse[ResponseSiteGet]
	CreateSite(req *RequestSiteCreate) *ApiResponse[operation.FlyingSite]
	UpdateSite(req *RequestSiteUpdate) *ApiResponse[operation.FlyingSite]
	DeleteSite(req *RequestSiteDelete) *ApiResponse[any]
	MigrateSiteUrls(req *RequestSiteMigrate) *ApiResponse[ResponseSiteMigrate]
}
