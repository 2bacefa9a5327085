// Package operation
package operation

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/flybg-dev/flyingsites/internal/utils"
)

var (
	// ErrSiteNotFound site does not exist
	ErrSiteNotFound = errors.New("site does not exist")
	// ErrSlugTaken another site already owns the derived url slug
	ErrSlugTaken = errors.New("site url slug is already taken")
)

// CompassDirections is the fixed 16-point compass enumeration used by WindDirection.
var CompassDirections = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// AccessMethods is the fixed enumeration of ways to reach a launch.
var AccessMethods = []string{"hike-and-fly", "car", "bus", "4x4", "chairlift"}

// ValidationError reports every violated field of a candidate site, not just the first.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) add(field string) {
	e.Fields = append(e.Fields, field)
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// ValidateSite checks a candidate FlyingSite against the entity schema.
// A site with both coordinates null is a draft and may have an empty wind rose.
func ValidateSite(site *FlyingSite) error {
	verr := &ValidationError{}
	if site.Title.Empty() {
		verr.add("title")
	}
	draft := site.Draft()
	if !draft {
		if !finite(site.Location.Longitude) {
			verr.add("location.longitude")
		}
		if !finite(site.Location.Latitude) {
			verr.add("location.latitude")
		}
		if len(site.WindDirection) == 0 {
			verr.add("windDirection")
		}
	}
	for _, direction := range site.WindDirection {
		if !slices.Contains(CompassDirections, direction) {
			verr.add(fmt.Sprintf("windDirection(%s)", direction))
		}
	}
	for _, access := range site.AccessOptions {
		if !slices.Contains(AccessMethods, access) {
			verr.add(fmt.Sprintf("accessOptions(%s)", access))
		}
	}
	if site.Altitude != nil && (*site.Altitude < 0 || math.IsNaN(*site.Altitude) || math.IsInf(*site.Altitude, 0)) {
		verr.add("altitude")
	}
	for index, image := range site.GalleryImages {
		if image == nil || image.Path == "" {
			verr.add(fmt.Sprintf("galleryImages[%d].path", index))
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// SitePatch carries a top-level partial update. nil pointers mean "leave unchanged".
// The url slug is never part of a patch; regenerating it is a maintenance operation.
type SitePatch struct {
	Title            *LocalizedText
	Location         *GeoPoint
	WindDirection    *[]string
	AccessOptions    *[]string
	Altitude         *float64
	GalleryImages    *[]*GalleryImage
	Tracklogs        *LocalizedText
	LocalPilotsClubs *LocalizedText
	Accomodations    *LocalizedText
	Alternatives     *LocalizedText
	LandingFields    *LocalizedText
	Access           *LocalizedText
}

// ApplyPatch merges the set fields of a patch into the site. Gallery rows
// get their position and owning site renumbered to match the new order.
func (site *FlyingSite) ApplyPatch(patch *SitePatch) {
	if patch.Title != nil {
		site.Title = *patch.Title
	}
	if patch.Location != nil {
		site.Location = *patch.Location
	}
	if patch.WindDirection != nil {
		site.WindDirection = *patch.WindDirection
	}
	if patch.AccessOptions != nil {
		site.AccessOptions = *patch.AccessOptions
	}
	if patch.Altitude != nil {
		site.Altitude = patch.Altitude
	}
	if patch.GalleryImages != nil {
		site.GalleryImages = *patch.GalleryImages
		for position, image := range site.GalleryImages {
			image.Position = position
			image.SiteId = site.ID
		}
	}
	if patch.Tracklogs != nil {
		site.Tracklogs = *patch.Tracklogs
	}
	if patch.LocalPilotsClubs != nil {
		site.LocalPilotsClubs = *patch.LocalPilotsClubs
	}
	if patch.Accomodations != nil {
		site.Accomodations = *patch.Accomodations
	}
	if patch.Alternatives != nil {
		site.Alternatives = *patch.Alternatives
	}
	if patch.LandingFields != nil {
		site.LandingFields = *patch.LandingFields
	}
	if patch.Access != nil {
		site.Access = *patch.Access
	}
}

// SlugMigrationReport summarizes an explicit url backfill run.
type SlugMigrationReport struct {
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped"`
}

type SiteId interface {
	GetSite(siteOperation SiteOperationInterface) (*FlyingSite, error)
}

// GetSiteId resolves a path parameter to either a legacy numeric id or a url slug.
func GetSiteId(idOrSlug string) SiteId {
	id := utils.StrToInt(idOrSlug, -1)
	if id <= 0 {
		return SlugSiteId(idOrSlug)
	}
	return IntSiteId(id)
}

type IntSiteId int
type SlugSiteId string

func (id IntSiteId) GetSite(siteOperation SiteOperationInterface) (*FlyingSite, error) {
	return siteOperation.GetSiteById(uint(id))
}

func (id SlugSiteId) GetSite(siteOperation SiteOperationInterface) (*FlyingSite, error) {
	return siteOperation.GetSiteByUrl(string(id))
}

// SiteOperationInterface is the single owner of FlyingSite mutations.
type SiteOperationInterface interface {
	// CreateSite validates the site, derives its url slug and persists it.
	// A colliding slug fails with ErrSlugTaken and leaves the existing holder untouched.
	CreateSite(site *FlyingSite) error
	// GetSiteById fetches a site by its primary id, when err is nil the site is valid
	GetSiteById(id uint) (site *FlyingSite, err error)
	// GetSiteByUrl fetches a site by its url slug, when err is nil the site is valid
	GetSiteByUrl(url string) (site *FlyingSite, err error)
	// GetSites returns sites in storage order, optionally restricted to a wind direction.
	GetSites(windDirection string) (sites []*FlyingSite, err error)
	// UpdateSite merges the provided top-level fields, validates the result and persists it.
	// The url slug is never regenerated here.
	UpdateSite(id uint, patch *SitePatch) (site *FlyingSite, err error)
	// DeleteSite removes a site by id, a missing id fails with ErrSiteNotFound
	DeleteSite(id uint) error
	// MigrateSiteUrls backfills missing url slugs, an explicit maintenance operation.
	MigrateSiteUrls() (*SlugMigrationReport, error)
}
