package operation

import (
	"time"
)

// LocalizedText carries the Bulgarian and English variants of a text field.
type LocalizedText struct {
	Bg string `gorm:"size:4096" json:"bg,omitempty"`
	En string `gorm:"size:4096" json:"en,omitempty"`
}

func (text LocalizedText) Empty() bool {
	return text.Bg == "" && text.En == ""
}

// GeoPoint is a launch coordinate pair. Both values nil marks a draft site.
type GeoPoint struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

type FlyingSite struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	Title            LocalizedText   `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Url              string          `gorm:"size:160;index" json:"url,omitempty"`
	Location         GeoPoint        `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	WindDirection    []string        `gorm:"serializer:json" json:"windDirection"`
	AccessOptions    []string        `gorm:"serializer:json" json:"accessOptions"`
	Altitude         *float64        `json:"altitude,omitempty"`
	GalleryImages    []*GalleryImage `gorm:"foreignKey:SiteId;references:ID" json:"galleryImages"`
	Tracklogs        LocalizedText   `gorm:"embedded;embeddedPrefix:tracklogs_" json:"tracklogs"`
	LocalPilotsClubs LocalizedText   `gorm:"embedded;embeddedPrefix:clubs_" json:"localPilotsClubs"`
	Accomodations    LocalizedText   `gorm:"embedded;embeddedPrefix:accomodations_" json:"accomodations"`
	Alternatives     LocalizedText   `gorm:"embedded;embeddedPrefix:alternatives_" json:"alternatives"`
	LandingFields    LocalizedText   `gorm:"embedded;embeddedPrefix:landing_" json:"landingFields"`
	Access           LocalizedText   `gorm:"embedded;embeddedPrefix:access_" json:"access"`
	CreatedAt        time.Time       `json:"-"`
	UpdatedAt        time.Time       `json:"-"`
}

// Draft reports whether the site has no coordinates yet.
func (site *FlyingSite) Draft() bool {
	return site.Location.Longitude == nil && site.Location.Latitude == nil
}

type GalleryImage struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	SiteId    uint      `gorm:"index;not null" json:"-"`
	Position  int       `gorm:"default:0;not null" json:"-"`
	Path      string    `gorm:"size:256;not null" json:"path"`
	Author    string    `gorm:"size:128" json:"author,omitempty"`
	Width     int       `gorm:"default:0" json:"width"`
	Height    int       `gorm:"default:0" json:"height"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type User struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	Email           string     `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Username        string     `gorm:"size:64;index" json:"username,omitempty"`
	Password        string     `gorm:"size:128" json:"-"`
	InvitationToken string     `gorm:"size:64;index" json:"-"`
	TokenExpiry     *time.Time `json:"-"`
	IsActive        bool       `gorm:"default:false;not null" json:"isActive"`
	IsSuperAdmin    bool       `gorm:"default:false;not null" json:"isSuperAdmin"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

// Pending reports whether the user still waits for activation.
func (user *User) Pending() bool {
	return !user.IsActive && user.Password == ""
}
