package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	"gorm.io/gorm"
)

type SiteOperation struct {
	config       *c.DatabaseConfig
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewSiteOperation(db *gorm.DB, queryTimeout time.Duration, config *c.DatabaseConfig) *SiteOperation {
	return &SiteOperation{config: config, db: db, queryTimeout: queryTimeout}
}

// isSlugTaken scans for another site already holding the slug. excludeId
// keeps a site from colliding with itself during migration.
func (siteOperation *SiteOperation) isSlugTaken(tx *gorm.DB, slug string, excludeId uint) (bool, error) {
	if tx == nil {
		tx = siteOperation.db
	}
	ctx, cancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
	defer cancel()

	var count int64
	err := tx.WithContext(ctx).
		Model(&FlyingSite{}).
		Where("url = ? AND id <> ?", slug, excludeId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (siteOperation *SiteOperation) CreateSite(site *FlyingSite) error {
	if err := ValidateSite(site); err != nil {
		return err
	}
	site.Url = Slugify(site.Title)
	for position, image := range site.GalleryImages {
		image.Position = position
	}
	return siteOperation.db.Transaction(func(tx *gorm.DB) error {
		taken, err := siteOperation.isSlugTaken(tx, site.Url, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}

		ctx, cancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
		defer cancel()
		return tx.WithContext(ctx).Create(site).Error
	})
}

func (siteOperation *SiteOperation) GetSiteById(id uint) (site *FlyingSite, err error) {
	site = &FlyingSite{}
	ctx, cancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
	defer cancel()
	err = siteOperation.db.WithContext(ctx).
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("id = ?", id).
		First(site).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrSiteNotFound
	}
	return
}

func (siteOperation *SiteOperation) GetSiteByUrl(url string) (site *FlyingSite, err error) {
	site = &FlyingSite{}
	ctx, cancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
	defer cancel()
	err = siteOperation.db.WithContext(ctx).
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("url = ?", url).
		First(site).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrSiteNotFound
	}
	return
}

func (siteOperation *SiteOperation) GetSites(windDirection string) (sites []*FlyingSite, err error) {
	sites = make([]*FlyingSite, 0)
	ctx, cancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
	defer cancel()
	query := siteOperation.db.WithContext(ctx).
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
	if windDirection != "" {
		// wind_direction holds a JSON array of quoted enum values
		query = query.Where("wind_direction LIKE ?", fmt.Sprintf("%%%q%%", windDirection))
	}
	err = query.Find(&sites).Error
	return
}

func (siteOperation *SiteOperation) UpdateSite(id uint, patch *SitePatch) (*FlyingSite, error) {
	site, err := siteOperation.GetSiteById(id)
	if err != nil {
		return nil, err
	}

	url := site.Url
	site.ApplyPatch(patch)
	site.Url = url // the slug never changes through ordinary edits
	if err := ValidateSite(site); err != nil {
		return nil, err
	}

	err = siteOperation.db.Transaction(func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
		defer cancel()
		tx = tx.WithContext(ctx)
		if patch.GalleryImages == nil {
			return tx.Omit("GalleryImages").Save(site).Error
		}
		if err := tx.Where("site_id = ?", site.ID).Delete(&GalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(site).Error
	})
	if err != nil {
		return nil, err
	}
	return site, nil
}

func (siteOperation *SiteOperation) DeleteSite(id uint) error {
	return siteOperation.db.Transaction(func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
		defer cancel()
		tx = tx.WithContext(ctx)

		site := &FlyingSite{}
		if err := tx.Where("id = ?", id).First(site).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSiteNotFound
			}
			return err
		}
		if err := tx.Where("site_id = ?", id).Delete(&GalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(site).Error
	})
}

func (siteOperation *SiteOperation) MigrateSiteUrls() (*SlugMigrationReport, error) {
	report := &SlugMigrationReport{Skipped: make([]string, 0)}

	ctx, cancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
	defer cancel()

	sites := make([]*FlyingSite, 0)
	if err := siteOperation.db.WithContext(ctx).Where("url = ? OR url IS NULL", "").Find(&sites).Error; err != nil {
		return nil, err
	}

	for _, site := range sites {
		slug := Slugify(site.Title)
		taken, err := siteOperation.isSlugTaken(nil, slug, site.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			report.Skipped = append(report.Skipped, fmt.Sprintf("%d:%s", site.ID, slug))
			continue
		}
		queryCtx, queryCancel := context.WithTimeout(context.Background(), siteOperation.queryTimeout)
		err = siteOperation.db.WithContext(queryCtx).Model(site).Update("url", slug).Error
		queryCancel()
		if err != nil {
			return nil, err
		}
		report.Updated++
	}
	return report, nil
}
