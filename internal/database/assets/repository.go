// Package assets provides database operations for the managed-asset
// registry. Each registered asset corresponds to one stored photo file and
// is addressable by its derived public URL.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/yrbane/nethttp.net-vcf-import/internal/entities"
)

// derivedSizes are the representations generated for every registered photo,
// mirroring the host store's thumbnail ladder.
var derivedSizes = []string{"thumbnail", "medium", "large"}

// Repository handles all asset database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new assets repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ResolveByURL finds the registered asset for a public URL. Returns
// (nil, nil) when no asset is registered at that URL.
func (r *Repository) ResolveByURL(url string) (*entities.Asset, error) {
	var asset entities.Asset
	err := r.db.Where("url = ?", url).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Register records a stored file as a managed asset and returns its ID.
func (r *Repository) Register(userID uint, path, url, checksum string) (uint, error) {
	asset := entities.Asset{
		UserID:   userID,
		Path:     path,
		URL:      url,
		Checksum: checksum,
	}
	if err := r.db.Create(&asset).Error; err != nil {
		return 0, err
	}
	return asset.ID, nil
}

// Delete removes an asset record and its backing file. A missing file is not
// an error; the registry entry is removed regardless.
func (r *Repository) Delete(id uint) error {
	var asset entities.Asset
	if err := r.db.First(&asset, id).Error; err != nil {
		return err
	}

	if asset.Path != "" {
		if err := os.Remove(asset.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove asset file %s: %w", asset.Path, err)
		}
	}

	return r.db.Delete(&asset).Error
}

// GenerateSizes records the derived representations for an asset. The size
// variants share the original file; only the registry entry tracks them.
func (r *Repository) GenerateSizes(id uint) error {
	var asset entities.Asset
	if err := r.db.First(&asset, id).Error; err != nil {
		return err
	}

	sizes, err := json.Marshal(derivedSizes)
	if err != nil {
		return err
	}
	asset.Sizes = string(sizes)
	return r.db.Save(&asset).Error
}
