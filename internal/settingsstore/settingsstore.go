package settingsstore

import (
	"os"

	"github.com/yrbane/nethttp.net-vcf-import/internal/config"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/settings"
	"github.com/yrbane/nethttp.net-vcf-import/internal/entities"
)

// Priority: database > environment > configured default
type SettingsStore struct {
	repo *settings.Repository
	cfg  config.Photos
}

func New(repo *settings.Repository, cfg config.Photos) *SettingsStore {
	return &SettingsStore{repo: repo, cfg: cfg}
}

// GetPhotoStoragePath resolves the root directory photos are written to.
func (s *SettingsStore) GetPhotoStoragePath() string {
	setting, err := s.repo.GetSetting(entities.SettingKeyPhotoStoragePath)
	if err == nil && setting.Value != "" {
		return setting.Value
	}

	if envPath := os.Getenv("PHOTO_STORAGE_PATH"); envPath != "" {
		return envPath
	}

	return s.cfg.StorageRoot()
}

func (s *SettingsStore) SetPhotoStoragePath(path string) error {
	return s.repo.SetSetting(entities.SettingKeyPhotoStoragePath, path)
}

func (s *SettingsStore) GetPhotoStoragePathSource() string {
	setting, err := s.repo.GetSetting(entities.SettingKeyPhotoStoragePath)
	if err == nil && setting.Value != "" {
		return "database"
	}

	if envPath := os.Getenv("PHOTO_STORAGE_PATH"); envPath != "" {
		return "environment"
	}

	return "default"
}

type StoragePathInfo struct {
	Path   string `json:"path"`
	Source string `json:"source"` // "database", "environment", or "default"
}

func (s *SettingsStore) GetPhotoStoragePathInfo() StoragePathInfo {
	return StoragePathInfo{
		Path:   s.GetPhotoStoragePath(),
		Source: s.GetPhotoStoragePathSource(),
	}
}
