package entities

import "time"

// Asset is a managed stored file (a profile photo) with a lifecycle distinct
// from the user record that references it. URL is the derived public URL and
// is unique per live asset.
type Asset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Path      string    `gorm:"size:1024" json:"path"`
	URL       string    `gorm:"uniqueIndex;size:2048" json:"url"`
	Checksum  string    `gorm:"size:64" json:"checksum"`
	Sizes     string    `json:"sizes,omitempty"` // JSON list of derived representations
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting is a persisted key/value configuration entry.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:255" json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingKeyPhotoStoragePath overrides the configured photo storage root.
const SettingKeyPhotoStoragePath = "photo_storage_path"
