package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Photos
		Users
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Photos struct {
		ContentDir string // Host content directory
		Dir        string // Storage directory for imported photos, relative to ContentDir
		BaseURL    string // Public URL prefix for stored photos
	}
	Users struct {
		DefaultRole string   // Role preselected for imported contacts
		Roles       []string // Roles an operator may assign
		BcryptCost  int
	}
	Audit struct {
		Dir string
	}
)

// StorageRoot returns the absolute photo storage root.
func (p Photos) StorageRoot() string {
	if filepath.IsAbs(p.Dir) {
		return p.Dir
	}
	return filepath.Join(p.ContentDir, p.Dir)
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("content_dir", "./content")
	v.SetDefault("photo_dir", DefaultPhotoDir)
	v.SetDefault("photo_base_url", "/media")
	v.SetDefault("default_role", "subscriber")
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("audit_dir", "./audit")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Photos: Photos{
			ContentDir: v.GetString("CONTENT_DIR"),
			Dir:        v.GetString("PHOTO_DIR"),
			BaseURL:    v.GetString("PHOTO_BASE_URL"),
		},
		Users: Users{
			DefaultRole: v.GetString("DEFAULT_ROLE"),
			Roles: []string{
				"subscriber", "contributor", "author", "editor", "administrator",
			},
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
	}
}
