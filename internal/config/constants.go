package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./vcf-import.db"

	// DefaultPhotoDir is the default photo storage directory, relative to
	// the content directory
	DefaultPhotoDir = "avatars"
)
