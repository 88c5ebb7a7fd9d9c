package entities

import (
	"time"

	"gorm.io/gorm"
)

// Role values mirror the host platform's role hierarchy. RoleSubscriber is
// the lowest-privilege role and the default for imported contacts.
const (
	RoleSubscriber    = "subscriber"
	RoleContributor   = "contributor"
	RoleAuthor        = "author"
	RoleEditor        = "editor"
	RoleAdministrator = "administrator"
)

// Metadata keys written by the import pipeline.
const (
	MetaKeyNote           = "note"
	MetaKeyAddress        = "address"
	MetaKeyAvatarAsset    = "avatar_asset"
	MetaKeyAvatarChecksum = "avatar_checksum"
)

// User is an application account provisioned from an imported contact.
// Email uniqueness is enforced by the store.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Login        string         `gorm:"uniqueIndex;size:60" json:"login"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email"`
	Nickname     string         `gorm:"size:100" json:"nickname"`
	DisplayName  string         `gorm:"size:255" json:"display_name"`
	FirstName    string         `gorm:"size:100" json:"first_name"`
	LastName     string         `gorm:"size:100" json:"last_name"`
	Slug         string         `gorm:"size:255" json:"slug"` // URL-safe form of "first last"
	PasswordHash string         `gorm:"size:100" json:"-"`
	Description  string         `json:"description,omitempty"`
	Role         string         `gorm:"size:40" json:"role"`
	Locale       string         `gorm:"size:20" json:"locale,omitempty"`
	UseSSL       bool           `json:"use_ssl"`
	RegisteredAt time.Time      `json:"registered_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// UserData carries the attribute set the import pipeline builds for one
// contact before handing it to the user store. ID is zero for creation and
// the existing account's identifier for updates. Password is the plaintext
// generated at creation time; the store hashes it and never persists it
// as-is.
type UserData struct {
	ID           uint
	Login        string
	Nickname     string
	DisplayName  string
	FirstName    string
	LastName     string
	Slug         string
	Email        string
	Password     string
	Description  string
	Role         string
	Locale       string
	UseSSL       bool
	RegisteredAt time.Time
}

// UserMeta is a free-form key/value bag attached to a user. The import
// pipeline uses it for the serialized address and the avatar asset link.
type UserMeta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_meta,unique" json:"user_id"`
	Key       string    `gorm:"index:idx_user_meta,unique;size:255" json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
