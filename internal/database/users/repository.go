// Package users provides database operations for imported user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db, 12)
//	user, err := repo.FindByEmail("ana@example.com")
package users

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yrbane/nethttp.net-vcf-import/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db         *gorm.DB
	bcryptCost int
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB, bcryptCost int) *Repository {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Repository{db: db, bcryptCost: bcryptCost}
}

// FindByEmail retrieves a user by email. Returns (nil, nil) when no account
// matches.
func (r *Repository) FindByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginExists reports whether a login handle is already taken.
func (r *Repository) LoginExists(login string) bool {
	var count int64
	r.db.Model(&entities.User{}).Where("login = ?", login).Count(&count)
	return count > 0
}

// Create inserts a new user account and returns its identifier.
func (r *Repository) Create(data entities.UserData) (uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), r.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		Login:        data.Login,
		Email:        data.Email,
		Nickname:     data.Nickname,
		DisplayName:  data.DisplayName,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Slug:         data.Slug,
		PasswordHash: string(hash),
		Description:  data.Description,
		Role:         data.Role,
		Locale:       data.Locale,
		UseSSL:       data.UseSSL,
		RegisteredAt: data.RegisteredAt,
	}
	if err := r.db.Create(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Update mutates an existing account's imported attributes. Login, slug and
// password are left untouched; they are fixed at creation time.
func (r *Repository) Update(data entities.UserData) (uint, error) {
	if data.ID == 0 {
		return 0, errors.New("update requires a user identifier")
	}

	var user entities.User
	if err := r.db.First(&user, data.ID).Error; err != nil {
		return 0, err
	}

	user.Email = data.Email
	user.DisplayName = data.DisplayName
	user.FirstName = data.FirstName
	user.LastName = data.LastName
	user.Description = data.Description
	user.Role = data.Role
	user.Locale = data.Locale
	user.UseSSL = data.UseSSL
	user.RegisteredAt = data.RegisteredAt

	if err := r.db.Save(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

// SetMeta creates or replaces a metadata entry for a user.
func (r *Repository) SetMeta(userID uint, key, value string) error {
	var meta entities.UserMeta
	result := r.db.Where("user_id = ? AND key = ?", userID, key).First(&meta)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		meta = entities.UserMeta{UserID: userID, Key: key, Value: value}
		return r.db.Create(&meta).Error
	}
	if result.Error != nil {
		return result.Error
	}

	meta.Value = value
	return r.db.Save(&meta).Error
}

// GetMeta retrieves a metadata value for a user. The second return value
// reports whether the entry exists.
func (r *Repository) GetMeta(userID uint, key string) (string, bool) {
	var meta entities.UserMeta
	err := r.db.Where("user_id = ? AND key = ?", userID, key).First(&meta).Error
	if err != nil {
		return "", false
	}
	return meta.Value, true
}
