package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yrbane/nethttp.net-vcf-import/internal/audit"
	"github.com/yrbane/nethttp.net-vcf-import/internal/config"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/assets"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/settings"
	"github.com/yrbane/nethttp.net-vcf-import/internal/database/users"
	"github.com/yrbane/nethttp.net-vcf-import/internal/settingsstore"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg *config.Config, db *database.Database) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	usersRepo := users.NewRepository(db.DB, cfg.Users.BcryptCost)
	assetsRepo := assets.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)
	settingsStore := settingsstore.New(settingsRepo, cfg.Photos)
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	healthController := NewHealthController(db)
	router.GET("/health", healthController.Health)

	importController := NewImportController(
		usersRepo, assetsRepo, settingsStore, auditor, cfg.Users, cfg.Photos.BaseURL,
	)
	router.POST("/api/import/vcf", importController.Upload)
	router.POST("/api/import/confirm", importController.Confirm)

	settingsController := NewSettingsController(settingsStore)
	router.GET("/api/settings/photo-path", settingsController.GetPhotoStoragePath)
	router.PUT("/api/settings/photo-path", settingsController.SetPhotoStoragePath)

	return router
}
