package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yrbane/nethttp.net-vcf-import/internal/settingsstore"
)

// SettingsController exposes the one persisted configuration value of the
// import pipeline: the photo storage root.
type SettingsController struct {
	store *settingsstore.SettingsStore
}

func NewSettingsController(store *settingsstore.SettingsStore) *SettingsController {
	return &SettingsController{store: store}
}

func (c *SettingsController) GetPhotoStoragePath(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.store.GetPhotoStoragePathInfo())
}

type updateStoragePathRequest struct {
	Path string `json:"path"`
}

func (c *SettingsController) SetPhotoStoragePath(ctx *gin.Context) {
	var req updateStoragePathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}
	if req.Path == "" {
		respondBadRequest(ctx, "Path must not be empty")
		return
	}

	if err := c.store.SetPhotoStoragePath(req.Path); err != nil {
		respondInternalError(ctx, err, "saving photo storage path")
		return
	}
	respondSuccess(ctx, "Photo storage path updated")
}
