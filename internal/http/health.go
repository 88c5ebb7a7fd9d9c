package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yrbane/nethttp.net-vcf-import/internal/database"
)

// HealthController reports service liveness and database reachability.
type HealthController struct {
	db *database.Database
}

func NewHealthController(db *database.Database) *HealthController {
	return &HealthController{db: db}
}

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (c *HealthController) Health(ctx *gin.Context) {
	status := HealthStatus{Status: "ok", Database: "ok"}

	sqlDB, err := c.db.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
		ctx.JSON(http.StatusServiceUnavailable, status)
		return
	}

	ctx.JSON(http.StatusOK, status)
}
