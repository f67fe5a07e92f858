package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler defines the interface for service health checks
type HealthHandler interface {
	Status(ctx *gin.Context)
}

// healthHandler struct holds an optional database handle to ping
type healthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB) HealthHandler {
	return &healthHandler{db: db}
}

// Status reports service health, including database connectivity when a
// database is wired.
func (handler *healthHandler) Status(ctx *gin.Context) {
	if handler.db != nil {
		sqlDB, err := handler.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
