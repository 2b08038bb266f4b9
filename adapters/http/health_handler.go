package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const (
	databaseConnected    = "connected"
	databaseNotAvailable = "not available"
	healthCheckTimeout   = 3 * time.Second
)

// StorageStatusReporter is implemented by persistence.FallbackStore.
type StorageStatusReporter interface {
	Status(ctx context.Context) persistence.StorageStatus
}

type HealthHandler struct {
	storage     StorageStatusReporter
	environment string
	logger      logger.Logger
	now         func() time.Time
}

func NewHealthHandler(storage StorageStatusReporter, environment string, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		storage:     storage,
		environment: environment,
		logger:      log,
		now:         time.Now,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := h.storage.Status(ctx)

	resp := HealthResponse{
		Success:     true,
		Timestamp:   h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Database:    databaseNotAvailable,
		Environment: h.environment,
		HasDBURL:    status.Configured,
	}
	if status.Reachable {
		resp.Database = databaseConnected
	}
	if status.Error != "" {
		msg := status.Error
		resp.DatabaseError = &msg
		if status.Configured {
			h.logger.Warn("Health check: database unreachable", zap.String("error", msg))
		}
	}
	c.JSON(http.StatusOK, resp)
}
