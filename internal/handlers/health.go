package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthResponse reports the state of the API and its dependencies
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheckFunc pings one dependency
type HealthCheckFunc func(ctx context.Context) error

type HealthHandlers struct {
	checks map[string]HealthCheckFunc
	logger *logging.SafeLogger
}

func NewHealthHandlers(checks map[string]HealthCheckFunc, logger *logging.SafeLogger) *HealthHandlers {
	return &HealthHandlers{checks: checks, logger: logger}
}

// HealthCheck godoc
// @Summary Health check
// @Description Checks the API and its dependencies (MongoDB and Redis)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "All services are healthy"
// @Failure 503 {object} HealthResponse "One or more services are unavailable"
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		checkCtx, checkSpan, done := utils.TraceOperation(ctx, "health."+name, map[string]interface{}{
			"service.name":      name,
			"service.operation": "ping",
		})
		checkCtx, cancel := context.WithTimeout(checkCtx, healthCheckTimeout)
		err := h.checks[name](checkCtx)
		cancel()
		if err != nil {
			utils.RecordErrorInSpan(checkSpan, err, nil)
			h.logger.Warn("health check failed", zap.String("service", name), zap.Error(err))
			health.Status = "unhealthy"
			health.Services[name] = "unhealthy"
		} else {
			health.Services[name] = "healthy"
		}
		done()
	}

	span.SetAttributes(attribute.String("health.status", health.Status))

	if health.Status == "healthy" {
		c.JSON(http.StatusOK, health)
		return
	}
	c.JSON(http.StatusServiceUnavailable, health)
}
