package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/mealplan/backend/internal/database"
	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/model"
	"github.com/pageza/mealplan/backend/internal/service"
	"github.com/pageza/mealplan/backend/internal/types"
)

const healthTimeout = 2 * time.Second

// bindJSON decodes the request body into dst. With allowEmpty an empty body
// leaves dst at its zero value. On failure a validation error is attached
// to the context and false is returned.
func bindJSON(c *gin.Context, dst any, allowEmpty bool) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		_ = c.Error(apperrors.NewValidationError("invalid request body: " + err.Error()))
		return false
	}
	return true
}

// withLimit prepends the rate limit handlers to h
func withLimit(limit []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return append(append([]gin.HandlerFunc{}, limit...), h)
}

// HealthHandler reports the state of the service dependencies
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler. redis may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "healthy", "database": "ok", "redis": "disabled"}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = err.Error()
	}

	if h.redis != nil {
		// Redis is optional; its state is reported but never fails the check.
		if err := h.redis.Ping(ctx).Err(); err != nil {
			body["redis"] = err.Error()
		} else {
			body["redis"] = "ok"
		}
	}

	c.JSON(status, body)
}

// DietsHandler lists the diet options a client can choose from
type DietsHandler struct {
	defaultDiet   string
	defaultPolicy service.Policy
}

// NewDietsHandler creates a new DietsHandler
func NewDietsHandler(defaultDiet string, defaultPolicy service.Policy) *DietsHandler {
	return &DietsHandler{defaultDiet: defaultDiet, defaultPolicy: defaultPolicy}
}

// RegisterRoutes registers the diets routes
func (h *DietsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/diets", h.ListDiets)
}

// ListDiets returns diet types, health labels, default ceilings and policies
func (h *DietsHandler) ListDiets(c *gin.Context) {
	policies := make([]string, len(service.Policies))
	for i, p := range service.Policies {
		policies[i] = string(p)
	}

	c.JSON(http.StatusOK, types.DietsResponse{
		Diets:           model.DietTypes,
		HealthLabels:    model.HealthLabels,
		DefaultDiet:     h.defaultDiet,
		DefaultCeilings: model.DefaultCeilings(),
		Policies:        policies,
		DefaultPolicy:   string(h.defaultPolicy),
		Categories:      model.Categories,
	})
}
