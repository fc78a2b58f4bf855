package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplan/backend/internal/api"
	"github.com/pageza/mealplan/backend/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health  *api.HealthHandler
	Diets   *api.DietsHandler
	Plans   *api.PlanHandler
	Recipes *api.RecipeHandler
	Fetches *api.FetchHandler
}

// SetupRouter configures the application routes. limiter may be nil, in
// which case no route is rate limited.
func SetupRouter(h Handlers, allowedOrigins []string, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", h.Health.HealthCheck)

	var limit []gin.HandlerFunc
	if limiter != nil {
		limit = append(limit, limiter.RateLimitMiddleware())
	}

	v1 := router.Group("/api/v1")
	h.Diets.RegisterRoutes(v1)
	h.Plans.RegisterRoutes(v1, limit...)
	h.Recipes.RegisterRoutes(v1, limit...)
	h.Fetches.RegisterRoutes(v1)

	return router
}
