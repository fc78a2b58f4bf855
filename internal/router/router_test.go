package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplan/backend/internal/api"
	"github.com/pageza/mealplan/backend/internal/mocks"
	"github.com/pageza/mealplan/backend/internal/model"
	"github.com/pageza/mealplan/backend/internal/service"
	"github.com/pageza/mealplan/backend/internal/testhelpers"
)

func TestSetupRouterMountsEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	plans := new(mocks.MockPlanService)
	search := new(mocks.MockSearchService)
	logs := new(mocks.MockFetchLogService)
	search.On("Browse", mock.Anything).Return(&service.BrowseResult{Recipes: model.NewMealPlan()}, nil)
	logs.On("Recent", mock.Anything, 0).Return([]model.FetchLog{}, nil)

	router := SetupRouter(Handlers{
		Health:  api.NewHealthHandler(testhelpers.SetupSQLite(t), nil),
		Diets:   api.NewDietsHandler("low-carb", service.PolicyTopN),
		Plans:   api.NewPlanHandler(plans),
		Recipes: api.NewRecipeHandler(search),
		Fetches: api.NewFetchHandler(logs),
	}, []string{"http://localhost:19006"}, nil)

	routes := map[string]bool{}
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /api/v1/diets",
		"POST /api/v1/plans",
		"POST /api/v1/plans/refresh",
		"POST /api/v1/plans/summary",
		"GET /api/v1/recipes/search",
		"GET /api/v1/recipes/browse",
		"POST /api/v1/recipes/detail",
		"GET /api/v1/fetches",
	} {
		assert.True(t, routes[want], want)
	}

	for _, path := range []string{"/health", "/api/v1/diets", "/api/v1/recipes/browse", "/api/v1/fetches"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}
