package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/model"
	"github.com/pageza/mealplan/backend/internal/service"
	"github.com/pageza/mealplan/backend/internal/types"
)

type PlanHandler struct {
	plans service.IPlanService
}

func NewPlanHandler(plans service.IPlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// RegisterRoutes registers the plan routes. limit guards the routes that
// call the upstream recipe API.
func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup, limit ...gin.HandlerFunc) {
	plans := router.Group("/plans")
	{
		plans.POST("", withLimit(limit, h.BuildPlan)...)
		plans.POST("/refresh", withLimit(limit, h.RefreshCategory)...)
		plans.POST("/summary", h.Summarize)
	}
}

func (h *PlanHandler) BuildPlan(c *gin.Context) {
	var req types.PlanRequest
	if !bindJSON(c, &req, true) {
		return
	}

	policy, err := service.ParsePolicy(req.Policy)
	if err != nil {
		_ = c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.plans.BuildPlan(c.Request.Context(), service.PlanRequest{
		Constraint: req.Constraint(),
		Policy:     policy,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PlanHandler) RefreshCategory(c *gin.Context) {
	var req types.RefreshRequest
	if !bindJSON(c, &req, false) {
		return
	}

	category, err := model.ParseMealCategory(req.Category)
	if err != nil {
		_ = c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.plans.RefreshCategory(c.Request.Context(), service.RefreshRequest{
		Plan:       req.Plan,
		Category:   category,
		Constraint: req.Constraint(),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Summarize totals the nutrients of the categories marked eaten
func (h *PlanHandler) Summarize(c *gin.Context) {
	var req types.SummaryRequest
	if !bindJSON(c, &req, false) {
		return
	}

	c.JSON(http.StatusOK, service.SummarizeEaten(req.Plan, req.Eaten))
}
