package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplan/backend/internal/model"
	"github.com/pageza/mealplan/backend/internal/service"
	"github.com/pageza/mealplan/backend/internal/types"
)

type RecipeHandler struct {
	search service.ISearchService
}

func NewRecipeHandler(search service.ISearchService) *RecipeHandler {
	return &RecipeHandler{search: search}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, limit ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/search", withLimit(limit, h.SearchRecipes)...)
		recipes.GET("/browse", withLimit(limit, h.BrowseRecipes)...)
		recipes.POST("/detail", h.RecipeDetail)
	}
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	query := c.Query("q")

	recipes, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if recipes == nil {
		recipes = []model.RecipeCandidate{}
	}

	c.JSON(http.StatusOK, types.SearchResponse{
		Query:   query,
		Count:   len(recipes),
		Recipes: recipes,
	})
}

func (h *RecipeHandler) BrowseRecipes(c *gin.Context) {
	result, err := h.search.Browse(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecipeDetail flattens a recipe picked from a plan or search into the
// detail view
func (h *RecipeHandler) RecipeDetail(c *gin.Context) {
	var candidate model.RecipeCandidate
	if !bindJSON(c, &candidate, false) {
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeDetail(candidate))
}
