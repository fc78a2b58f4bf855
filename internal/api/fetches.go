package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/model"
	"github.com/pageza/mealplan/backend/internal/service"
	"github.com/pageza/mealplan/backend/internal/types"
)

// FetchHandler exposes the upstream fetch log
type FetchHandler struct {
	logs service.IFetchLogService
}

func NewFetchHandler(logs service.IFetchLogService) *FetchHandler {
	return &FetchHandler{logs: logs}
}

func (h *FetchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/fetches", h.ListFetches)
}

func (h *FetchHandler) ListFetches(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			_ = c.Error(apperrors.NewValidationError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	entries, err := h.logs.Recent(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if entries == nil {
		entries = []model.FetchLog{}
	}

	c.JSON(http.StatusOK, types.FetchesResponse{Count: len(entries), Fetches: entries})
}
