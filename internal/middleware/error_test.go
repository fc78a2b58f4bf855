package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandlerRendersAppErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   types.ErrorResponse
	}{
		{"validation", apperrors.NewValidationError("category is required"), http.StatusBadRequest,
			types.ErrorResponse{Error: "category is required", Code: "INVALID_INPUT"}},
		{"upstream", apperrors.NewNetworkError(errors.New("connection refused"), "edamam"), http.StatusBadGateway,
			types.ErrorResponse{Error: "edamam request failed", Code: "UPSTREAM"}},
		{"timeout", apperrors.NewNetworkError(context.DeadlineExceeded, "edamam"), http.StatusGatewayTimeout,
			types.ErrorResponse{Error: "edamam request timed out", Code: "TIMEOUT"}},
		{"database", apperrors.NewDatabaseError(errors.New("disk I/O error")), http.StatusInternalServerError,
			types.ErrorResponse{Error: "Database operation failed", Code: "DB_ERROR"}},
		{"foreign", errors.New("boom"), http.StatusInternalServerError,
			types.ErrorResponse{Error: "Internal server error", Code: "INTERNAL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler())
			router.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := serve(t, router, http.MethodGet, "/")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.want, decodeError(t, w))
			assert.NotContains(t, w.Body.String(), "internal")
		})
	}
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})

	w := serve(t, router, http.MethodGet, "/")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/", func(c *gin.Context) { panic("nil map") })

	w := serve(t, router, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL", decodeError(t, w).Code)
}
