package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"land-valuation/internal/api/models"
	"land-valuation/internal/model"
	"land-valuation/internal/scenario"

	"github.com/gin-gonic/gin"
)

func abortWithError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func badRequest(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
}

// writeError maps engine errors onto API error codes.
func writeError(c *gin.Context, err error) {
	var invalid *model.InvalidAssumptionsError
	switch {
	case errors.As(err, &invalid):
		abortWithError(c, http.StatusBadRequest, "INVALID_ASSUMPTIONS", err.Error(),
			map[string]interface{}{"field": invalid.Field})
	case errors.Is(err, scenario.ErrInvalidScenarios):
		abortWithError(c, http.StatusBadRequest, "INVALID_SCENARIOS", err.Error(), nil)
	case errors.Is(err, errProjectNotFound):
		abortWithError(c, http.StatusNotFound, "PROJECT_NOT_FOUND", err.Error(), nil)
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
	}
}
