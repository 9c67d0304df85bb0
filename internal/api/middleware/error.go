package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"land-valuation/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from panics and answers with an INTERNAL_ERROR response
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("panic recovered", "path", c.Request.URL.Path, "panic", fmt.Sprint(recovered))

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
