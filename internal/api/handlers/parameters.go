package handlers

import (
	"net/http"

	"land-valuation/internal/api/models"
	"land-valuation/internal/model"

	"github.com/gin-gonic/gin"
)

// ListParameters handles GET /api/v1/parameters
func ListParameters(c *gin.Context) {
	fields := model.Fields()
	params := make([]models.ParameterInfo, 0, len(fields))
	for _, f := range fields {
		params = append(params, models.ParameterInfo{
			Name:        f.Name,
			Description: f.Description,
			Unit:        f.Unit,
			Default:     f.Default,
			Min:         f.Min,
			Max:         f.Max,
		})
	}
	c.JSON(http.StatusOK, gin.H{"parameters": params})
}
