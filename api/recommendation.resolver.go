package api

import (
	"context"
	"stockswap/internal/domain"
	"stockswap/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type recommendationRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	Price    decimal.Decimal `json:"price"`
}

// recommendation is the single entry point of the orchestrator. It always
// answers 200 with a structurally complete recommendation - the worst case is
// a fully fallback-sourced one.
func (m ApiHandler) recommendation(c *gin.Context) {
	var requestBody recommendationRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestBudget)
	defer cancel()
	ctx = logger.AddToContext(ctx, logger.New())

	recommendation := m.RecommendationService.GetRecommendation(ctx, domain.ProductDescriptor{
		Name:     requestBody.Name,
		Category: requestBody.Category,
		Brand:    requestBody.Brand,
		Price:    requestBody.Price,
	})

	c.JSON(200, recommendation)
}
