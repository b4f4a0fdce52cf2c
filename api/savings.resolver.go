package api

import (
	"fmt"
	"stockswap/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type trackSavingsRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

func (m ApiHandler) trackSavings(c *gin.Context) {
	var requestBody trackSavingsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.Price.LessThanOrEqual(decimal.Zero) {
		returnErrorJsonCode(fmt.Errorf("price must be positive"), c, 400)
		return
	}

	purchase, err := m.SavingsRepository.Add(domain.AvoidedPurchase{
		ProductName: requestBody.Name,
		Category:    requestBody.Category,
		Price:       requestBody.Price,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	total, err := m.SavingsRepository.TotalSavings()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"purchase":     purchase,
		"totalSavings": total,
	})
}

func (m ApiHandler) getSavings(c *gin.Context) {
	total, err := m.SavingsRepository.TotalSavings()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	purchases, err := m.SavingsRepository.List(50)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"totalSavings":     total,
		"avoidedPurchases": purchases,
	})
}
