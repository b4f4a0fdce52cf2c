package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AvoidedPurchase records a product the user chose not to buy.
type AvoidedPurchase struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
}
