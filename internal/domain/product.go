package domain

import "github.com/shopspring/decimal"

// DefaultProductPrice substitutes a missing or non-positive scraped price so
// the flow always has something to project.
var DefaultProductPrice = decimal.NewFromInt(50)

type ProductDescriptor struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Brand    string          `json:"brand,omitempty"`
	Price    decimal.Decimal `json:"price"`
}

// Clean returns a copy safe for downstream use.
func (p ProductDescriptor) Clean() ProductDescriptor {
	if p.Price.LessThanOrEqual(decimal.Zero) {
		p.Price = DefaultProductPrice
	}
	return p
}
