package domain

import "github.com/shopspring/decimal"

// Credentials authenticate all portfolio operations against the upstream
// finance API. AccountID is only meaningful alongside the token issued by the
// same registration.
type Credentials struct {
	Token     string
	AccountID string
}

func (c Credentials) Usable() bool {
	return c.Token != "" && c.AccountID != ""
}

// Portfolio mirrors one upstream investment portfolio. At most 3 exist per
// account under upstream's own limit.
type Portfolio struct {
	ID            string
	Strategy      StrategyTag
	InitialAmount decimal.Decimal
	CurrentValue  decimal.Decimal
}

// SimulationResult is matched back to a Portfolio by strategy, never by ID -
// upstream does not reliably echo portfolio ids through bulk simulation.
type SimulationResult struct {
	Strategy        StrategyTag
	PortfolioID     string
	ProjectedValue  decimal.Decimal
	MonthsSimulated int
	GrowthTrend     []decimal.Decimal
}
