package domain

import "github.com/shopspring/decimal"

// Source distinguishes numbers derived from a live upstream simulation from
// ones derived from the fixed local multiplier table.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
	SourceMixed    Source = "mixed"
)

// StockSuggestion is produced either by the AI suggestion client or by the
// fallback rule engine; the orchestrator treats both the same.
type StockSuggestion struct {
	Tickers         []string `json:"tickers"`
	EducationalText string   `json:"educationalText"`
}

type StrategyProjection struct {
	Strategy         StrategyTag     `json:"strategy"`
	InitialAmount    decimal.Decimal `json:"initialAmount"`
	ProjectedValue   decimal.Decimal `json:"projectedValue"`
	TotalReturn      decimal.Decimal `json:"totalReturn"`
	ReturnPercentage decimal.Decimal `json:"returnPercentage"`
	TimePeriod       string          `json:"timePeriod"`
	// MeanTrendValue summarizes the simulation growth trend when upstream
	// returned one.
	MeanTrendValue *decimal.Decimal `json:"meanTrendValue,omitempty"`
	Source         Source           `json:"source"`
}

// Recommendation is the orchestrator's only output. It is structurally
// complete on every exit path, including total upstream failure.
type Recommendation struct {
	Tickers         []string                   `json:"tickers"`
	TickerPrices    map[string]decimal.Decimal `json:"tickerPrices,omitempty"`
	Portfolios      []StrategyProjection       `json:"portfolios"`
	EducationalText string                     `json:"educationalText"`
	ExplanationText string                     `json:"explanationText"`
	OverallSource   Source                     `json:"overallSource"`
}
