package service

import (
	"fmt"
	"stockswap/internal/domain"
	"strings"

	"github.com/shopspring/decimal"
)

// FallbackRule maps a product keyword to a canned ticker/strategy pair. The
// table is ordered; earlier entries win.
type FallbackRule struct {
	Keyword  string
	Tickers  []string
	Strategy domain.StrategyTag
}

var DefaultFallbackRules = []FallbackRule{
	{Keyword: "electronics", Tickers: []string{"AAPL", "MSFT"}, Strategy: domain.StrategyBalanced},
	{Keyword: "gaming", Tickers: []string{"NVDA", "AMD"}, Strategy: domain.StrategyAggressive},
	{Keyword: "fashion", Tickers: []string{"NKE", "LULU"}, Strategy: domain.StrategyBalanced},
	{Keyword: "shoes", Tickers: []string{"NKE", "ADDYY"}, Strategy: domain.StrategyBalanced},
	{Keyword: "clothing", Tickers: []string{"NKE", "LULU"}, Strategy: domain.StrategyBalanced},
	{Keyword: "tech", Tickers: []string{"MSFT", "GOOGL"}, Strategy: domain.StrategyBalanced},
	{Keyword: "home", Tickers: []string{"HD", "LOW"}, Strategy: domain.StrategyConservative},
	{Keyword: "dockers", Tickers: []string{"VFC", "NKE"}, Strategy: domain.StrategyBalanced},
}

var defaultFallbackTickers = []string{"SPY", "VTI"}

// 12-month projection multipliers used whenever a live simulation result is
// unavailable for a strategy.
var fallbackMultipliers = map[domain.StrategyTag]decimal.Decimal{
	domain.StrategyConservative: decimal.NewFromFloat(1.07),
	domain.StrategyBalanced:     decimal.NewFromFloat(1.10),
	domain.StrategyAggressive:   decimal.NewFromFloat(1.15),
}

// FallbackSuggestion is the rule engine's output for one product.
type FallbackSuggestion struct {
	Tickers     []string
	Strategy    domain.StrategyTag
	Education   string
	Explanation string
}

// FallbackEngine is a pure, deterministic stand-in for every network-backed
// step. No I/O.
type FallbackEngine struct {
	Rules []FallbackRule
}

func NewFallbackEngine() FallbackEngine {
	return FallbackEngine{Rules: DefaultFallbackRules}
}

// Suggest matches the descriptor's category first, then name, then brand,
// against the rule table in order.
func (e FallbackEngine) Suggest(product domain.ProductDescriptor) FallbackSuggestion {
	fields := []string{
		strings.ToLower(product.Category),
		strings.ToLower(product.Name),
		strings.ToLower(product.Brand),
	}

	for _, field := range fields {
		if field == "" {
			continue
		}
		for _, rule := range e.Rules {
			if strings.Contains(field, rule.Keyword) {
				tickers := append([]string{}, rule.Tickers...)
				return FallbackSuggestion{
					Tickers:  tickers,
					Strategy: rule.Strategy,
					Education: fmt.Sprintf(
						"Learn about investing in %s - companies in the %s sector that could benefit from consumer trends.",
						strings.Join(tickers, ", "), rule.Keyword,
					),
					Explanation: fmt.Sprintf(
						"Instead of spending $%s on this %s item, consider investing in related companies like %s for potential long-term growth.",
						product.Price.StringFixed(2), rule.Keyword, strings.Join(tickers, " or "),
					),
				}
			}
		}
	}

	illustrative := product.Price.Mul(decimal.NewFromFloat(1.1)).Round(2)
	return FallbackSuggestion{
		Tickers:  append([]string{}, defaultFallbackTickers...),
		Strategy: domain.StrategyBalanced,
		Education: "Learn about diversified index fund investing with broad market ETFs " +
			"that track the S&P 500 and total stock market.",
		Explanation: fmt.Sprintf(
			"Consider investing your $%s in a diversified index fund instead. Historical market returns suggest this could grow to approximately $%s in one year.",
			product.Price.StringFixed(2), illustrative.StringFixed(2),
		),
	}
}

// Projection applies the fixed 12-month multiplier for the strategy.
func (e FallbackEngine) Projection(strategy domain.StrategyTag, amount decimal.Decimal) domain.StrategyProjection {
	multiplier, ok := fallbackMultipliers[strategy]
	if !ok {
		multiplier = fallbackMultipliers[domain.StrategyBalanced]
	}

	projectedValue := amount.Mul(multiplier).Round(2)
	totalReturn := projectedValue.Sub(amount).Round(2)
	returnPercentage := decimal.Zero
	if !amount.IsZero() {
		returnPercentage = totalReturn.Div(amount).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return domain.StrategyProjection{
		Strategy:         strategy,
		InitialAmount:    amount,
		ProjectedValue:   projectedValue,
		TotalReturn:      totalReturn,
		ReturnPercentage: returnPercentage,
		TimePeriod:       "12 months",
		Source:           domain.SourceFallback,
	}
}
