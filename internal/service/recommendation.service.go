package service

import (
	"context"
	"errors"
	"fmt"
	"stockswap/internal/domain"
	"stockswap/internal/logger"
	"stockswap/pkg/investease"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const (
	// defaultSimulationMonths conserves the account's cumulative 60-month
	// simulation ceiling.
	defaultSimulationMonths = 6

	quoteLookupTimeout = 2 * time.Second
)

// RecommendationService turns a product descriptor into a complete
// recommendation. It is the only component that talks to more than one
// collaborator per request, and it never surfaces an error: availability over
// fidelity.
type RecommendationService interface {
	GetRecommendation(ctx context.Context, product domain.ProductDescriptor) domain.Recommendation
}

type recommendationServiceHandler struct {
	SessionService    SessionService
	PortfolioService  PortfolioService
	SuggestionService SuggestionService
	QuoteService      QuoteService
	Fallback          FallbackEngine

	simulationMonths int
}

func NewRecommendationService(
	sessionService SessionService,
	portfolioService PortfolioService,
	suggestionService SuggestionService,
	quoteService QuoteService,
	fallback FallbackEngine,
) RecommendationService {
	return recommendationServiceHandler{
		SessionService:    sessionService,
		PortfolioService:  portfolioService,
		SuggestionService: suggestionService,
		QuoteService:      quoteService,
		Fallback:          fallback,
		simulationMonths:  defaultSimulationMonths,
	}
}

func (h recommendationServiceHandler) GetRecommendation(ctx context.Context, product domain.ProductDescriptor) domain.Recommendation {
	log := logger.FromContext(ctx)
	product = product.Clean()

	credentials, err := h.SessionService.EnsureSession(ctx)
	if err != nil || !credentials.Usable() {
		log.Warnf("session unusable, serving fallback-only recommendation: %v", err)
		return h.fallbackOnly(ctx, product)
	}

	// ticker suggestions are descriptor-level, not per-strategy - fetch them
	// concurrently with the portfolio work
	suggestionCh := make(chan domain.StockSuggestion, 1)
	go func() {
		suggestionCh <- h.SuggestionService.SuggestStocks(ctx, product)
	}()

	portfolios, creationFailures := h.PortfolioService.EnsurePortfolios(ctx, credentials, product.Price)
	for tag, failure := range creationFailures {
		log.Warnf("%s portfolio degraded to fallback projection: %v", tag, failure)
	}

	resultsByStrategy := map[domain.StrategyTag]domain.SimulationResult{}
	if len(portfolios) > 0 {
		simulationResults, err := h.PortfolioService.Simulate(ctx, credentials, h.simulationMonths)
		if err != nil {
			// the batched call is all-or-nothing: every strategy degrades
			if errors.Is(err, investease.ErrSimulationLimitReached) {
				log.Warnf("simulation month ceiling reached for account %s, no further live simulation this request", credentials.AccountID)
			} else {
				log.Warnf("simulation failed, all strategies degrade to fallback projections: %v", err)
			}
		}
		for _, result := range simulationResults {
			resultsByStrategy[result.Strategy] = result
		}
	}

	projections := make([]domain.StrategyProjection, 0, len(domain.AllStrategies))
	liveCount := 0
	for _, tag := range domain.AllStrategies {
		result, simulated := resultsByStrategy[tag]
		_, created := portfolios[tag]
		if simulated && created {
			projections = append(projections, liveProjection(tag, product.Price, result))
			liveCount++
			continue
		}
		projections = append(projections, h.Fallback.Projection(tag, product.Price))
	}

	suggestion := <-suggestionCh

	recommendation := domain.Recommendation{
		Tickers:         suggestion.Tickers,
		Portfolios:      projections,
		EducationalText: suggestion.EducationalText,
		ExplanationText: fmt.Sprintf(
			"Instead of spending $%s on this item, see how investing that money could grow:",
			product.Price.StringFixed(2),
		),
		OverallSource: overallSource(liveCount, len(projections)),
	}
	recommendation.TickerPrices = h.lookupQuotes(ctx, suggestion.Tickers)

	return recommendation
}

// fallbackOnly is the terminal path for an unusable session: deterministic
// suggestion plus multiplier projections for all three strategies.
func (h recommendationServiceHandler) fallbackOnly(ctx context.Context, product domain.ProductDescriptor) domain.Recommendation {
	fallback := h.Fallback.Suggest(product)

	projections := make([]domain.StrategyProjection, 0, len(domain.AllStrategies))
	for _, tag := range domain.AllStrategies {
		projections = append(projections, h.Fallback.Projection(tag, product.Price))
	}

	recommendation := domain.Recommendation{
		Tickers:         fallback.Tickers,
		Portfolios:      projections,
		EducationalText: fallback.Education,
		ExplanationText: fallback.Explanation,
		OverallSource:   domain.SourceFallback,
	}
	recommendation.TickerPrices = h.lookupQuotes(ctx, fallback.Tickers)

	return recommendation
}

func (h recommendationServiceHandler) lookupQuotes(ctx context.Context, tickers []string) map[string]decimal.Decimal {
	if h.QuoteService == nil || len(tickers) == 0 || ctx.Err() != nil {
		return nil
	}

	quoteCtx, cancel := context.WithTimeout(ctx, quoteLookupTimeout)
	defer cancel()

	prices := h.QuoteService.LatestPrices(quoteCtx, tickers)
	if len(prices) == 0 {
		return nil
	}
	return prices
}

func liveProjection(tag domain.StrategyTag, amount decimal.Decimal, result domain.SimulationResult) domain.StrategyProjection {
	totalReturn := result.ProjectedValue.Sub(amount).Round(2)
	returnPercentage := decimal.Zero
	if !amount.IsZero() {
		returnPercentage = totalReturn.Div(amount).Mul(decimal.NewFromInt(100)).Round(2)
	}

	projection := domain.StrategyProjection{
		Strategy:         tag,
		InitialAmount:    amount,
		ProjectedValue:   result.ProjectedValue.Round(2),
		TotalReturn:      totalReturn,
		ReturnPercentage: returnPercentage,
		TimePeriod:       fmt.Sprintf("%d months", result.MonthsSimulated),
		Source:           domain.SourceLive,
	}

	if len(result.GrowthTrend) > 0 {
		points := make([]float64, 0, len(result.GrowthTrend))
		for _, v := range result.GrowthTrend {
			f, _ := v.Float64()
			points = append(points, f)
		}
		if mean, err := stats.Mean(points); err == nil {
			meanValue := decimal.NewFromFloat(mean).Round(2)
			projection.MeanTrendValue = &meanValue
		}
	}

	return projection
}

func overallSource(liveCount, total int) domain.Source {
	switch liveCount {
	case total:
		return domain.SourceLive
	case 0:
		return domain.SourceFallback
	default:
		return domain.SourceMixed
	}
}
