package service

import (
	"context"
	"fmt"
	"stockswap/internal/domain"
	"stockswap/internal/logger"
	"stockswap/pkg/investease"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Upstream enforces a hard cap of 3 portfolios per account.
const portfolioCap = 3

// Amounts within a cent of each other count as the same portfolio for reuse.
var portfolioAmountEpsilon = decimal.NewFromFloat(0.01)

// PortfolioService owns the portfolio lifecycle against the upstream finance
// API: idempotent creation per strategy, cap-driven purges, and the batched
// growth simulation.
type PortfolioService interface {
	// EnsurePortfolios creates (or reuses) one portfolio per strategy at the
	// given amount. Failures are isolated per strategy and reported in the
	// second map; a strategy appears in exactly one of the two maps.
	EnsurePortfolios(ctx context.Context, credentials domain.Credentials, amount decimal.Decimal) (map[domain.StrategyTag]domain.Portfolio, map[domain.StrategyTag]error)

	// Simulate runs one batched simulation across the account's portfolios.
	// Returns investease.ErrSimulationLimitReached when the account's 60-month
	// ceiling is exhausted.
	Simulate(ctx context.Context, credentials domain.Credentials, months int) ([]domain.SimulationResult, error)
}

type portfolioServiceHandler struct {
	InvestEaseClient investease.Client
}

func NewPortfolioService(investEaseClient investease.Client) PortfolioService {
	return portfolioServiceHandler{
		InvestEaseClient: investEaseClient,
	}
}

func (h portfolioServiceHandler) EnsurePortfolios(
	ctx context.Context,
	credentials domain.Credentials,
	amount decimal.Decimal,
) (map[domain.StrategyTag]domain.Portfolio, map[domain.StrategyTag]error) {
	log := logger.FromContext(ctx)

	existing, err := h.InvestEaseClient.ListPortfolios(ctx, credentials.Token, credentials.AccountID)
	if err != nil {
		// a failed listing is survivable - proceed as if none exist and let
		// creation succeed or fail per strategy
		log.Warnf("failed to list existing portfolios: %v", err)
		existing = nil
	}

	reusable := map[domain.StrategyTag]domain.Portfolio{}
	for _, p := range existing {
		tag, ok := domain.StrategyFromUpstreamName(p.StrategyName)
		if !ok {
			continue
		}
		if p.InitialAmount.Sub(amount).Abs().LessThan(portfolioAmountEpsilon) {
			reusable[tag] = domain.Portfolio{
				ID:            p.ID,
				Strategy:      tag,
				InitialAmount: p.InitialAmount,
				CurrentValue:  p.CurrentValue,
			}
		}
	}

	toCreate := []domain.StrategyTag{}
	for _, tag := range domain.AllStrategies {
		if _, ok := reusable[tag]; !ok {
			toCreate = append(toCreate, tag)
		}
	}

	if len(toCreate) > 0 && len(existing) >= portfolioCap {
		h.purgePortfolios(ctx, credentials, existing)
		// everything is gone now, including anything we planned to reuse
		reusable = map[domain.StrategyTag]domain.Portfolio{}
		toCreate = append([]domain.StrategyTag{}, domain.AllStrategies...)
	}

	portfolios := map[domain.StrategyTag]domain.Portfolio{}
	failures := map[domain.StrategyTag]error{}
	for tag, p := range reusable {
		log.Debugf("reusing existing %s portfolio %s", tag, p.ID)
		portfolios[tag] = p
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	for _, tag := range toCreate {
		tag := tag
		group.Go(func() error {
			created, err := h.InvestEaseClient.CreatePortfolio(
				groupCtx,
				credentials.Token,
				credentials.AccountID,
				tag.ToUpstreamName(),
				amount,
			)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[tag] = fmt.Errorf("failed to create %s portfolio: %w", tag, err)
				// creation failures degrade only this strategy
				return nil
			}
			portfolios[tag] = domain.Portfolio{
				ID:            created.ID,
				Strategy:      tag,
				InitialAmount: created.InitialAmount,
				CurrentValue:  created.CurrentValue,
			}
			return nil
		})
	}
	_ = group.Wait()

	return portfolios, failures
}

// purgePortfolios deletes sequentially, tolerating individual failures, so a
// stuck portfolio cannot block the rest of the cleanup.
func (h portfolioServiceHandler) purgePortfolios(ctx context.Context, credentials domain.Credentials, portfolios []investease.Portfolio) {
	log := logger.FromContext(ctx)
	log.Infof("at portfolio cap (%d), deleting %d existing portfolios", portfolioCap, len(portfolios))

	for _, p := range portfolios {
		if err := h.InvestEaseClient.DeletePortfolio(ctx, credentials.Token, credentials.AccountID, p.ID); err != nil {
			log.Warnf("failed to delete portfolio %s (%s): %v", p.ID, p.StrategyName, err)
		}
	}
}

func (h portfolioServiceHandler) Simulate(ctx context.Context, credentials domain.Credentials, months int) ([]domain.SimulationResult, error) {
	results, err := h.InvestEaseClient.Simulate(ctx, credentials.Token, credentials.AccountID, months)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := []domain.SimulationResult{}
	for _, result := range results {
		tag, ok := domain.StrategyFromUpstreamName(result.StrategyName)
		if !ok {
			log.Warnf("simulation returned unknown strategy %q, skipping", result.StrategyName)
			continue
		}
		out = append(out, domain.SimulationResult{
			Strategy:        tag,
			PortfolioID:     result.PortfolioID,
			ProjectedValue:  result.ProjectedValue,
			MonthsSimulated: result.MonthsSimulated,
			GrowthTrend:     result.GrowthTrend,
		})
	}

	return out, nil
}
