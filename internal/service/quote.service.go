package service

import (
	"context"
	"stockswap/internal/logger"
	"sync"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// QuoteService decorates suggested tickers with a last traded price. Purely
// cosmetic for the popup, so every failure is tolerated - a ticker with no
// quote is simply omitted.
type QuoteService interface {
	LatestPrices(ctx context.Context, symbols []string) map[string]decimal.Decimal
}

type quoteServiceHandler struct{}

func NewQuoteService() QuoteService {
	return quoteServiceHandler{}
}

func (h quoteServiceHandler) LatestPrices(ctx context.Context, symbols []string) map[string]decimal.Decimal {
	log := logger.FromContext(ctx)

	var mu sync.Mutex
	var wg sync.WaitGroup
	out := map[string]decimal.Decimal{}

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			break
		}
		symbol := symbol
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := quote.Get(symbol)
			if err != nil || q == nil {
				log.Debugf("no quote for %s: %v", symbol, err)
				return
			}
			mu.Lock()
			out[symbol] = decimal.NewFromFloat(q.RegularMarketPrice)
			mu.Unlock()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		// abandon stragglers; whatever resolved in time is enough
	}

	mu.Lock()
	defer mu.Unlock()
	copied := make(map[string]decimal.Decimal, len(out))
	for k, v := range out {
		copied[k] = v
	}
	return copied
}
