package service

import (
	"context"
	"fmt"
	"regexp"
	"stockswap/internal/domain"
	"stockswap/internal/logger"
	"stockswap/pkg/cohere"
	"strings"
	"time"
)

const (
	maxSuggestionAttempts = 3
	suggestionBackoff     = time.Second

	tickerMaxTokens    = 30
	tickerTemperature  = 0.1
	educationMaxTokens = 100
	educationTemp      = 0.4
)

// DefaultRejectionPatterns flag model replies that drifted into prose instead
// of bare ticker symbols. Tuning the list does not touch control flow.
var DefaultRejectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.`),
	regexp.MustCompile(`(?i)\b(Here|I|recommend|suggest|Consider|Based|The|For)\b`),
	regexp.MustCompile(`(?i)\b(are|is|will|should|could)\b`),
	regexp.MustCompile(`[.!?].*[.!?]`),
}

var nonTickerChars = regexp.MustCompile(`[^\w\s,]`)
var tickerSeparators = regexp.MustCompile(`[,\s]+`)

// SuggestionService asks the text-generation API for 2-3 ticker symbols plus
// an educational blurb. It never fails: exhausted retries degrade to the
// fallback rule engine.
type SuggestionService interface {
	SuggestStocks(ctx context.Context, product domain.ProductDescriptor) domain.StockSuggestion
}

type suggestionServiceHandler struct {
	CohereClient      cohere.Client
	Fallback          FallbackEngine
	RejectionPatterns []*regexp.Regexp

	attempts int
	backoff  time.Duration
}

func NewSuggestionService(cohereClient cohere.Client, fallback FallbackEngine) SuggestionService {
	return suggestionServiceHandler{
		CohereClient:      cohereClient,
		Fallback:          fallback,
		RejectionPatterns: DefaultRejectionPatterns,
		attempts:          maxSuggestionAttempts,
		backoff:           suggestionBackoff,
	}
}

func (h suggestionServiceHandler) SuggestStocks(ctx context.Context, product domain.ProductDescriptor) domain.StockSuggestion {
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= h.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return h.fallbackSuggestion(product)
			case <-time.After(h.backoff):
			}
		}

		raw, err := h.CohereClient.Generate(ctx, cohere.GenerateRequest{
			Prompt:        buildTickerPrompt(product),
			MaxTokens:     tickerMaxTokens,
			Temperature:   tickerTemperature,
			StopSequences: []string{"\n", ".", "!", "?"},
		})
		if err != nil {
			log.Warnf("ticker generation attempt %d/%d failed: %v", attempt, h.attempts, err)
			continue
		}

		if pattern := h.matchRejection(raw); pattern != "" {
			log.Warnf("rejecting model reply on attempt %d/%d (matched %s): %q", attempt, h.attempts, pattern, raw)
			continue
		}

		tickers := parseTickers(raw)
		if len(tickers) == 0 {
			log.Warnf("no parseable tickers in model reply on attempt %d/%d: %q", attempt, h.attempts, raw)
			continue
		}

		return domain.StockSuggestion{
			Tickers:         tickers,
			EducationalText: h.educationalText(ctx, product, tickers),
		}
	}

	log.Infof("ticker generation exhausted %d attempts, using fallback rules", h.attempts)
	return h.fallbackSuggestion(product)
}

func (h suggestionServiceHandler) fallbackSuggestion(product domain.ProductDescriptor) domain.StockSuggestion {
	fallback := h.Fallback.Suggest(product)
	return domain.StockSuggestion{
		Tickers:         fallback.Tickers,
		EducationalText: fallback.Education,
	}
}

func (h suggestionServiceHandler) matchRejection(reply string) string {
	for _, pattern := range h.RejectionPatterns {
		if pattern.MatchString(reply) {
			return pattern.String()
		}
	}
	return ""
}

// parseTickers strips punctuation, splits on commas and whitespace, keeps
// tokens of plausible ticker length, uppercases, and caps at 3.
func parseTickers(reply string) []string {
	cleaned := nonTickerChars.ReplaceAllString(reply, "")
	tokens := tickerSeparators.Split(cleaned, -1)

	tickers := []string{}
	for _, token := range tokens {
		if len(token) < 2 || len(token) > 5 {
			continue
		}
		tickers = append(tickers, strings.ToUpper(token))
		if len(tickers) == 3 {
			break
		}
	}

	return tickers
}

// educationalText is best effort - any failure substitutes the templated
// sentence.
func (h suggestionServiceHandler) educationalText(ctx context.Context, product domain.ProductDescriptor, tickers []string) string {
	text, err := h.CohereClient.Generate(ctx, cohere.GenerateRequest{
		Prompt:      buildEducationPrompt(product, tickers),
		MaxTokens:   educationMaxTokens,
		Temperature: educationTemp,
	})
	if err != nil || text == "" {
		return fmt.Sprintf(
			"Learn about investing in %s - companies that could benefit from consumer trends in the %s sector.",
			strings.Join(tickers, ", "), strings.ToLower(product.Category),
		)
	}

	return text
}

func buildTickerPrompt(product domain.ProductDescriptor) string {
	return fmt.Sprintf(`Act as a financial advisor. Based on this product, suggest exactly 2-3 US stock ticker symbols.

Product: %s
Category: %s
Price: $%s

Rules:
- Return ONLY stock ticker symbols
- Use real US stock tickers (2-5 letters)
- Separate with commas and spaces
- No explanations or other text
- Choose companies related to this product category

Examples:
- For electronics: AAPL, MSFT, GOOGL
- For gaming: NVDA, AMD, ATVI
- For fashion: NKE, LULU, VFC

Your response:`, product.Name, product.Category, product.Price.StringFixed(2))
}

func buildEducationPrompt(product domain.ProductDescriptor, tickers []string) string {
	return fmt.Sprintf(`Create a brief educational message about investing in these stocks: %s as an alternative to buying %s products like "%s".

Write 1-2 sentences explaining:
1. Why these companies relate to the %s sector
2. How consumer spending in this area could benefit these investments

Keep it informative but accessible to beginner investors.

Educational message:`, strings.Join(tickers, ", "), product.Category, product.Name, product.Category)
}
