package service

import (
	"context"
	"fmt"
	"stockswap/internal/domain"
	mock_repository "stockswap/internal/repository/mocks"
	mock_cohere "stockswap/pkg/cohere/mocks"
	"stockswap/pkg/investease"
	mock_investease "stockswap/pkg/investease/mocks"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestRecommendationHandler wires the real services over mocked upstream
// clients. Quotes are left nil so no network lookup happens in tests.
func newTestRecommendationHandler(
	investEaseClient investease.Client,
	cohereClient *mock_cohere.MockClient,
	credentialRepository *mock_repository.MockCredentialRepository,
) recommendationServiceHandler {
	fallback := NewFallbackEngine()
	return recommendationServiceHandler{
		SessionService:   NewSessionService(investEaseClient, credentialRepository),
		PortfolioService: NewPortfolioService(investEaseClient),
		SuggestionService: suggestionServiceHandler{
			CohereClient:      cohereClient,
			Fallback:          fallback,
			RejectionPatterns: DefaultRejectionPatterns,
			attempts:          1,
			backoff:           time.Millisecond,
		},
		Fallback:         fallback,
		simulationMonths: defaultSimulationMonths,
	}
}

func expectStoredCredentials(credentialRepository *mock_repository.MockCredentialRepository) {
	credentialRepository.EXPECT().Get().
		Return(domain.Credentials{Token: "token-1", AccountID: "acct-1"}, nil)
}

func expectTickerGeneration(cohereClient *mock_cohere.MockClient) {
	cohereClient.EXPECT().
		Generate(gomock.Any(), gomock.Cond(isTickerRequest)).
		Return("AAPL, MSFT", nil)
	cohereClient.EXPECT().
		Generate(gomock.Any(), gomock.Cond(isEducationRequest)).
		Return("Tech companies benefit from gadget demand.", nil)
}

func TestGetRecommendation(t *testing.T) {
	product := domain.ProductDescriptor{
		Name:     "MacBook Air",
		Category: "electronics",
		Price:    decimal.NewFromInt(999),
	}

	t.Run("fully live when every upstream call succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		investEaseClient := mock_investease.NewMockClient(ctrl)
		cohereClient := mock_cohere.NewMockClient(ctrl)
		credentialRepository := mock_repository.NewMockCredentialRepository(ctrl)
		handler := newTestRecommendationHandler(investEaseClient, cohereClient, credentialRepository)

		expectStoredCredentials(credentialRepository)
		expectTickerGeneration(cohereClient)
		investEaseClient.EXPECT().
			ListPortfolios(gomock.Any(), "token-1", "acct-1").
			Return(nil, nil)
		investEaseClient.EXPECT().
			CreatePortfolio(gomock.Any(), "token-1", "acct-1", gomock.Any(), product.Price).
			DoAndReturn(func(_ context.Context, _, _, strategyName string, amount decimal.Decimal) (*investease.Portfolio, error) {
				return &investease.Portfolio{ID: "p-" + strategyName, StrategyName: strategyName, InitialAmount: amount, CurrentValue: amount}, nil
			}).
			Times(3)
		investEaseClient.EXPECT().
			Simulate(gomock.Any(), "token-1", "acct-1", defaultSimulationMonths).
			Return([]investease.SimulationResult{
				{
					PortfolioID:     "p-conservative",
					StrategyName:    "conservative",
					ProjectedValue:  decimal.NewFromFloat(1019.50),
					MonthsSimulated: 6,
					GrowthTrend:     []decimal.Decimal{decimal.NewFromInt(999), decimal.NewFromFloat(1019.50)},
				},
				{PortfolioID: "p-balanced", StrategyName: "balanced", ProjectedValue: decimal.NewFromFloat(1048.95), MonthsSimulated: 6},
				{PortfolioID: "p-aggressive", StrategyName: "aggressive_growth", ProjectedValue: decimal.NewFromFloat(1098.90), MonthsSimulated: 6},
			}, nil)

		recommendation := handler.GetRecommendation(context.Background(), product)

		require.Equal(t, []string{"AAPL", "MSFT"}, recommendation.Tickers)
		require.Equal(t, domain.SourceLive, recommendation.OverallSource)
		require.Len(t, recommendation.Portfolios, 3)
		require.Contains(t, recommendation.ExplanationText, "$999.00")

		conservative := recommendation.Portfolios[0]
		require.Equal(t, domain.StrategyConservative, conservative.Strategy)
		require.Equal(t, domain.SourceLive, conservative.Source)
		require.True(t, conservative.TotalReturn.Equal(decimal.NewFromFloat(20.50)), conservative.TotalReturn.String())
		require.True(t, conservative.ReturnPercentage.Equal(decimal.NewFromFloat(2.05)), conservative.ReturnPercentage.String())
		require.Equal(t, "6 months", conservative.TimePeriod)
		require.NotNil(t, conservative.MeanTrendValue)
		require.True(t, conservative.MeanTrendValue.Equal(decimal.NewFromFloat(1009.25)), conservative.MeanTrendValue.String())
	})

	t.Run("non-positive price projects the default amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		investEaseClient := mock_investease.NewMockClient(ctrl)
		cohereClient := mock_cohere.NewMockClient(ctrl)
		credentialRepository := mock_repository.NewMockCredentialRepository(ctrl)
		handler := newTestRecommendationHandler(investEaseClient, cohereClient, credentialRepository)

		expectStoredCredentials(credentialRepository)
		expectTickerGeneration(cohereClient)
		investEaseClient.EXPECT().
			ListPortfolios(gomock.Any(), "token-1", "acct-1").
			Return(nil, nil)
		investEaseClient.EXPECT().
			CreatePortfolio(gomock.Any(), "token-1", "acct-1", gomock.Any(), domain.DefaultProductPrice).
			DoAndReturn(func(_ context.Context, _, _, strategyName string, amount decimal.Decimal) (*investease.Portfolio, error) {
				return &investease.Portfolio{ID: "p-" + strategyName, StrategyName: strategyName, InitialAmount: amount, CurrentValue: amount}, nil
			}).
			Times(3)
		investEaseClient.EXPECT().
			Simulate(gomock.Any(), "token-1", "acct-1", defaultSimulationMonths).
			Return([]investease.SimulationResult{
				{StrategyName: "conservative", ProjectedValue: decimal.NewFromFloat(51.75), MonthsSimulated: 6},
				{StrategyName: "balanced", ProjectedValue: decimal.NewFromFloat(52.50), MonthsSimulated: 6},
				{StrategyName: "aggressive_growth", ProjectedValue: decimal.NewFromFloat(54.95), MonthsSimulated: 6},
			}, nil)

		recommendation := handler.GetRecommendation(context.Background(), domain.ProductDescriptor{
			Name:     "Mystery Box",
			Category: "electronics",
			Price:    decimal.Zero,
		})

		require.Equal(t, domain.SourceLive, recommendation.OverallSource)
		require.Contains(t, recommendation.ExplanationText, "$50.00")
		require.True(t, recommendation.Portfolios[0].InitialAmount.Equal(domain.DefaultProductPrice))
	})

	t.Run("one failed portfolio degrades only its strategy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		investEaseClient := mock_investease.NewMockClient(ctrl)
		cohereClient := mock_cohere.NewMockClient(ctrl)
		credentialRepository := mock_repository.NewMockCredentialRepository(ctrl)
		handler := newTestRecommendationHandler(investEaseClient, cohereClient, credentialRepository)

		expectStoredCredentials(credentialRepository)
		expectTickerGeneration(cohereClient)
		investEaseClient.EXPECT().
			ListPortfolios(gomock.Any(), "token-1", "acct-1").
			Return(nil, nil)
		investEaseClient.EXPECT().
			CreatePortfolio(gomock.Any(), "token-1", "acct-1", "conservative", product.Price).
			Return(&investease.Portfolio{ID: "p-c", StrategyName: "conservative", InitialAmount: product.Price, CurrentValue: product.Price}, nil)
		investEaseClient.EXPECT().
			CreatePortfolio(gomock.Any(), "token-1", "acct-1", "balanced", product.Price).
			Return(&investease.Portfolio{ID: "p-b", StrategyName: "balanced", InitialAmount: product.Price, CurrentValue: product.Price}, nil)
		investEaseClient.EXPECT().
			CreatePortfolio(gomock.Any(), "token-1", "acct-1", "aggressive_growth", product.Price).
			Return(nil, fmt.Errorf("status 502"))
		investEaseClient.EXPECT().
			Simulate(gomock.Any(), "token-1", "acct-1", defaultSimulationMonths).
			Return([]investease.SimulationResult{
				{StrategyName: "conservative", ProjectedValue: decimal.NewFromFloat(1019.50), MonthsSimulated: 6},
				{StrategyName: "balanced", ProjectedValue: decimal.NewFromFloat(1048.95), MonthsSimulated: 6},
			}, nil)

		recommendation := handler.GetRecommendation(context.Background(), product)

		require.Equal(t, domain.SourceMixed, recommendation.OverallSource)
		require.Equal(t, domain.SourceLive, recommendation.Portfolios[0].Source)
		require.Equal(t, domain.SourceLive, recommendation.Portfolios[1].Source)

		aggressive := recommendation.Portfolios[2]
		require.Equal(t, domain.SourceFallback, aggressive.Source)
		require.True(t, aggressive.ProjectedValue.Equal(decimal.NewFromFloat(1148.85)), aggressive.ProjectedValue.String())
		require.Equal(t, "12 months", aggressive.TimePeriod)
	})

	t.Run("unusable session serves fallback without touching the model", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		investEaseClient := mock_investease.NewMockClient(ctrl)
		cohereClient := mock_cohere.NewMockClient(ctrl)
		credentialRepository := mock_repository.NewMockCredentialRepository(ctrl)
		handler := newTestRecommendationHandler(investEaseClient, cohereClient, credentialRepository)

		credentialRepository.EXPECT().Get().Return(domain.Credentials{}, nil)
		investEaseClient.EXPECT().
			Register(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", fmt.Errorf("status 500"))
		// no cohere and no portfolio expectations: the fallback path is local

		recommendation := handler.GetRecommendation(context.Background(), product)

		require.Equal(t, domain.SourceFallback, recommendation.OverallSource)
		require.Equal(t, []string{"AAPL", "MSFT"}, recommendation.Tickers)
		require.Len(t, recommendation.Portfolios, 3)
		for _, projection := range recommendation.Portfolios {
			require.Equal(t, domain.SourceFallback, projection.Source)
		}
		require.NotEmpty(t, recommendation.EducationalText)
	})

	t.Run("simulation limit degrades every projection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		investEaseClient := mock_investease.NewMockClient(ctrl)
		cohereClient := mock_cohere.NewMockClient(ctrl)
		credentialRepository := mock_repository.NewMockCredentialRepository(ctrl)
		handler := newTestRecommendationHandler(investEaseClient, cohereClient, credentialRepository)

		expectStoredCredentials(credentialRepository)
		expectTickerGeneration(cohereClient)
		investEaseClient.EXPECT().
			ListPortfolios(gomock.Any(), "token-1", "acct-1").
			Return([]investease.Portfolio{
				{ID: "p-1", StrategyName: "conservative", InitialAmount: product.Price},
				{ID: "p-2", StrategyName: "balanced", InitialAmount: product.Price},
				{ID: "p-3", StrategyName: "aggressive_growth", InitialAmount: product.Price},
			}, nil)
		investEaseClient.EXPECT().
			Simulate(gomock.Any(), "token-1", "acct-1", defaultSimulationMonths).
			Return(nil, investease.ErrSimulationLimitReached)

		recommendation := handler.GetRecommendation(context.Background(), product)

		require.Equal(t, domain.SourceFallback, recommendation.OverallSource)
		require.Equal(t, []string{"AAPL", "MSFT"}, recommendation.Tickers)
		for _, projection := range recommendation.Portfolios {
			require.Equal(t, domain.SourceFallback, projection.Source)
			require.Equal(t, "12 months", projection.TimePeriod)
		}
	})
}
