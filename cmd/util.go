package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"stockswap/api"
	"stockswap/internal"
	"stockswap/internal/repository"
	"stockswap/internal/service"
	"stockswap/pkg/cohere"
	"stockswap/pkg/investease"

	_ "modernc.org/sqlite"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("sqlite", secrets.SqlitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	credentialRepository, err := repository.NewCredentialRepository(dbConn)
	if err != nil {
		return nil, err
	}
	savingsRepository, err := repository.NewSavingsRepository(dbConn)
	if err != nil {
		return nil, err
	}

	investEaseClient := investease.NewClient(secrets.InvestEaseBaseUrl, secrets.UpstreamTimeout())
	cohereClient := cohere.NewClient(secrets.CohereBaseUrl, secrets.CohereApiKey, secrets.UpstreamTimeout())

	fallbackEngine := service.NewFallbackEngine()
	sessionService := service.NewSessionService(investEaseClient, credentialRepository)
	portfolioService := service.NewPortfolioService(investEaseClient)
	suggestionService := service.NewSuggestionService(cohereClient, fallbackEngine)
	quoteService := service.NewQuoteService()

	recommendationService := service.NewRecommendationService(
		sessionService,
		portfolioService,
		suggestionService,
		quoteService,
		fallbackEngine,
	)

	return &api.ApiHandler{
		Db:                    dbConn,
		RecommendationService: recommendationService,
		SavingsRepository:     savingsRepository,
	}, nil
}
