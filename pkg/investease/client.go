// Package investease wraps the upstream investment-simulation REST API
// (account registration, portfolio lifecycle, multi-month growth simulation).
package investease

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountExists maps the 409 returned when an account with the
	// submitted contact already exists. Callers recover by listing accounts.
	ErrAccountExists = errors.New("investease: account already exists")

	// ErrSimulationLimitReached maps the 400 returned once an account has
	// consumed its cumulative 60 simulated months. There is no reset
	// mechanism; treat it as permanent for the account.
	ErrSimulationLimitReached = errors.New("investease: simulation month limit reached")
)

const simulationLimitMessage = "Cannot simulate for more than 60 months"

type Account struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type Portfolio struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"accountId"`
	StrategyName  string          `json:"strategyName"`
	InitialAmount decimal.Decimal `json:"initialAmount"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
}

type SimulationResult struct {
	StrategyName     string            `json:"strategyName"`
	PortfolioID      string            `json:"portfolioId"`
	ProjectedValue   decimal.Decimal   `json:"projectedValue"`
	PercentageReturn decimal.Decimal   `json:"percentageReturn"`
	MonthsSimulated  int               `json:"monthsSimulated"`
	GrowthTrend      []decimal.Decimal `json:"growthTrend"`
}

type Client interface {
	Register(ctx context.Context, uniqueName, uniqueContact string) (string, error)
	CreateAccount(ctx context.Context, token, name, contact string, startingBalance decimal.Decimal) (string, error)
	ListAccounts(ctx context.Context, token string) ([]Account, error)
	CreatePortfolio(ctx context.Context, token, accountID, strategyName string, initialAmount decimal.Decimal) (*Portfolio, error)
	ListPortfolios(ctx context.Context, token, accountID string) ([]Portfolio, error)
	DeletePortfolio(ctx context.Context, token, accountID, portfolioID string) error
	Simulate(ctx context.Context, token, accountID string, months int) ([]SimulationResult, error)
}

type clientHandler struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient(baseUrl string, timeout time.Duration) Client {
	return &clientHandler{
		HttpClient: &http.Client{
			Timeout: timeout,
		},
		BaseUrl: strings.TrimRight(baseUrl, "/"),
	}
}

func (c clientHandler) do(ctx context.Context, method, path, token string, body interface{}, out interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseUrl+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode >= 300 {
		return response.StatusCode, responseBytes, nil
	}

	if out != nil && len(responseBytes) > 0 {
		if err := json.Unmarshal(responseBytes, out); err != nil {
			return response.StatusCode, responseBytes, fmt.Errorf("failed to parse %s %s response: %w", method, path, err)
		}
	}

	return response.StatusCode, responseBytes, nil
}

func (c clientHandler) Register(ctx context.Context, uniqueName, uniqueContact string) (string, error) {
	requestBody := map[string]string{
		"uniqueName":    uniqueName,
		"uniqueContact": uniqueContact,
	}
	responseBody := struct {
		Token string `json:"token"`
	}{}

	status, raw, err := c.do(ctx, http.MethodPost, "/accounts/register", "", requestBody, &responseBody)
	if err != nil {
		return "", err
	}
	if status >= 300 {
		return "", fmt.Errorf("registration failed with status code %d: %s", status, string(raw))
	}
	if responseBody.Token == "" {
		return "", fmt.Errorf("no token in registration response")
	}

	return responseBody.Token, nil
}

func (c clientHandler) CreateAccount(ctx context.Context, token, name, contact string, startingBalance decimal.Decimal) (string, error) {
	requestBody := map[string]interface{}{
		"name":            name,
		"contact":         contact,
		"startingBalance": startingBalance,
	}
	responseBody := struct {
		ID string `json:"id"`
	}{}

	status, raw, err := c.do(ctx, http.MethodPost, "/accounts", token, requestBody, &responseBody)
	if err != nil {
		return "", err
	}
	if status == http.StatusConflict {
		return "", ErrAccountExists
	}
	if status >= 300 {
		return "", fmt.Errorf("account creation failed with status code %d: %s", status, string(raw))
	}
	if responseBody.ID == "" {
		return "", fmt.Errorf("no account id in creation response")
	}

	return responseBody.ID, nil
}

func (c clientHandler) ListAccounts(ctx context.Context, token string) ([]Account, error) {
	accounts := []Account{}
	status, raw, err := c.do(ctx, http.MethodGet, "/accounts", token, nil, &accounts)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("failed to list accounts with status code %d: %s", status, string(raw))
	}

	return accounts, nil
}

func (c clientHandler) CreatePortfolio(ctx context.Context, token, accountID, strategyName string, initialAmount decimal.Decimal) (*Portfolio, error) {
	requestBody := map[string]interface{}{
		"strategyName":  strategyName,
		"initialAmount": initialAmount,
	}
	portfolio := Portfolio{}

	path := fmt.Sprintf("/accounts/%s/portfolios", accountID)
	status, raw, err := c.do(ctx, http.MethodPost, path, token, requestBody, &portfolio)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("portfolio creation failed with status code %d: %s", status, string(raw))
	}
	if portfolio.ID == "" {
		return nil, fmt.Errorf("no portfolio id in creation response")
	}

	return &portfolio, nil
}

func (c clientHandler) ListPortfolios(ctx context.Context, token, accountID string) ([]Portfolio, error) {
	portfolios := []Portfolio{}
	path := fmt.Sprintf("/accounts/%s/portfolios", accountID)
	status, raw, err := c.do(ctx, http.MethodGet, path, token, nil, &portfolios)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("failed to list portfolios with status code %d: %s", status, string(raw))
	}

	return portfolios, nil
}

func (c clientHandler) DeletePortfolio(ctx context.Context, token, accountID, portfolioID string) error {
	path := fmt.Sprintf("/accounts/%s/portfolios/%s", accountID, portfolioID)
	status, raw, err := c.do(ctx, http.MethodDelete, path, token, nil, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("failed to delete portfolio %s with status code %d: %s", portfolioID, status, string(raw))
	}

	return nil
}

func (c clientHandler) Simulate(ctx context.Context, token, accountID string, months int) ([]SimulationResult, error) {
	requestBody := map[string]int{
		"months": months,
	}
	responseBody := struct {
		Results []SimulationResult `json:"results"`
	}{}

	path := fmt.Sprintf("/accounts/%s/simulate", accountID)
	status, raw, err := c.do(ctx, http.MethodPost, path, token, requestBody, &responseBody)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest && strings.Contains(string(raw), simulationLimitMessage) {
		return nil, ErrSimulationLimitReached
	}
	if status >= 300 {
		return nil, fmt.Errorf("simulation failed with status code %d: %s", status, string(raw))
	}

	return responseBody.Results, nil
}
