package service

import (
	"context"
	"errors"
	"fmt"
	"stockswap/internal/domain"
	"stockswap/internal/logger"
	"stockswap/internal/repository"
	"stockswap/pkg/investease"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var (
	ErrRegistrationFailed    = errors.New("session: registration failed")
	ErrAccountCreationFailed = errors.New("session: account creation failed")
)

// accountStartingBalance gives the upstream account enough cash to open
// portfolios at any realistic product price.
var accountStartingBalance = decimal.NewFromInt(100000)

// SessionService idempotently resolves the (token, accountId) pair required
// by every portfolio operation. Safe for concurrent first calls: overlapping
// bootstraps collapse into a single registration.
type SessionService interface {
	EnsureSession(ctx context.Context) (domain.Credentials, error)
}

type sessionServiceHandler struct {
	InvestEaseClient     investease.Client
	CredentialRepository repository.CredentialRepository

	bootstrapGroup *singleflight.Group
}

func NewSessionService(
	investEaseClient investease.Client,
	credentialRepository repository.CredentialRepository,
) SessionService {
	return &sessionServiceHandler{
		InvestEaseClient:     investEaseClient,
		CredentialRepository: credentialRepository,
		bootstrapGroup:       &singleflight.Group{},
	}
}

func (h *sessionServiceHandler) EnsureSession(ctx context.Context) (domain.Credentials, error) {
	result, err, _ := h.bootstrapGroup.Do("session", func() (interface{}, error) {
		return h.bootstrap(ctx)
	})
	if err != nil {
		return domain.Credentials{}, err
	}

	return result.(domain.Credentials), nil
}

func (h *sessionServiceHandler) bootstrap(ctx context.Context) (domain.Credentials, error) {
	log := logger.FromContext(ctx)

	credentials, err := h.CredentialRepository.Get()
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: %s", ErrRegistrationFailed, err.Error())
	}

	if credentials.Token == "" {
		suffix := time.Now().UnixMilli()
		uniqueName := fmt.Sprintf("StockSwap_%d", suffix)
		uniqueContact := fmt.Sprintf("team%d@stockswap.app", suffix)

		token, err := h.InvestEaseClient.Register(ctx, uniqueName, uniqueContact)
		if err != nil {
			return domain.Credentials{}, fmt.Errorf("%w: %s", ErrRegistrationFailed, err.Error())
		}
		inspectToken(ctx, token)

		if err := h.CredentialRepository.SetToken(token); err != nil {
			return domain.Credentials{}, fmt.Errorf("%w: %s", ErrRegistrationFailed, err.Error())
		}
		credentials.Token = token
		log.Infof("registered with upstream as %s", uniqueName)
	}

	if credentials.AccountID == "" {
		accountID, err := h.createOrAdoptAccount(ctx, credentials.Token)
		if err != nil {
			return domain.Credentials{}, err
		}
		if err := h.CredentialRepository.SetAccountID(accountID); err != nil {
			return domain.Credentials{}, fmt.Errorf("%w: %s", ErrAccountCreationFailed, err.Error())
		}
		credentials.AccountID = accountID
	}

	return credentials, nil
}

func (h *sessionServiceHandler) createOrAdoptAccount(ctx context.Context, token string) (string, error) {
	log := logger.FromContext(ctx)

	uniqueContact := fmt.Sprintf("user%d@stockswap.app", time.Now().UnixMilli())
	accountID, err := h.InvestEaseClient.CreateAccount(ctx, token, "Student User", uniqueContact, accountStartingBalance)
	if err == nil {
		return accountID, nil
	}
	if !errors.Is(err, investease.ErrAccountExists) {
		return "", fmt.Errorf("%w: %s", ErrAccountCreationFailed, err.Error())
	}

	// 409 means an account for this registration already exists - adopt it.
	accounts, err := h.InvestEaseClient.ListAccounts(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAccountCreationFailed, err.Error())
	}
	if len(accounts) == 0 {
		return "", fmt.Errorf("%w: account exists upstream but none listed", ErrAccountCreationFailed)
	}
	log.Infof("adopting existing upstream account %s", accounts[0].ID)

	return accounts[0].ID, nil
}

// inspectToken logs the shape of the upstream-issued token. Expiry is
// upstream's responsibility; a malformed token is still stored and used.
func inspectToken(ctx context.Context, token string) {
	log := logger.FromContext(ctx)

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		log.Warnf("upstream token is not a parseable JWT: %v", err)
		return
	}
	if exp, ok := claims["exp"].(float64); ok {
		log.Debugf("upstream token expires at %s", time.Unix(int64(exp), 0).UTC())
	}
}
