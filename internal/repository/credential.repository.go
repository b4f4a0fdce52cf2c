package repository

import (
	"database/sql"
	"fmt"
	"stockswap/internal/domain"
)

// CredentialRepository persists the (token, accountId) pair issued by the
// upstream finance API. One logical row, written by the session bootstrapper
// and read at the start of every recommendation.
type CredentialRepository interface {
	Get() (domain.Credentials, error)
	SetToken(token string) error
	SetAccountID(accountID string) error
}

type credentialRepositoryHandler struct {
	Db *sql.DB
}

const credentialSchema = `
CREATE TABLE IF NOT EXISTS credentials (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL DEFAULT '',
	account_id TEXT NOT NULL DEFAULT ''
);
INSERT OR IGNORE INTO credentials (id) VALUES (1);
`

func NewCredentialRepository(db *sql.DB) (CredentialRepository, error) {
	if _, err := db.Exec(credentialSchema); err != nil {
		return nil, fmt.Errorf("failed to initialize credentials table: %w", err)
	}
	return credentialRepositoryHandler{Db: db}, nil
}

func (h credentialRepositoryHandler) Get() (domain.Credentials, error) {
	credentials := domain.Credentials{}
	err := h.Db.QueryRow(`SELECT token, account_id FROM credentials WHERE id = 1`).
		Scan(&credentials.Token, &credentials.AccountID)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}

	return credentials, nil
}

func (h credentialRepositoryHandler) SetToken(token string) error {
	if _, err := h.Db.Exec(`UPDATE credentials SET token = ? WHERE id = 1`, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (h credentialRepositoryHandler) SetAccountID(accountID string) error {
	if _, err := h.Db.Exec(`UPDATE credentials SET account_id = ? WHERE id = 1`, accountID); err != nil {
		return fmt.Errorf("failed to store account id: %w", err)
	}
	return nil
}
