package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDb(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestCredentialRepository(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		repo, err := NewCredentialRepository(newTestDb(t))
		require.NoError(t, err)

		credentials, err := repo.Get()
		require.NoError(t, err)
		require.Empty(t, credentials.Token)
		require.Empty(t, credentials.AccountID)
		require.False(t, credentials.Usable())
	})

	t.Run("token and account id persist independently", func(t *testing.T) {
		repo, err := NewCredentialRepository(newTestDb(t))
		require.NoError(t, err)

		require.NoError(t, repo.SetToken("token-1"))
		credentials, err := repo.Get()
		require.NoError(t, err)
		require.Equal(t, "token-1", credentials.Token)
		require.Empty(t, credentials.AccountID)

		require.NoError(t, repo.SetAccountID("acct-1"))
		credentials, err = repo.Get()
		require.NoError(t, err)
		require.Equal(t, "token-1", credentials.Token)
		require.Equal(t, "acct-1", credentials.AccountID)
		require.True(t, credentials.Usable())
	})

	t.Run("writes overwrite the single row", func(t *testing.T) {
		db := newTestDb(t)
		repo, err := NewCredentialRepository(db)
		require.NoError(t, err)

		require.NoError(t, repo.SetToken("token-1"))
		require.NoError(t, repo.SetToken("token-2"))

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&count))
		require.Equal(t, 1, count)

		credentials, err := repo.Get()
		require.NoError(t, err)
		require.Equal(t, "token-2", credentials.Token)
	})

	t.Run("schema setup is idempotent", func(t *testing.T) {
		db := newTestDb(t)
		repo, err := NewCredentialRepository(db)
		require.NoError(t, err)
		require.NoError(t, repo.SetToken("token-1"))

		repo, err = NewCredentialRepository(db)
		require.NoError(t, err)
		credentials, err := repo.Get()
		require.NoError(t, err)
		require.Equal(t, "token-1", credentials.Token)
	})
}
