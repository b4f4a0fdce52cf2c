package repository

import (
	"database/sql"
	"fmt"
	"stockswap/internal/domain"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// keepLastPurchases caps the avoided-purchase ledger. The running total keeps
// accumulating past the cap.
const keepLastPurchases = 50

type SavingsRepository interface {
	Add(purchase domain.AvoidedPurchase) (*domain.AvoidedPurchase, error)
	List(limit int) ([]domain.AvoidedPurchase, error)
	TotalSavings() (decimal.Decimal, error)
}

type savingsRepositoryHandler struct {
	Db *sql.DB
}

const savingsSchema = `
CREATE TABLE IF NOT EXISTS avoided_purchases (
	id TEXT PRIMARY KEY,
	product_name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS savings_totals (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	total TEXT NOT NULL DEFAULT '0'
);
INSERT OR IGNORE INTO savings_totals (id) VALUES (1);
`

func NewSavingsRepository(db *sql.DB) (SavingsRepository, error) {
	if _, err := db.Exec(savingsSchema); err != nil {
		return nil, fmt.Errorf("failed to initialize savings tables: %w", err)
	}
	return savingsRepositoryHandler{Db: db}, nil
}

func (h savingsRepositoryHandler) Add(purchase domain.AvoidedPurchase) (*domain.AvoidedPurchase, error) {
	purchase.ID = uuid.NewString()
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now().UTC()
	}

	tx, err := h.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO avoided_purchases (id, product_name, category, price, created_at) VALUES (?, ?, ?, ?, ?)`,
		purchase.ID,
		purchase.ProductName,
		purchase.Category,
		purchase.Price.String(),
		purchase.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record avoided purchase: %w", err)
	}

	var totalStr string
	if err := tx.QueryRow(`SELECT total FROM savings_totals WHERE id = 1`).Scan(&totalStr); err != nil {
		return nil, fmt.Errorf("failed to read savings total: %w", err)
	}
	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt savings total %q: %w", totalStr, err)
	}
	total = total.Add(purchase.Price)
	if _, err := tx.Exec(`UPDATE savings_totals SET total = ? WHERE id = 1`, total.String()); err != nil {
		return nil, fmt.Errorf("failed to update savings total: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM avoided_purchases WHERE id NOT IN (
			SELECT id FROM avoided_purchases ORDER BY created_at DESC LIMIT ?
		)`,
		keepLastPurchases,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prune avoided purchases: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (h savingsRepositoryHandler) List(limit int) ([]domain.AvoidedPurchase, error) {
	if limit <= 0 || limit > keepLastPurchases {
		limit = keepLastPurchases
	}

	rows, err := h.Db.Query(
		`SELECT id, product_name, category, price, created_at FROM avoided_purchases ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list avoided purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.AvoidedPurchase{}
	for rows.Next() {
		var (
			purchase   domain.AvoidedPurchase
			priceStr   string
			createdStr string
		)
		if err := rows.Scan(&purchase.ID, &purchase.ProductName, &purchase.Category, &priceStr, &createdStr); err != nil {
			return nil, err
		}
		purchase.Price, err = decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt price %q: %w", priceStr, err)
		}
		purchase.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %q: %w", createdStr, err)
		}
		purchases = append(purchases, purchase)
	}

	return purchases, rows.Err()
}

func (h savingsRepositoryHandler) TotalSavings() (decimal.Decimal, error) {
	var totalStr string
	if err := h.Db.QueryRow(`SELECT total FROM savings_totals WHERE id = 1`).Scan(&totalStr); err != nil {
		return decimal.Zero, fmt.Errorf("failed to read savings total: %w", err)
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt savings total %q: %w", totalStr, err)
	}

	return total, nil
}
