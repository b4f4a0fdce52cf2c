package repository

import (
	"fmt"
	"stockswap/internal/domain"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSavingsRepository(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("add assigns an id and accumulates the total", func(t *testing.T) {
		repo, err := NewSavingsRepository(newTestDb(t))
		require.NoError(t, err)

		stored, err := repo.Add(domain.AvoidedPurchase{
			ProductName: "PlayStation 5",
			Category:    "gaming",
			Price:       decimal.NewFromFloat(499.99),
			CreatedAt:   base,
		})
		require.NoError(t, err)
		require.NotEmpty(t, stored.ID)

		_, err = repo.Add(domain.AvoidedPurchase{
			ProductName: "Sneakers",
			Category:    "shoes",
			Price:       decimal.NewFromFloat(120.50),
			CreatedAt:   base.Add(time.Minute),
		})
		require.NoError(t, err)

		total, err := repo.TotalSavings()
		require.NoError(t, err)
		require.True(t, total.Equal(decimal.NewFromFloat(620.49)), total.String())
	})

	t.Run("list returns newest first", func(t *testing.T) {
		repo, err := NewSavingsRepository(newTestDb(t))
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := repo.Add(domain.AvoidedPurchase{
				ProductName: fmt.Sprintf("item-%d", i),
				Price:       decimal.NewFromInt(10),
				CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
		}

		purchases, err := repo.List(0)
		require.NoError(t, err)
		require.Len(t, purchases, 3)
		require.Equal(t, "item-2", purchases[0].ProductName)
		require.Equal(t, "item-0", purchases[2].ProductName)

		purchases, err = repo.List(2)
		require.NoError(t, err)
		require.Len(t, purchases, 2)
		require.Equal(t, "item-2", purchases[0].ProductName)
	})

	t.Run("ledger prunes to the newest 50 while the total keeps growing", func(t *testing.T) {
		db := newTestDb(t)
		repo, err := NewSavingsRepository(db)
		require.NoError(t, err)

		for i := 0; i < keepLastPurchases+5; i++ {
			_, err := repo.Add(domain.AvoidedPurchase{
				ProductName: fmt.Sprintf("item-%d", i),
				Price:       decimal.NewFromInt(1),
				CreatedAt:   base.Add(time.Duration(i) * time.Second),
			})
			require.NoError(t, err)
		}

		purchases, err := repo.List(0)
		require.NoError(t, err)
		require.Len(t, purchases, keepLastPurchases)
		require.Equal(t, fmt.Sprintf("item-%d", keepLastPurchases+4), purchases[0].ProductName)

		total, err := repo.TotalSavings()
		require.NoError(t, err)
		require.True(t, total.Equal(decimal.NewFromInt(int64(keepLastPurchases+5))), total.String())
	})

	t.Run("round trips price and timestamp exactly", func(t *testing.T) {
		repo, err := NewSavingsRepository(newTestDb(t))
		require.NoError(t, err)

		createdAt := base.Add(123456789 * time.Nanosecond)
		_, err = repo.Add(domain.AvoidedPurchase{
			ProductName: "Jacket",
			Category:    "clothing",
			Price:       decimal.NewFromFloat(89.95),
			CreatedAt:   createdAt,
		})
		require.NoError(t, err)

		purchases, err := repo.List(1)
		require.NoError(t, err)
		require.Len(t, purchases, 1)
		require.True(t, purchases[0].Price.Equal(decimal.NewFromFloat(89.95)))
		require.True(t, purchases[0].CreatedAt.Equal(createdAt))
	})
}
