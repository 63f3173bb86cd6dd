package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/internal/pricing"
)

func TestTradeInsertValidates(t *testing.T) {
	s := newTestStore(t)
	repo := NewTradeRepo(s)
	ctx := context.Background()

	err := repo.Insert(ctx, pricing.TradePoint{Country: "Germany", Year: 2024})
	require.Error(t, err)
	assert.Equal(t, intelligence.KindInvalidRequest, intelligence.KindOf(err))

	err = repo.Insert(ctx, pricing.TradePoint{HSCode: "690721", Country: "Germany"})
	require.Error(t, err)
	assert.Equal(t, intelligence.KindInvalidRequest, intelligence.KindOf(err))

	require.NoError(t, repo.Insert(ctx, pricing.TradePoint{
		HSCode: "690721", Country: "Germany", Year: 2024, ImportValue: 110,
	}))
}

func TestRecentTradeDataScopeOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	repo := NewTradeRepo(s)
	ctx := context.Background()

	for year := 2018; year <= 2025; year++ {
		require.NoError(t, repo.Insert(ctx, pricing.TradePoint{
			HSCode: "690721", Country: "Germany", Year: year, ImportValue: float64(year - 2000),
		}))
	}
	// Other scopes must not bleed in.
	require.NoError(t, repo.Insert(ctx, pricing.TradePoint{HSCode: "690721", Country: "Japan", Year: 2025}))
	require.NoError(t, repo.Insert(ctx, pricing.TradePoint{HSCode: "690410", Country: "Germany", Year: 2025}))

	points, err := repo.RecentTradeData(ctx, "690721", "Germany", 5)
	require.NoError(t, err)
	require.Len(t, points, 5)
	for i, p := range points {
		assert.Equal(t, 2025-i, p.Year)
		assert.Equal(t, "Germany", p.Country)
		assert.Equal(t, "690721", p.HSCode)
	}
}

func TestRecentTradeDataDefaultLimit(t *testing.T) {
	s := newTestStore(t)
	repo := NewTradeRepo(s)
	ctx := context.Background()

	for year := 2010; year <= 2025; year++ {
		require.NoError(t, repo.Insert(ctx, pricing.TradePoint{
			HSCode: "690721", Country: "Germany", Year: year,
		}))
	}

	points, err := repo.RecentTradeData(ctx, "690721", "Germany", 0)
	require.NoError(t, err)
	assert.Len(t, points, 10)
}

func TestRecentTradeDataEmptyScope(t *testing.T) {
	s := newTestStore(t)
	repo := NewTradeRepo(s)

	points, err := repo.RecentTradeData(context.Background(), "999999", "Nowhere", 5)
	require.NoError(t, err)
	assert.Empty(t, points)
}
