package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/internal/pricing"
)

func sampleOptimization(companyID, productID, market string, optimal float64) pricing.Record {
	return pricing.Record{
		CompanyID:            companyID,
		ProductID:            productID,
		TargetMarket:         market,
		CurrentPrice:         12.5,
		OptimalPrice:         optimal,
		PriceRange:           pricing.PriceRange{Min: optimal - 1, Max: optimal + 1},
		ProfitMargin:         28.5,
		CompetitivenessScore: 82,
		MarketPositioning:    "premium",
		PricingStrategy:      "value-based",
		KeyFactors:           []string{"import duty"},
		Risks:                []string{"currency fluctuation"},
		Recommendations:      []string{"volume discounts"},
		ConfidenceScore:      0.78,
		DataSources:          pricing.DataSources,
	}
}

func TestPricingUpsertCreatesThenReplaces(t *testing.T) {
	s := newTestStore(t)
	repo := NewPricingRepo(s)
	ctx := context.Background()
	product := createProduct(t, s, "c-1", "Ceramic Tiles", "690721", 12.5)

	first, err := repo.Upsert(ctx, sampleOptimization("c-1", product.ID, "UAE", 14.2))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 14.2, first.OptimalPrice)

	time.Sleep(5 * time.Millisecond)

	second, err := repo.Upsert(ctx, sampleOptimization("c-1", product.ID, "UAE", 15.8))
	require.NoError(t, err)

	// Same key: the row is replaced in place, identity and created_at survive.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, 15.8, second.OptimalPrice)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	all, err := repo.List(ctx, "c-1", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 1, "re-running for the same key must not create a second row")
}

func TestPricingUpsertDistinctKeysCoexist(t *testing.T) {
	s := newTestStore(t)
	repo := NewPricingRepo(s)
	ctx := context.Background()
	product := createProduct(t, s, "c-1", "Ceramic Tiles", "690721", 12.5)

	_, err := repo.Upsert(ctx, sampleOptimization("c-1", product.ID, "UAE", 14.2))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, sampleOptimization("c-1", product.ID, "Germany", 16.0))
	require.NoError(t, err)

	all, err := repo.List(ctx, "c-1", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	uae, err := repo.Lookup(ctx, "c-1", product.ID, "UAE")
	require.NoError(t, err)
	assert.Equal(t, 14.2, uae.OptimalPrice)
}

func TestPricingLookupNotFound(t *testing.T) {
	s := newTestStore(t)
	repo := NewPricingRepo(s)

	_, err := repo.Lookup(context.Background(), "c-1", "p-404", "UAE")
	require.Error(t, err)
	assert.Equal(t, intelligence.KindNotFound, intelligence.KindOf(err))
}

func TestPricingListNarrowsByProductAndMarket(t *testing.T) {
	s := newTestStore(t)
	repo := NewPricingRepo(s)
	ctx := context.Background()
	tiles := createProduct(t, s, "c-1", "Ceramic Tiles", "690721", 12.5)
	bricks := createProduct(t, s, "c-1", "Clay Bricks", "690410", 4.0)

	_, err := repo.Upsert(ctx, sampleOptimization("c-1", tiles.ID, "UAE", 14.2))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, sampleOptimization("c-1", tiles.ID, "Germany", 16.0))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, sampleOptimization("c-1", bricks.ID, "UAE", 4.8))
	require.NoError(t, err)

	byProduct, err := repo.List(ctx, "c-1", tiles.ID, "")
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)

	byMarket, err := repo.List(ctx, "c-1", "", "UAE")
	require.NoError(t, err)
	assert.Len(t, byMarket, 2)

	_, err = repo.List(ctx, "", "", "")
	require.Error(t, err)
	assert.Equal(t, intelligence.KindInvalidRequest, intelligence.KindOf(err))
}

func TestProductDeleteCascadesToOptimization(t *testing.T) {
	s := newTestStore(t)
	repo := NewPricingRepo(s)
	products := NewProductRepo(s)
	ctx := context.Background()
	product := createProduct(t, s, "c-1", "Ceramic Tiles", "690721", 12.5)

	_, err := repo.Upsert(ctx, sampleOptimization("c-1", product.ID, "UAE", 14.2))
	require.NoError(t, err)

	require.NoError(t, products.Delete(ctx, "c-1", product.ID))

	_, err = repo.Lookup(ctx, "c-1", product.ID, "UAE")
	require.Error(t, err)
	assert.Equal(t, intelligence.KindNotFound, intelligence.KindOf(err))
}
