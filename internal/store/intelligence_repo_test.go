package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportiq/exportiq/internal/intelligence"
)

func sampleIntelligenceRecord(companyID string, typ intelligence.Type, market, category string, period intelligence.Period) intelligence.Record {
	return intelligence.Record{
		CompanyID:       companyID,
		Type:            typ,
		TargetMarket:    market,
		ProductCategory: category,
		Period:          period,
		ConfidenceScore: 0.85,
		Result: intelligence.MarketForecastResult{
			MarketSizeChange: 10,
			GrowthPercentage: 5,
			EstimatedValue:   250,
			SeasonalTrends:   intelligence.SeasonalTrends{HighSeason: "Q4", LowSeason: "Q2", SeasonalVariance: 12},
		},
		KeyInsights:     []string{"insight"},
		Recommendations: []string{"recommendation"},
		DataSources:     "AI Analysis, Trade Statistics, Market Intelligence",
	}
}

func TestIntelligenceInsertAssignsIdentity(t *testing.T) {
	s := newTestStore(t)
	repo := NewIntelligenceRepo(s)
	ctx := context.Background()

	rec, err := repo.Insert(ctx, sampleIntelligenceRecord("c-1", intelligence.TypeMarketForecast, "Global", "General", intelligence.PeriodSixMonths))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, 0.85, rec.ConfidenceScore)
	assert.IsType(t, intelligence.MarketForecastResult{}, rec.Result)
}

func TestIntelligenceInsertIsAppendOnly(t *testing.T) {
	s := newTestStore(t)
	repo := NewIntelligenceRepo(s)
	ctx := context.Background()

	// Same (company, type, market, period) four times: four independent rows.
	var ids []string
	for i := 0; i < 4; i++ {
		rec, err := repo.Insert(ctx, sampleIntelligenceRecord("c-1", intelligence.TypeMarketForecast, "Global", "General", intelligence.PeriodSixMonths))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	records, err := repo.List(ctx, Filter{CompanyID: "c-1"})
	require.NoError(t, err)
	require.Len(t, records, 4)

	// Newest first: reverse insertion order.
	for i, rec := range records {
		assert.Equal(t, ids[len(ids)-1-i], rec.ID)
	}
}

func TestIntelligenceByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	repo := NewIntelligenceRepo(s)

	_, err := repo.ByID(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Equal(t, intelligence.KindNotFound, intelligence.KindOf(err))
}

func TestIntelligenceListRequiresCompany(t *testing.T) {
	s := newTestStore(t)
	repo := NewIntelligenceRepo(s)

	_, err := repo.List(context.Background(), Filter{})
	require.Error(t, err)
	assert.Equal(t, intelligence.KindInvalidRequest, intelligence.KindOf(err))
}

func TestIntelligenceListFiltersConjunctively(t *testing.T) {
	s := newTestStore(t)
	repo := NewIntelligenceRepo(s)
	ctx := context.Background()

	matching, err := repo.Insert(ctx, sampleIntelligenceRecord("c-1", intelligence.TypeMarketForecast, "Germany", "Textiles", intelligence.PeriodSixMonths))
	require.NoError(t, err)
	// Wrong market.
	_, err = repo.Insert(ctx, sampleIntelligenceRecord("c-1", intelligence.TypeMarketForecast, "Japan", "Textiles", intelligence.PeriodSixMonths))
	require.NoError(t, err)
	// Wrong period.
	_, err = repo.Insert(ctx, sampleIntelligenceRecord("c-1", intelligence.TypeMarketForecast, "Germany", "Textiles", intelligence.PeriodOneYear))
	require.NoError(t, err)
	// Other company entirely.
	_, err = repo.Insert(ctx, sampleIntelligenceRecord("c-2", intelligence.TypeMarketForecast, "Germany", "Textiles", intelligence.PeriodSixMonths))
	require.NoError(t, err)

	records, err := repo.List(ctx, Filter{
		CompanyID:    "c-1",
		Type:         intelligence.TypeMarketForecast,
		TargetMarket: "Germany",
		Period:       intelligence.PeriodSixMonths,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, matching.ID, records[0].ID)

	// Unspecified fields do not constrain.
	records, err = repo.List(ctx, Filter{CompanyID: "c-1", TargetMarket: "Germany"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// A fully valid filter that matches nothing is an empty result, not an error.
	records, err = repo.List(ctx, Filter{CompanyID: "c-1", ProductCategory: "Electronics"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestIntelligenceRoundTripPreservesPayload(t *testing.T) {
	s := newTestStore(t)
	repo := NewIntelligenceRepo(s)
	ctx := context.Background()

	in := intelligence.Record{
		CompanyID:       "c-1",
		Type:            intelligence.TypeDemandPrediction,
		TargetMarket:    "Kenya",
		Period:          intelligence.PeriodThreeMonths,
		ConfidenceScore: 0.64,
		Result: intelligence.DemandPredictionResult{
			DemandDirection:        "growing",
			VolumeChangePercentage: 11,
			MarketSaturation:       "low",
			SeasonalPatterns: intelligence.SeasonalPatterns{
				PeakMonths: []string{"November", "December"},
				LowMonths:  []string{"February"},
			},
		},
		KeyInsights:     []string{"a", "b"},
		Recommendations: []string{"c"},
		DataSources:     "AI Demand Analysis, Consumer Data, Trade Statistics",
	}

	inserted, err := repo.Insert(ctx, in)
	require.NoError(t, err)

	loaded, err := repo.ByID(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Result, loaded.Result)
	assert.Equal(t, in.KeyInsights, loaded.KeyInsights)
	assert.Equal(t, in.Recommendations, loaded.Recommendations)
	assert.Equal(t, in.DataSources, loaded.DataSources)
}
