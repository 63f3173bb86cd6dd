package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportiq/exportiq/internal/intelligence"
)

func forecastRecord() intelligence.Record {
	return intelligence.Record{
		ID:              "rec-1",
		CompanyID:       "c-1",
		Type:            intelligence.TypeMarketForecast,
		TargetMarket:    "Germany",
		ProductCategory: "Textiles",
		HSCode:          "520100",
		Period:          intelligence.PeriodSixMonths,
		ConfidenceScore: 0.85,
		Result: intelligence.MarketForecastResult{
			MarketSizeChange: 12.5,
			GrowthPercentage: 8.3,
			EstimatedValue:   450,
			SeasonalTrends:   intelligence.SeasonalTrends{HighSeason: "Q4", LowSeason: "Q2", SeasonalVariance: 15},
		},
		KeyInsights:     []string{"demand is shifting to premium segments"},
		Recommendations: []string{"expand distribution before Q4"},
		DataSources:     "AI Analysis, Trade Statistics, Market Intelligence",
		CreatedAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMarkdownForecast(t *testing.T) {
	md := Markdown(forecastRecord())

	assert.Contains(t, md, "# Market Forecast: Germany")
	assert.Contains(t, md, "Record ID: rec-1")
	assert.Contains(t, md, "HS Code: 520100")
	assert.Contains(t, md, "Confidence: 85%")
	assert.Contains(t, md, "| Growth | +8.3% |")
	assert.Contains(t, md, "| High season | Q4 |")
	assert.Contains(t, md, "demand is shifting to premium segments")
	assert.Contains(t, md, "expand distribution before Q4")
	assert.Contains(t, md, "Data sources: AI Analysis, Trade Statistics, Market Intelligence")
}

func TestMarkdownPriceTrend(t *testing.T) {
	rec := forecastRecord()
	rec.Type = intelligence.TypePriceTrend
	rec.Result = intelligence.PriceTrendResult{
		PriceDirection:   "increase",
		PercentageChange: 4.2,
		VolatilityLevel:  "medium",
		CostFactors:      []string{"raw materials", "shipping"},
	}

	md := Markdown(rec)
	assert.Contains(t, md, "# Price Trend Analysis: Germany")
	assert.Contains(t, md, "| Price direction | increase |")
	assert.Contains(t, md, "- raw materials")
}

func TestMarkdownDemandPrediction(t *testing.T) {
	rec := forecastRecord()
	rec.Type = intelligence.TypeDemandPrediction
	rec.Result = intelligence.DemandPredictionResult{
		DemandDirection:        "growing",
		VolumeChangePercentage: 11,
		MarketSaturation:       "low",
		SeasonalPatterns: intelligence.SeasonalPatterns{
			PeakMonths: []string{"November", "December"},
			LowMonths:  []string{"February"},
		},
	}

	md := Markdown(rec)
	assert.Contains(t, md, "# Demand Prediction: Germany")
	assert.Contains(t, md, "| Peak months | November, December |")
}

func TestMarkdownOmitsEmptyOptionalSections(t *testing.T) {
	rec := forecastRecord()
	rec.ProductCategory = ""
	rec.HSCode = ""
	rec.KeyInsights = nil
	rec.Recommendations = nil

	md := Markdown(rec)
	assert.NotContains(t, md, "Product Category:")
	assert.NotContains(t, md, "HS Code:")
	assert.NotContains(t, md, "## Key Insights")
	assert.NotContains(t, md, "## Recommendations")
}

func TestHTMLStandaloneDocument(t *testing.T) {
	doc, err := HTML(forecastRecord())
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, "<title>Market Forecast</title>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Germany")
}
