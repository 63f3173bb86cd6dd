// Package report renders stored intelligence records as human-readable
// documents: markdown, HTML, and PDF via headless Chromium.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/exportiq/exportiq/internal/intelligence"
)

const disclaimer = "This is an automated market-intelligence assessment generated from AI analysis " +
	"of available trade data. It is not financial advice; validate critical figures before acting on them."

func title(t intelligence.Type) string {
	switch t {
	case intelligence.TypeMarketForecast:
		return "Market Forecast"
	case intelligence.TypePriceTrend:
		return "Price Trend Analysis"
	case intelligence.TypeDemandPrediction:
		return "Demand Prediction"
	}
	return "Intelligence Report"
}

// Markdown builds the report body for one record.
func Markdown(rec intelligence.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", title(rec.Type), rec.TargetMarket)
	fmt.Fprintf(&b, "- Record ID: %s\n", rec.ID)
	if rec.ProductCategory != "" {
		fmt.Fprintf(&b, "- Product Category: %s\n", rec.ProductCategory)
	}
	if rec.HSCode != "" {
		fmt.Fprintf(&b, "- HS Code: %s\n", rec.HSCode)
	}
	fmt.Fprintf(&b, "- Period: %s\n", rec.Period)
	fmt.Fprintf(&b, "- Generated: %s\n", rec.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Confidence: %.0f%%\n\n", rec.ConfidenceScore*100)
	fmt.Fprintf(&b, "%s\n\n", disclaimer)

	b.WriteString("## Core Findings\n\n")
	writeCoreResult(&b, rec.Result)

	if len(rec.KeyInsights) > 0 {
		b.WriteString("## Key Insights\n\n")
		for _, s := range rec.KeyInsights {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(rec.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, s := range rec.Recommendations {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\nData sources: %s\n", rec.DataSources)
	return b.String()
}

func writeCoreResult(b *strings.Builder, result intelligence.CoreResult) {
	switch r := result.(type) {
	case intelligence.MarketForecastResult:
		b.WriteString("| Metric | Value |\n|--------|-------|\n")
		fmt.Fprintf(b, "| Market size change | %+.1f%% |\n", r.MarketSizeChange)
		fmt.Fprintf(b, "| Growth | %+.1f%% |\n", r.GrowthPercentage)
		fmt.Fprintf(b, "| Estimated value | $%.1fM |\n", r.EstimatedValue)
		fmt.Fprintf(b, "| High season | %s |\n", r.SeasonalTrends.HighSeason)
		fmt.Fprintf(b, "| Low season | %s |\n", r.SeasonalTrends.LowSeason)
		fmt.Fprintf(b, "| Seasonal variance | %.1f%% |\n\n", r.SeasonalTrends.SeasonalVariance)
	case intelligence.PriceTrendResult:
		b.WriteString("| Metric | Value |\n|--------|-------|\n")
		fmt.Fprintf(b, "| Price direction | %s |\n", r.PriceDirection)
		fmt.Fprintf(b, "| Expected change | %+.1f%% |\n", r.PercentageChange)
		fmt.Fprintf(b, "| Volatility | %s |\n\n", r.VolatilityLevel)
		if len(r.CostFactors) > 0 {
			b.WriteString("Cost factors:\n\n")
			for _, f := range r.CostFactors {
				fmt.Fprintf(b, "- %s\n", f)
			}
			b.WriteString("\n")
		}
	case intelligence.DemandPredictionResult:
		b.WriteString("| Metric | Value |\n|--------|-------|\n")
		fmt.Fprintf(b, "| Demand direction | %s |\n", r.DemandDirection)
		fmt.Fprintf(b, "| Volume change | %+.1f%% |\n", r.VolumeChangePercentage)
		fmt.Fprintf(b, "| Market saturation | %s |\n", r.MarketSaturation)
		fmt.Fprintf(b, "| Peak months | %s |\n", strings.Join(r.SeasonalPatterns.PeakMonths, ", "))
		fmt.Fprintf(b, "| Low months | %s |\n\n", strings.Join(r.SeasonalPatterns.LowMonths, ", "))
	}
}
