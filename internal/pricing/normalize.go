package pricing

import (
	"encoding/json"

	"github.com/exportiq/exportiq/internal/intelligence"
)

// DataSources is the fixed provenance label for pricing rows.
const DataSources = "AI Price Analysis, Market Data, Competitor Intelligence"

// Normalize validates a raw engine response against the pricing contract and
// projects it onto the documented shape. Confidence is rescaled from the
// engine's 0-100 scale and clamped to [0,1], like every confidence field in
// the system.
func Normalize(raw string) (Optimization, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(intelligence.StripCodeFences(raw)), &payload); err != nil {
		return Optimization{}, intelligence.NewSchemaViolation("engine response is not valid JSON", err)
	}
	if err := Contract.Validate(payload); err != nil {
		return Optimization{}, intelligence.NewSchemaViolation("engine response does not match contract", err)
	}

	priceRange := payload["price_range"].(map[string]any)
	summary := payload["summary"].(map[string]any)

	return Optimization{
		OptimalPrice: payload["optimal_price"].(float64),
		PriceRange: PriceRange{
			Min: priceRange["min"].(float64),
			Max: priceRange["max"].(float64),
		},
		ProfitMargin:         payload["profit_margin"].(float64),
		CompetitivenessScore: payload["competitiveness_score"].(float64),
		MarketPositioning:    payload["market_positioning"].(string),
		PricingStrategy:      payload["pricing_strategy"].(string),
		KeyFactors:           intelligence.StringSlice(payload["key_factors"]),
		Risks:                intelligence.StringSlice(payload["risks"]),
		Recommendations:      intelligence.StringSlice(payload["recommendations"]),
		ConfidenceScore:      intelligence.NormalizeConfidence(payload["confidence_score"].(float64)),
		Summary: Summary{
			PriceChangePercentage:    summary["price_change_percentage"].(float64),
			ExpectedImpact:           summary["expected_impact"].(string),
			ImplementationPriority:   summary["implementation_priority"].(string),
			MarketResponsePrediction: summary["market_response_prediction"].(string),
			KeyInsights:              intelligence.StringSlice(summary["key_insights"]),
		},
	}, nil
}
