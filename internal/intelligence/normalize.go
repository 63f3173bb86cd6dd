package intelligence

import (
	"encoding/json"
	"fmt"
)

// Provenance labels recorded on stored rows. These are assigned here, not
// taken from the engine: they describe how the number was produced, for
// audit purposes, independent of whatever the engine claims.
const (
	sourcesMarketForecast   = "AI Analysis, Trade Statistics, Market Intelligence"
	sourcesPriceTrend       = "AI Price Analysis, Market Data, Economic Indicators"
	sourcesDemandPrediction = "AI Demand Analysis, Consumer Data, Trade Statistics"
)

// NormalizeConfidence rescales an engine-native 0-100 confidence onto the
// canonical [0,1] range. The clamp is a contract: downstream consumers
// (UI color-coding included) rely on confidence never leaving [0,1].
func NormalizeConfidence(raw float64) float64 {
	c := raw / 100
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// Normalize validates a raw engine response against the contract for the
// given type and projects it onto the documented core-result shape. Fields
// outside the allow-list are dropped; a structurally invalid payload is a
// SchemaViolation, never silently coerced.
func Normalize(t Type, raw string) (Analysis, error) {
	contract, err := ContractFor(t)
	if err != nil {
		return Analysis{}, err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &payload); err != nil {
		return Analysis{}, NewSchemaViolation("engine response is not valid JSON", err)
	}
	if err := contract.Validate(payload); err != nil {
		return Analysis{}, NewSchemaViolation("engine response does not match contract", err)
	}

	analysis := Analysis{
		ConfidenceScore: NormalizeConfidence(payload["confidence_score"].(float64)),
		KeyInsights:     StringSlice(payload["key_insights"]),
		Recommendations: StringSlice(payload["recommendations"]),
	}

	switch t {
	case TypeMarketForecast:
		trends := payload["seasonal_trends"].(map[string]any)
		analysis.Result = MarketForecastResult{
			MarketSizeChange: payload["market_size_change"].(float64),
			GrowthPercentage: payload["growth_percentage"].(float64),
			EstimatedValue:   payload["estimated_value"].(float64),
			SeasonalTrends: SeasonalTrends{
				HighSeason:       trends["high_season"].(string),
				LowSeason:        trends["low_season"].(string),
				SeasonalVariance: trends["seasonal_variance"].(float64),
			},
		}
		analysis.DataSources = sourcesMarketForecast
	case TypePriceTrend:
		analysis.Result = PriceTrendResult{
			PriceDirection:   payload["price_direction"].(string),
			PercentageChange: payload["percentage_change"].(float64),
			VolatilityLevel:  payload["volatility_level"].(string),
			CostFactors:      StringSlice(payload["cost_factors"]),
		}
		analysis.DataSources = sourcesPriceTrend
	case TypeDemandPrediction:
		patterns := payload["seasonal_patterns"].(map[string]any)
		analysis.Result = DemandPredictionResult{
			DemandDirection:        payload["demand_direction"].(string),
			VolumeChangePercentage: payload["volume_change_percentage"].(float64),
			MarketSaturation:       payload["market_saturation"].(string),
			SeasonalPatterns: SeasonalPatterns{
				PeakMonths: StringSlice(patterns["peak_months"]),
				LowMonths:  StringSlice(patterns["low_months"]),
			},
		}
		analysis.DataSources = sourcesDemandPrediction
	}
	return analysis, nil
}

// DecodeResult unmarshals a stored core-result payload back into its typed
// shape, dispatching on the record type.
func DecodeResult(t Type, blob []byte) (CoreResult, error) {
	switch t {
	case TypeMarketForecast:
		var r MarketForecastResult
		if err := json.Unmarshal(blob, &r); err != nil {
			return nil, err
		}
		return r, nil
	case TypePriceTrend:
		var r PriceTrendResult
		if err := json.Unmarshal(blob, &r); err != nil {
			return nil, err
		}
		return r, nil
	case TypeDemandPrediction:
		var r DemandPredictionResult
		if err := json.Unmarshal(blob, &r); err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("unknown intelligence type %q", t)
}

// StringSlice converts a contract-validated JSON array to []string. Order
// is preserved and entries are taken verbatim.
func StringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
