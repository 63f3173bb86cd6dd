package intelligence

import "time"

// Type discriminates the intelligence variants. Each type carries its own
// output contract and core-result shape.
type Type string

const (
	TypeMarketForecast   Type = "market_forecast"
	TypePriceTrend       Type = "price_trend"
	TypeDemandPrediction Type = "demand_prediction"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMarketForecast, TypePriceTrend, TypeDemandPrediction:
		return true
	}
	return false
}

// Period is the forecast horizon bucket.
type Period string

const (
	PeriodOneMonth    Period = "1_month"
	PeriodThreeMonths Period = "3_months"
	PeriodSixMonths   Period = "6_months"
	PeriodOneYear     Period = "1_year"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodOneMonth, PeriodThreeMonths, PeriodSixMonths, PeriodOneYear:
		return true
	}
	return false
}

// DefaultMarket is the canonical value for an unspecified target market.
// Canonicalization happens once, at the request-validation boundary.
const DefaultMarket = "Global"

// Request describes one generation call. CompanyID, Type and Period are
// mandatory; everything else is optional analysis context.
type Request struct {
	CompanyID       string         `json:"company_id"`
	Type            Type           `json:"prediction_type"`
	TargetMarket    string         `json:"target_market"`
	ProductCategory string         `json:"product_category"`
	HSCode          string         `json:"hs_code"`
	Period          Period         `json:"period"`
	MarketData      map[string]any `json:"market_data"`
}

type SeasonalTrends struct {
	HighSeason       string  `json:"high_season"`
	LowSeason        string  `json:"low_season"`
	SeasonalVariance float64 `json:"seasonal_variance"`
}

type MarketForecastResult struct {
	MarketSizeChange float64        `json:"market_size_change"`
	GrowthPercentage float64        `json:"growth_percentage"`
	EstimatedValue   float64        `json:"estimated_value"`
	SeasonalTrends   SeasonalTrends `json:"seasonal_trends"`
}

type PriceTrendResult struct {
	PriceDirection   string   `json:"price_direction"`
	PercentageChange float64  `json:"percentage_change"`
	VolatilityLevel  string   `json:"volatility_level"`
	CostFactors      []string `json:"cost_factors"`
}

type SeasonalPatterns struct {
	PeakMonths []string `json:"peak_months"`
	LowMonths  []string `json:"low_months"`
}

type DemandPredictionResult struct {
	DemandDirection        string           `json:"demand_direction"`
	VolumeChangePercentage float64          `json:"volume_change_percentage"`
	MarketSaturation       string           `json:"market_saturation"`
	SeasonalPatterns       SeasonalPatterns `json:"seasonal_patterns"`
}

// CoreResult is the sealed set of per-type payloads. The stored payload is
// exactly one of these shapes, never a passthrough of engine output.
type CoreResult interface{ coreResult() }

func (MarketForecastResult) coreResult()   {}
func (PriceTrendResult) coreResult()       {}
func (DemandPredictionResult) coreResult() {}

// Analysis is the normalized engine output before identity fields are
// attached: confidence on the canonical [0,1] scale, the projected core
// result, and verbatim insight/recommendation lists.
type Analysis struct {
	ConfidenceScore float64
	Result          CoreResult
	KeyInsights     []string
	Recommendations []string
	DataSources     string
}

// Record is one persisted, append-only intelligence row. Records are never
// mutated or deleted by this pipeline; history accumulates per
// (company, type, market, period).
type Record struct {
	ID              string     `json:"id"`
	CompanyID       string     `json:"company_id"`
	Type            Type       `json:"prediction_type"`
	TargetMarket    string     `json:"target_market"`
	ProductCategory string     `json:"product_category"`
	HSCode          string     `json:"hs_code"`
	Period          Period     `json:"period"`
	ConfidenceScore float64    `json:"confidence_score"`
	Result          CoreResult `json:"prediction_data"`
	KeyInsights     []string   `json:"key_insights"`
	Recommendations []string   `json:"recommendations"`
	DataSources     string     `json:"data_sources"`
	CreatedAt       time.Time  `json:"created_at"`
}
