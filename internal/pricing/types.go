package pricing

import "time"

// Request describes one price-optimization call. CompanyID and ProductID are
// mandatory; the product must exist and belong to the company.
type Request struct {
	CompanyID        string         `json:"company_id"`
	ProductID        string         `json:"product_id"`
	TargetMarket     string         `json:"target_market"`
	CompetitorData   map[string]any `json:"competitor_data"`
	MarketConditions map[string]any `json:"market_conditions"`
}

// Product is the catalog entry a recommendation targets. A recommendation is
// logically owned by its product; removing the product removes the
// recommendation (cascading delete lives in the store).
type Product struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Name           string    `json:"product_name"`
	Category       string    `json:"category"`
	HSCode         string    `json:"hs_code"`
	UnitPrice      float64   `json:"unit_price"`
	Currency       string    `json:"currency"`
	Material       string    `json:"material"`
	TechnicalSpecs string    `json:"technical_specs"`
	CreatedAt      time.Time `json:"created_at"`
}

// TradePoint is one historical trade-statistics data point for an
// (hs code, country) pair. The most recent points ground the pricing prompt
// in retrievable context instead of the model's prior knowledge alone.
type TradePoint struct {
	HSCode       string  `json:"hs_code"`
	Country      string  `json:"country"`
	Year         int     `json:"year"`
	ImportValue  float64 `json:"import_value"`
	ImportVolume float64 `json:"import_volume"`
	GrowthRate   float64 `json:"growth_rate"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary is the analysis digest returned to the caller alongside the
// persisted row. It is not stored.
type Summary struct {
	PriceChangePercentage    float64  `json:"price_change_percentage"`
	ExpectedImpact           string   `json:"expected_impact"`
	ImplementationPriority   string   `json:"implementation_priority"`
	MarketResponsePrediction string   `json:"market_response_prediction"`
	KeyInsights              []string `json:"key_insights"`
}

// Optimization is the normalized engine output for one pricing run.
type Optimization struct {
	OptimalPrice         float64
	PriceRange           PriceRange
	ProfitMargin         float64
	CompetitivenessScore float64
	MarketPositioning    string
	PricingStrategy      string
	KeyFactors           []string
	Risks                []string
	Recommendations      []string
	ConfidenceScore      float64
	Summary              Summary
}

// Record is the persisted "current recommendation" for the natural key
// (company, product, market). At most one live row exists per key; a new
// generation replaces the fields in place instead of creating history.
type Record struct {
	ID                   string     `json:"id"`
	CompanyID            string     `json:"company_id"`
	ProductID            string     `json:"product_id"`
	TargetMarket         string     `json:"target_market"`
	CurrentPrice         float64    `json:"current_price"`
	OptimalPrice         float64    `json:"optimal_price"`
	PriceRange           PriceRange `json:"price_range"`
	ProfitMargin         float64    `json:"profit_margin"`
	CompetitivenessScore float64    `json:"competitiveness_score"`
	MarketPositioning    string     `json:"market_positioning"`
	PricingStrategy      string     `json:"pricing_strategy"`
	KeyFactors           []string   `json:"key_factors"`
	Risks                []string   `json:"risks"`
	Recommendations      []string   `json:"recommendations"`
	ConfidenceScore      float64    `json:"confidence_score"`
	DataSources          string     `json:"data_sources"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Result pairs the stored row with the transient analysis summary.
type Result struct {
	Record  Record  `json:"optimization"`
	Summary Summary `json:"analysis_summary"`
}
