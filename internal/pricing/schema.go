package pricing

import "github.com/exportiq/exportiq/internal/intelligence"

// Contract is the output contract for price optimization. It nests a
// price_range object and a summary object alongside the top-level strategy
// fields; everything listed is required.
var Contract = intelligence.SchemaContract{
	Name: "price_optimization",
	Fields: []intelligence.Field{
		{Name: "optimal_price", Kind: intelligence.FieldNumber},
		{Name: "price_range", Kind: intelligence.FieldObject, Fields: []intelligence.Field{
			{Name: "min", Kind: intelligence.FieldNumber},
			{Name: "max", Kind: intelligence.FieldNumber},
		}},
		{Name: "profit_margin", Kind: intelligence.FieldNumber},
		{Name: "competitiveness_score", Kind: intelligence.FieldNumber},
		{Name: "market_positioning", Kind: intelligence.FieldString},
		{Name: "pricing_strategy", Kind: intelligence.FieldString},
		{Name: "key_factors", Kind: intelligence.FieldStringArray},
		{Name: "risks", Kind: intelligence.FieldStringArray},
		{Name: "recommendations", Kind: intelligence.FieldStringArray},
		{Name: "confidence_score", Kind: intelligence.FieldNumber},
		{Name: "summary", Kind: intelligence.FieldObject, Fields: []intelligence.Field{
			{Name: "price_change_percentage", Kind: intelligence.FieldNumber},
			{Name: "expected_impact", Kind: intelligence.FieldString},
			{Name: "implementation_priority", Kind: intelligence.FieldString},
			{Name: "market_response_prediction", Kind: intelligence.FieldString},
			{Name: "key_insights", Kind: intelligence.FieldStringArray},
		}},
	},
}
