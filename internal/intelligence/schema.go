package intelligence

import (
	"fmt"
	"strings"
)

// FieldKind is the small set of primitive kinds an engine response field may
// have. Contracts are one level deep at most: an object field nests further
// primitives, never another object.
type FieldKind int

const (
	FieldNumber FieldKind = iota
	FieldString
	FieldStringArray
	FieldObject
)

func (k FieldKind) String() string {
	switch k {
	case FieldNumber:
		return "number"
	case FieldString:
		return "string"
	case FieldStringArray:
		return "string array"
	case FieldObject:
		return "object"
	}
	return "unknown"
}

type Field struct {
	Name   string
	Kind   FieldKind
	Fields []Field // populated for FieldObject only
}

// SchemaContract is the fixed output contract for one intelligence type:
// every listed field is required, nothing outside the list is trusted.
type SchemaContract struct {
	Name   string
	Fields []Field
}

var contracts = map[Type]SchemaContract{
	TypeMarketForecast: {
		Name: "market_forecast",
		Fields: []Field{
			{Name: "market_size_change", Kind: FieldNumber},
			{Name: "growth_percentage", Kind: FieldNumber},
			{Name: "estimated_value", Kind: FieldNumber},
			{Name: "confidence_score", Kind: FieldNumber},
			{Name: "growth_drivers", Kind: FieldStringArray},
			{Name: "risks", Kind: FieldStringArray},
			{Name: "seasonal_trends", Kind: FieldObject, Fields: []Field{
				{Name: "high_season", Kind: FieldString},
				{Name: "low_season", Kind: FieldString},
				{Name: "seasonal_variance", Kind: FieldNumber},
			}},
			{Name: "key_insights", Kind: FieldStringArray},
			{Name: "recommendations", Kind: FieldStringArray},
		},
	},
	TypePriceTrend: {
		Name: "price_trend",
		Fields: []Field{
			{Name: "price_direction", Kind: FieldString},
			{Name: "percentage_change", Kind: FieldNumber},
			{Name: "volatility_level", Kind: FieldString},
			{Name: "confidence_score", Kind: FieldNumber},
			{Name: "cost_factors", Kind: FieldStringArray},
			{Name: "price_drivers", Kind: FieldStringArray},
			{Name: "key_insights", Kind: FieldStringArray},
			{Name: "recommendations", Kind: FieldStringArray},
		},
	},
	TypeDemandPrediction: {
		Name: "demand_prediction",
		Fields: []Field{
			{Name: "demand_direction", Kind: FieldString},
			{Name: "volume_change_percentage", Kind: FieldNumber},
			{Name: "market_saturation", Kind: FieldString},
			{Name: "confidence_score", Kind: FieldNumber},
			{Name: "demand_drivers", Kind: FieldStringArray},
			{Name: "consumer_trends", Kind: FieldStringArray},
			{Name: "seasonal_patterns", Kind: FieldObject, Fields: []Field{
				{Name: "peak_months", Kind: FieldStringArray},
				{Name: "low_months", Kind: FieldStringArray},
			}},
			{Name: "key_insights", Kind: FieldStringArray},
			{Name: "recommendations", Kind: FieldStringArray},
		},
	},
}

// ContractFor looks up the output contract for a type. Unknown types are a
// caller error, never mapped to a default contract.
func ContractFor(t Type) (SchemaContract, error) {
	c, ok := contracts[t]
	if !ok {
		return SchemaContract{}, NewInvalidRequest(fmt.Sprintf("unknown intelligence type %q", t))
	}
	return c, nil
}

// Render produces the schema block appended to the user instruction, so the
// engine sees the exact field list it must return.
func (c SchemaContract) Render() string {
	var b strings.Builder
	b.WriteString("Required JSON schema (respond with exactly these fields, no extras):\n{\n")
	for i, f := range c.Fields {
		b.WriteString("  ")
		b.WriteString(renderField(f))
		if i < len(c.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func renderField(f Field) string {
	switch f.Kind {
	case FieldNumber:
		return fmt.Sprintf("%q: \"number\"", f.Name)
	case FieldString:
		return fmt.Sprintf("%q: \"string\"", f.Name)
	case FieldStringArray:
		return fmt.Sprintf("%q: [\"string\"]", f.Name)
	case FieldObject:
		parts := make([]string, 0, len(f.Fields))
		for _, nested := range f.Fields {
			parts = append(parts, renderField(nested))
		}
		return fmt.Sprintf("%q: {%s}", f.Name, strings.Join(parts, ","))
	}
	return ""
}

// Validate checks an engine payload against the contract: every required
// field present and of the right primitive kind. It never coerces or
// defaults; a partially-invalid analytical result is worse than no result.
func (c SchemaContract) Validate(payload map[string]any) error {
	return validateFields(c.Fields, payload, "")
}

func validateFields(fields []Field, payload map[string]any, prefix string) error {
	for _, f := range fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		value, ok := payload[f.Name]
		if !ok {
			return fmt.Errorf("missing required field %q", path)
		}
		switch f.Kind {
		case FieldNumber:
			if _, ok := value.(float64); !ok {
				return fmt.Errorf("field %q: expected number, got %T", path, value)
			}
		case FieldString:
			if _, ok := value.(string); !ok {
				return fmt.Errorf("field %q: expected string, got %T", path, value)
			}
		case FieldStringArray:
			items, ok := value.([]any)
			if !ok {
				return fmt.Errorf("field %q: expected string array, got %T", path, value)
			}
			for i, item := range items {
				if _, ok := item.(string); !ok {
					return fmt.Errorf("field %q[%d]: expected string, got %T", path, i, item)
				}
			}
		case FieldObject:
			nested, ok := value.(map[string]any)
			if !ok {
				return fmt.Errorf("field %q: expected object, got %T", path, value)
			}
			if err := validateFields(f.Fields, nested, path); err != nil {
				return err
			}
		}
	}
	return nil
}
