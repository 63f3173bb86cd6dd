package intelligence

import (
	"encoding/json"
	"fmt"
)

// Prompt is the deterministic (system, user, contract) triple handed to the
// reasoning engine. Building it never touches the network.
type Prompt struct {
	System   string
	User     string
	Contract SchemaContract
}

const (
	marketForecastSystem = "You are an expert trade analyst specializing in global market forecasting. " +
		"Analyze the provided data and generate accurate market predictions."
	priceTrendSystem = "You are a pricing analyst expert in global trade. " +
		"Analyze market conditions and predict price trends with high accuracy."
	demandPredictionSystem = "You are a demand forecasting specialist with expertise in international " +
		"trade patterns and consumer behavior analysis."
)

// BuildPrompt constructs the instruction pair for a validated request.
// Optional fields are interpolated as explicit placeholders ("Global",
// "General", "Not specified") rather than omitted, so the engine cannot
// infer defaults inconsistently.
func BuildPrompt(req Request) (Prompt, error) {
	contract, err := ContractFor(req.Type)
	if err != nil {
		return Prompt{}, err
	}

	market := req.TargetMarket
	if market == "" {
		market = DefaultMarket
	}
	category := req.ProductCategory
	if category == "" {
		category = "General"
	}
	hsCode := req.HSCode
	if hsCode == "" {
		hsCode = "Not specified"
	}
	// json.Marshal sorts map keys, keeping the prompt deterministic for
	// identical input.
	marketData, err := json.Marshal(req.MarketData)
	if err != nil {
		return Prompt{}, NewInvalidRequest(fmt.Sprintf("market data is not serializable: %v", err))
	}
	if req.MarketData == nil {
		marketData = []byte("{}")
	}

	var system, user string
	switch req.Type {
	case TypeMarketForecast:
		system = marketForecastSystem
		user = fmt.Sprintf(`Generate a comprehensive market forecast for:
- Target Market: %s
- Product Category: %s
- HS Code: %s
- Forecast Period: %s
- Current Market Data: %s

Please provide:
1. Market size predictions (growth percentage, value estimates)
2. Key growth drivers and risks
3. Competitive landscape changes
4. Consumer demand trends
5. Economic factors impact
6. Seasonal variations
7. Confidence level (0-100%%)

Format your response as structured analysis with specific numerical predictions where possible.`,
			market, category, hsCode, req.Period, marketData)
	case TypePriceTrend:
		system = priceTrendSystem
		user = fmt.Sprintf(`Analyze price trends for:
- Target Market: %s
- Product Category: %s
- HS Code: %s
- Analysis Period: %s
- Market Data: %s

Provide detailed price analysis including:
1. Price direction (increase/decrease/stable)
2. Expected percentage change
3. Price volatility assessment
4. Cost factor analysis (raw materials, shipping, regulations)
5. Competitive pricing impact
6. Currency exchange effects
7. Confidence level (0-100%%)`,
			market, category, hsCode, req.Period, marketData)
	case TypeDemandPrediction:
		system = demandPredictionSystem
		user = fmt.Sprintf(`Predict demand patterns for:
- Target Market: %s
- Product Category: %s
- HS Code: %s
- Forecast Period: %s
- Available Data: %s

Analyze:
1. Demand growth/decline predictions
2. Consumer behavior shifts
3. Market saturation levels
4. Import/export volume forecasts
5. Seasonal demand patterns
6. Economic impact on demand
7. Competitive substitution risks
8. Confidence level (0-100%%)`,
			market, category, hsCode, req.Period, marketData)
	default:
		return Prompt{}, NewInvalidRequest(fmt.Sprintf("unknown intelligence type %q", req.Type))
	}

	user += "\n\n" + contract.Render() + "\n\nRespond with only valid JSON matching the schema."
	return Prompt{System: system, User: user, Contract: contract}, nil
}
