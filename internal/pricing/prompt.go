package pricing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/exportiq/exportiq/internal/intelligence"
)

const pricingSystem = "You are an expert pricing strategist specializing in international trade and " +
	"market optimization. Analyze market conditions and provide optimal pricing recommendations " +
	"with detailed strategic insights."

// historyLimit caps how many recent trade-data points the prompt carries.
const historyLimit = 5

// BuildPrompt constructs the deterministic instruction pair for one pricing
// run. Trade history is rendered one line per period, most recent first.
func BuildPrompt(req Request, product Product, history []TradePoint) (intelligence.Prompt, error) {
	market := req.TargetMarket
	if market == "" {
		market = intelligence.DefaultMarket
	}
	currency := product.Currency
	if currency == "" {
		currency = "USD"
	}
	material := product.Material
	if material == "" {
		material = "Not specified"
	}
	specs := product.TechnicalSpecs
	if specs == "" {
		specs = "Standard specifications"
	}

	if len(history) > historyLimit {
		history = history[:historyLimit]
	}
	lines := make([]string, 0, len(history))
	for _, t := range history {
		lines = append(lines, fmt.Sprintf("Year %d: Import Value $%gM, Volume %gK units, Growth %g%%",
			t.Year, t.ImportValue, t.ImportVolume, t.GrowthRate))
	}
	historyBlock := strings.Join(lines, "\n")
	if historyBlock == "" {
		historyBlock = "No historical trade data available."
	}

	competitorData, err := json.Marshal(orEmpty(req.CompetitorData))
	if err != nil {
		return intelligence.Prompt{}, intelligence.NewInvalidRequest(fmt.Sprintf("competitor data is not serializable: %v", err))
	}
	marketConditions, err := json.Marshal(orEmpty(req.MarketConditions))
	if err != nil {
		return intelligence.Prompt{}, intelligence.NewInvalidRequest(fmt.Sprintf("market conditions are not serializable: %v", err))
	}

	user := fmt.Sprintf(`Analyze optimal pricing strategy for this product:

PRODUCT DETAILS:
- Name: %s
- Category: %s
- HS Code: %s
- Current Price: %g %s
- Material: %s
- Technical Specs: %s

TARGET MARKET: %s

MARKET DATA CONTEXT:
%s

COMPETITOR DATA: %s
MARKET CONDITIONS: %s

Provide comprehensive pricing optimization analysis:

1. OPTIMAL PRICING STRATEGY:
   - Recommended optimal price point
   - Pricing range (min-max)
   - Profit margin analysis
   - Market positioning strategy

2. COMPETITIVE ANALYSIS:
   - Competitiveness score vs market
   - Price sensitivity analysis
   - Value proposition assessment

3. STRATEGIC RECOMMENDATIONS:
   - Key pricing factors
   - Risk assessment
   - Implementation recommendations
   - Market entry pricing tactics

4. CONFIDENCE METRICS:
   - Analysis confidence level (0-100)
   - Data quality assessment

Focus on actionable pricing strategies that maximize both competitiveness and profitability.`,
		product.Name, product.Category, product.HSCode, product.UnitPrice, currency,
		material, specs, market, historyBlock, competitorData, marketConditions)

	user += "\n\n" + Contract.Render() + "\n\nRespond with only valid JSON matching the schema."
	return intelligence.Prompt{System: pricingSystem, User: user, Contract: Contract}, nil
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
