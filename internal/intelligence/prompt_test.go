package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptDefaults(t *testing.T) {
	prompt, err := BuildPrompt(Request{
		CompanyID: "c-1",
		Type:      TypeMarketForecast,
		Period:    PeriodSixMonths,
	})
	require.NoError(t, err)

	assert.Contains(t, prompt.User, "Target Market: Global")
	assert.Contains(t, prompt.User, "Product Category: General")
	assert.Contains(t, prompt.User, "HS Code: Not specified")
	assert.Contains(t, prompt.User, "6_months")
	assert.Contains(t, prompt.User, "{}")
}

func TestBuildPromptCarriesRequestFields(t *testing.T) {
	prompt, err := BuildPrompt(Request{
		CompanyID:       "c-1",
		Type:            TypePriceTrend,
		TargetMarket:    "Germany",
		ProductCategory: "Textiles",
		HSCode:          "520100",
		Period:          PeriodOneYear,
		MarketData:      map[string]any{"inflation": 2.1},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt.System, "pricing analyst")
	assert.Contains(t, prompt.User, "Target Market: Germany")
	assert.Contains(t, prompt.User, "HS Code: 520100")
	assert.Contains(t, prompt.User, `"inflation":2.1`)
}

func TestBuildPromptDeterministic(t *testing.T) {
	req := Request{
		CompanyID:    "c-1",
		Type:         TypeDemandPrediction,
		TargetMarket: "Japan",
		Period:       PeriodThreeMonths,
		MarketData:   map[string]any{"b": 2.0, "a": 1.0, "c": 3.0},
	}
	first, err := BuildPrompt(req)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := BuildPrompt(req)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildPromptAppendsSchema(t *testing.T) {
	for _, typ := range []Type{TypeMarketForecast, TypePriceTrend, TypeDemandPrediction} {
		prompt, err := BuildPrompt(Request{CompanyID: "c-1", Type: typ, Period: PeriodOneMonth})
		require.NoError(t, err)
		assert.Contains(t, prompt.User, "Required JSON schema")
		assert.Contains(t, prompt.User, "Respond with only valid JSON matching the schema.")
		assert.Equal(t, string(typ), prompt.Contract.Name)
	}
}

func TestBuildPromptUnknownType(t *testing.T) {
	_, err := BuildPrompt(Request{CompanyID: "c-1", Type: Type("weather"), Period: PeriodOneMonth})
	require.Error(t, err)
	assert.Equal(t, KindInvalidRequest, KindOf(err))
}
