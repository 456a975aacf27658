package cost

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thomas-vilte/prtitle/internal/config"
)

type PricingTable struct {
	InputPricePerMillion  float64
	OutputPricePerMillion float64
}

type ProviderPricing map[config.AI]map[config.Model]PricingTable

// List prices in USD per million tokens.
var pricing = ProviderPricing{
	config.AIGemini: {
		config.ModelGeminiV25Flash:     {InputPricePerMillion: 0.30, OutputPricePerMillion: 2.50},
		config.ModelGeminiV25FlashLite: {InputPricePerMillion: 0.10, OutputPricePerMillion: 0.40},
		config.ModelGeminiV25Pro:       {InputPricePerMillion: 1.25, OutputPricePerMillion: 10.00},
	},
	config.AIAnthropic: {
		config.ModelClaudeHaiku45:  {InputPricePerMillion: 1.00, OutputPricePerMillion: 5.00},
		config.ModelClaudeSonnet45: {InputPricePerMillion: 3.00, OutputPricePerMillion: 15.00},
	},
	config.AIOpenAI: {
		config.ModelGPT4oMini: {InputPricePerMillion: 0.15, OutputPricePerMillion: 0.60},
		config.ModelGPT4o:     {InputPricePerMillion: 2.50, OutputPricePerMillion: 10.00},
	},
}

type Calculator struct {
	pricing ProviderPricing
}

func NewCalculator() *Calculator {
	return &Calculator{pricing: pricing}
}

// EstimateCost returns the cost in USD of a call, or 0 when the model has no known price.
func (c *Calculator) EstimateCost(provider, model string, inputTokens, outputTokens int) float64 {
	table, err := c.GetPricing(provider, model)
	if err != nil {
		return 0
	}

	inputCost := (float64(inputTokens) / 1_000_000) * table.InputPricePerMillion
	outputCost := (float64(outputTokens) / 1_000_000) * table.OutputPricePerMillion

	return inputCost + outputCost
}

// GetPricing returns the pricing table for a provider and model. Dated model
// versions such as claude-haiku-4-5-20251001 use the price of the longest
// known model name they start with.
func (c *Calculator) GetPricing(provider, model string) (PricingTable, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	model = strings.ToLower(strings.TrimSpace(model))

	providerPricing, exists := c.pricing[config.AI(provider)]
	if !exists {
		return PricingTable{}, fmt.Errorf("provider %s not found", provider)
	}

	if table, ok := providerPricing[config.Model(model)]; ok {
		return table, nil
	}

	names := make([]string, 0, len(providerPricing))
	for name := range providerPricing {
		names = append(names, string(name))
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	for _, name := range names {
		if strings.HasPrefix(model, name) {
			return providerPricing[config.Model(name)], nil
		}
	}

	return PricingTable{}, fmt.Errorf("model %s not found for provider %s", model, provider)
}
