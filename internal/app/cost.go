package app

import "brari/internal/ai"

type costRates struct {
	Input       float64
	CachedInput float64
	Output      float64
}

// Dollars per million tokens. Observability only; nothing limits or rejects
// based on these numbers.
var modelCosts = map[string]costRates{
	"gpt-4o":      {Input: 2.50, CachedInput: 1.25, Output: 10.00},
	"gpt-4o-mini": {Input: 0.150, CachedInput: 0.075, Output: 0.600},
	"o3-mini":     {Input: 1.10, CachedInput: 0.55, Output: 4.40},
}

// EstimateCost prices a generation step. Cached prompt tokens are billed at
// the cached-input rate, the remainder at the input rate. ok is false when
// the model has no rate entry.
func EstimateCost(model string, usage ai.Usage) (inputCost, outputCost float64, ok bool) {
	rates, ok := modelCosts[model]
	if !ok {
		return 0, 0, false
	}
	cached := usage.PromptTokenDetails.CachedTokens
	nonCached := usage.PromptTokens - cached
	inputCost = (float64(nonCached)*rates.Input + float64(cached)*rates.CachedInput) / 1_000_000
	outputCost = float64(usage.CompletionTokens) * rates.Output / 1_000_000
	return inputCost, outputCost, true
}
