package app

import (
	"math"
	"testing"

	"brari/internal/ai"
)

func TestEstimateCost(t *testing.T) {
	usage := ai.Usage{
		PromptTokens:     1_000_000,
		CompletionTokens: 500_000,
	}
	usage.PromptTokenDetails.CachedTokens = 400_000

	inputCost, outputCost, ok := EstimateCost("o3-mini", usage)
	if !ok {
		t.Fatal("expected rates for o3-mini")
	}
	// 600k non-cached at $1.10 + 400k cached at $0.55, per million.
	wantInput := (600_000*1.10 + 400_000*0.55) / 1_000_000
	wantOutput := 500_000 * 4.40 / 1_000_000
	if math.Abs(inputCost-wantInput) > 1e-9 {
		t.Errorf("input cost = %f, want %f", inputCost, wantInput)
	}
	if math.Abs(outputCost-wantOutput) > 1e-9 {
		t.Errorf("output cost = %f, want %f", outputCost, wantOutput)
	}
}

func TestEstimateCost_UnknownModel(t *testing.T) {
	if _, _, ok := EstimateCost("some-future-model", ai.Usage{}); ok {
		t.Error("expected no rates for an unknown model")
	}
}
