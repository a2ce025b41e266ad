package models_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/terraform-industries/anthropic-types/models"
)

func TestMaxTokensFor(t *testing.T) {
	tests := []struct {
		modelID string
		want    uint32
	}{
		{"claude-3-7-sonnet-20250219", 200000},
		{"claude-3-5-haiku-20241022", 200000},
		{"claude-3-opus-20240229", 200000},
		{"claude-2.1", 100000},
		{"nonexistent-model-id", 100000},
		{"", 100000},
	}
	for _, tt := range tests {
		if got := models.MaxTokensFor(tt.modelID); got != tt.want {
			t.Errorf("MaxTokensFor(%q) = %d, want %d", tt.modelID, got, tt.want)
		}
	}
}

func TestPricingFor(t *testing.T) {
	tests := []struct {
		modelID string
		want    models.ModelPricing
	}{
		{"claude-3-7-sonnet-20250219", models.ModelPricing{InputCostPerMillionTokens: 3.00, OutputCostPerMillionTokens: 15.00}},
		{"claude-3-5-haiku-20241022", models.ModelPricing{InputCostPerMillionTokens: 0.80, OutputCostPerMillionTokens: 4.00}},
		{"claude-3-opus-20240229", models.ModelPricing{InputCostPerMillionTokens: 15.00, OutputCostPerMillionTokens: 75.00}},
		{"claude-3-haiku-20240307", models.ModelPricing{InputCostPerMillionTokens: 0.25, OutputCostPerMillionTokens: 1.25}},
		{"claude-2.0", models.DefaultPricing},
		{"nonexistent-model-id", models.ModelPricing{InputCostPerMillionTokens: 8.00, OutputCostPerMillionTokens: 24.00}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, models.PricingFor(tt.modelID)); diff != "" {
			t.Errorf("PricingFor(%q) mismatch (-want +got):\n%s", tt.modelID, diff)
		}
	}
}

func TestLookupIsExactMatch(t *testing.T) {
	for _, id := range []string{"claude-3-7-sonnet", "CLAUDE-3-7-SONNET-20250219", "claude-3-7-sonnet-20250219 "} {
		if _, ok := models.Lookup(id); ok {
			t.Errorf("Lookup(%q) matched, want no match", id)
		}
	}
	info, ok := models.Lookup("claude-3-7-sonnet-20250219")
	if !ok {
		t.Fatal("Lookup of a known id failed")
	}
	if info.Provider != models.Provider {
		t.Errorf("Provider = %q, want %q", info.Provider, models.Provider)
	}
}

func TestListReturnsCopies(t *testing.T) {
	list := models.List()
	if len(list) == 0 {
		t.Fatal("List returned no models")
	}
	list[0].MaxTokens = 1
	list[0].Pricing.InputCostPerMillionTokens = 999

	if got := models.MaxTokensFor(list[0].ID); got == 1 {
		t.Error("mutating List result changed the table")
	}
	if got := models.PricingFor(list[0].ID); got.InputCostPerMillionTokens == 999 {
		t.Error("mutating List pricing changed the table")
	}
}

func TestDescribeUnknown(t *testing.T) {
	want := models.ModelInfo{
		ID:          "mystery",
		DisplayName: "mystery",
		MaxTokens:   models.DefaultMaxTokens,
		Provider:    models.Provider,
		Pricing:     &models.ModelPricing{InputCostPerMillionTokens: 8, OutputCostPerMillionTokens: 24},
	}
	if diff := cmp.Diff(want, models.Describe("mystery")); diff != "" {
		t.Errorf("Describe mismatch (-want +got):\n%s", diff)
	}
}

func TestCost(t *testing.T) {
	pricing := models.PricingFor("claude-3-7-sonnet-20250219")
	got := pricing.Cost(1_000_000, 500_000)
	if math.Abs(got-10.5) > 1e-9 {
		t.Errorf("Cost = %v, want 10.5", got)
	}
}
