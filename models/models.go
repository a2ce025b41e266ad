// Package models is the static capability table: context window sizes and
// list prices per model identifier. It is advisory metadata and never decides
// whether a request may be sent.
package models

// Provider is the provider name reported for every entry in the table.
const Provider = "anthropic"

// DefaultMaxTokens is the conservative context window assumed for an
// identifier the table does not know.
const DefaultMaxTokens uint32 = 100000

// DefaultPricing is the fallback price pair for unknown identifiers.
var DefaultPricing = ModelPricing{
	InputCostPerMillionTokens:  8.00,
	OutputCostPerMillionTokens: 24.00,
}

// ModelInfo describes one model.
type ModelInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	// Maximum context window size
	MaxTokens uint32        `json:"max_tokens"`
	Provider  string        `json:"provider"`
	Pricing   *ModelPricing `json:"pricing"`
}

// ModelPricing holds list prices in USD per million tokens.
type ModelPricing struct {
	InputCostPerMillionTokens  float64 `json:"input_cost_per_million_tokens"`
	OutputCostPerMillionTokens float64 `json:"output_cost_per_million_tokens"`
}

// Cost prices a token count pair.
func (p ModelPricing) Cost(inputTokens, outputTokens uint64) float64 {
	inputCost := float64(inputTokens) * p.InputCostPerMillionTokens / 1_000_000
	outputCost := float64(outputTokens) * p.OutputCostPerMillionTokens / 1_000_000
	return inputCost + outputCost
}

func pricing(input, output float64) *ModelPricing {
	return &ModelPricing{InputCostPerMillionTokens: input, OutputCostPerMillionTokens: output}
}

// table is ordered newest first; List preserves this order.
var table = []ModelInfo{
	// Claude 3.7 models
	{ID: "claude-3-7-sonnet-20250219", DisplayName: "Claude 3.7 Sonnet", MaxTokens: 200000, Pricing: pricing(3.00, 15.00)},

	// Claude 3.5 models
	{ID: "claude-3-5-sonnet-20241022", DisplayName: "Claude 3.5 Sonnet (New)", MaxTokens: 200000, Pricing: pricing(3.00, 15.00)},
	{ID: "claude-3-5-haiku-20241022", DisplayName: "Claude 3.5 Haiku", MaxTokens: 200000, Pricing: pricing(0.80, 4.00)},
	{ID: "claude-3-5-sonnet-20240620", DisplayName: "Claude 3.5 Sonnet", MaxTokens: 200000, Pricing: pricing(3.00, 15.00)},

	// Claude 3 models
	{ID: "claude-3-opus-20240229", DisplayName: "Claude 3 Opus", MaxTokens: 200000, Pricing: pricing(15.00, 75.00)},
	{ID: "claude-3-sonnet-20240229", DisplayName: "Claude 3 Sonnet", MaxTokens: 200000, Pricing: pricing(3.00, 15.00)},
	{ID: "claude-3-haiku-20240307", DisplayName: "Claude 3 Haiku", MaxTokens: 200000, Pricing: pricing(0.25, 1.25)},

	// Claude 2 models have no list price of their own and use DefaultPricing.
	{ID: "claude-2.1", DisplayName: "Claude 2.1", MaxTokens: 100000},
	{ID: "claude-2.0", DisplayName: "Claude 2.0", MaxTokens: 100000},
}

var byID = func() map[string]int {
	index := make(map[string]int, len(table))
	for i, info := range table {
		index[info.ID] = i
	}
	return index
}()

// Lookup returns the entry for an exact identifier.
func Lookup(modelID string) (ModelInfo, bool) {
	i, ok := byID[modelID]
	if !ok {
		return ModelInfo{}, false
	}
	return entry(i), true
}

// List returns every known model. The returned slice is a copy.
func List() []ModelInfo {
	out := make([]ModelInfo, len(table))
	for i := range table {
		out[i] = entry(i)
	}
	return out
}

func entry(i int) ModelInfo {
	info := table[i]
	info.Provider = Provider
	if info.Pricing != nil {
		p := *info.Pricing
		info.Pricing = &p
	}
	return info
}

// MaxTokensFor returns the context window for modelID, or DefaultMaxTokens.
func MaxTokensFor(modelID string) uint32 {
	if info, ok := Lookup(modelID); ok {
		return info.MaxTokens
	}
	return DefaultMaxTokens
}

// PricingFor returns the list prices for modelID, or DefaultPricing.
func PricingFor(modelID string) ModelPricing {
	if info, ok := Lookup(modelID); ok && info.Pricing != nil {
		return *info.Pricing
	}
	return DefaultPricing
}

// Describe returns the entry for modelID, or a synthesized entry carrying the
// fallback values for an unknown identifier.
func Describe(modelID string) ModelInfo {
	if info, ok := Lookup(modelID); ok {
		return info
	}
	p := DefaultPricing
	return ModelInfo{
		ID:          modelID,
		DisplayName: modelID,
		MaxTokens:   DefaultMaxTokens,
		Provider:    Provider,
		Pricing:     &p,
	}
}
