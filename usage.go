package anthropictypes

import "github.com/terraform-industries/anthropic-types/models"

// Usage is the token accounting of a response. The cache counts are absent
// on older payloads; absent is kept distinct from zero.
type Usage struct {
	InputTokens              uint32  `json:"input_tokens"`
	OutputTokens             uint32  `json:"output_tokens"`
	CacheReadInputTokens     *uint32 `json:"cache_read_input_tokens,omitempty"`
	CacheCreationInputTokens *uint32 `json:"cache_creation_input_tokens,omitempty"`
}

// TotalInputTokens sums input, cache-read and cache-creation tokens, counting
// an absent cache figure as zero.
func (u Usage) TotalInputTokens() uint64 {
	total := uint64(u.InputTokens)
	if u.CacheReadInputTokens != nil {
		total += uint64(*u.CacheReadInputTokens)
	}
	if u.CacheCreationInputTokens != nil {
		total += uint64(*u.CacheCreationInputTokens)
	}
	return total
}

// EstimateCost prices the usage with the given rates. The figure is advisory.
func (u Usage) EstimateCost(pricing models.ModelPricing) float64 {
	return pricing.Cost(u.TotalInputTokens(), uint64(u.OutputTokens))
}

func (u *Usage) UnmarshalJSON(data []byte) error {
	res, err := parsePayload(data)
	if err != nil {
		return err
	}
	obj, err := asObject(res, "")
	if err != nil {
		return err
	}
	usage, err := decodeUsage(obj)
	if err != nil {
		return err
	}
	*u = usage
	return nil
}

func decodeUsage(obj object) (Usage, error) {
	input, err := obj.RequiredUint32("input_tokens")
	if err != nil {
		return Usage{}, err
	}
	output, err := obj.RequiredUint32("output_tokens")
	if err != nil {
		return Usage{}, err
	}
	cacheRead, err := obj.OptionalUint32("cache_read_input_tokens")
	if err != nil {
		return Usage{}, err
	}
	cacheCreation, err := obj.OptionalUint32("cache_creation_input_tokens")
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		InputTokens:              input,
		OutputTokens:             output,
		CacheReadInputTokens:     cacheRead,
		CacheCreationInputTokens: cacheCreation,
	}, nil
}
