package anthropictypes

import "github.com/terraform-industries/anthropic-types/internal/wire"

type object = wire.Object

var (
	parsePayload = wire.Parse
	asObject     = wire.AsObject
	present      = wire.Present
	describe     = wire.Describe
	compactRaw   = wire.CompactRaw
	rawMap       = wire.RawMap
	indexPath    = wire.IndexPath
)
