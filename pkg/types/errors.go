package types

import "errors"

// Sentinel errors for node construction and lookup.
var (
	ErrUnknownRouteType = errors.New("unknown route segment type")
	ErrUnknownTileType  = errors.New("tile_id does not encode a recognized tile type")
)
