package gridmap

import "errors"

// Sentinel errors for grid-map lookups, in the teacher's
// librobot_errors.go idiom (package-level wrapped sentinels rather than
// bespoke error types).
var (
	// ErrUnknownItem indicates an item name was never registered with the map.
	ErrUnknownItem = errors.New("item not found in grid map")
)
