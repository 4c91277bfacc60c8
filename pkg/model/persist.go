package model

import "strings"

// regionKeyPrefix namespaces region entries in the persisted position map so
// they cannot collide with record ids.
const regionKeyPrefix = "_cat_"

// PersistedEntry is one saved position, keyed by record id or by
// RegionKey(regionName) in the persisted map.
type PersistedEntry struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Pinned bool    `json:"pinned,omitempty" bson:"pinned,omitempty"`
}

// RegionKey returns the persisted-map key for a region name.
func RegionKey(name string) string { return regionKeyPrefix + name }

// ParseRegionKey reports whether key addresses a region and, if so, returns
// the region name.
func ParseRegionKey(key string) (string, bool) {
	if strings.HasPrefix(key, regionKeyPrefix) {
		return key[len(regionKeyPrefix):], true
	}
	return "", false
}
