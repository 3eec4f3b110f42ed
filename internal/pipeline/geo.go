package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/sscu-budapest/electiondata/internal"
)

// Hierarchy column keys. They namespace the geo id space: county-level and
// settlement-level units never collide even when their names coincide.
const (
	regionKey = "region"
	mainKey   = "main"
)

// GeoID derives a stable content-addressed geographical unit id from the
// canonical name and the hierarchy namespace it was observed in.
func GeoID(name, nsKey string) string {
	sum := md5.Sum([]byte(name))
	return "hun-" + nsKey + hex.EncodeToString(sum[:])[:10]
}

// geoLevel classifies a unit name within its hierarchy namespace. Budapest
// is one level finer than everything else at the same position: its
// "county" is really the settlement and its "settlements" are districts.
func geoLevel(name, nsKey string) string {
	bp := strings.Contains(name, "BUDAPEST")
	if nsKey == regionKey {
		if bp {
			return "settlement"
		}
		return "county"
	}
	if bp {
		return "district"
	}
	return "settlement"
}

// BuildHierarchy derives the parent/child adjacency edges between the two
// hierarchy levels of the metadata table, deduplicated in first-seen order.
func BuildHierarchy(metas []internal.ElectionMeta) []internal.DistrictHierarchy {
	seen := map[[2]string]bool{}
	out := make([]internal.DistrictHierarchy, 0)
	for _, m := range metas {
		k := [2]string{m.RegionName, m.MainName}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, internal.DistrictHierarchy{
			ParentGID: GeoID(m.RegionName, regionKey),
			ChildGID:  GeoID(m.MainName, mainKey),
		})
	}
	return out
}

// BuildGeoUnits derives the geographical unit table for one hierarchy level.
// nsKey selects which metadata column feeds the pass.
func BuildGeoUnits(metas []internal.ElectionMeta, nsKey string) []internal.GeographicalUnit {
	seen := map[string]bool{}
	out := make([]internal.GeographicalUnit, 0)
	for _, m := range metas {
		name := m.RegionName
		if nsKey == mainKey {
			name = m.MainName
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, internal.GeographicalUnit{
			GID:       GeoID(name, nsKey),
			Name:      name,
			LevelInfo: geoLevel(name, nsKey),
		})
	}
	return out
}
