package pipeline

import (
	"testing"
	"time"

	"github.com/sscu-budapest/electiondata/internal"
)

func TestGeoIDStable(t *testing.T) {
	a := GeoID("ZALA", regionKey)
	b := GeoID("ZALA", regionKey)
	if a != b {
		t.Fatalf("gid not stable: %q vs %q", a, b)
	}
	if len(a) != len("hun-region")+10 {
		t.Fatalf("unexpected gid length: %q", a)
	}
	if GeoID("ZALA", mainKey) == a {
		t.Fatal("namespaces must not collide")
	}
	if GeoID("VAS", regionKey) == a {
		t.Fatal("names must not collide")
	}
}

func TestGeoLevelBudapest(t *testing.T) {
	cases := []struct {
		name  string
		nsKey string
		want  string
	}{
		{name: "ZALA", nsKey: regionKey, want: "county"},
		{name: "BUDAPEST", nsKey: regionKey, want: "settlement"},
		{name: "NAGYKANIZSA", nsKey: mainKey, want: "settlement"},
		{name: "BUDAPEST X. KERÜLET", nsKey: mainKey, want: "district"},
	}

	for _, tc := range cases {
		if got := geoLevel(tc.name, tc.nsKey); got != tc.want {
			t.Fatalf("geoLevel(%q, %s) = %q, want %q", tc.name, tc.nsKey, got, tc.want)
		}
	}
}

func TestBuildGeoUnitsAndHierarchy(t *testing.T) {
	metas := []internal.ElectionMeta{
		{MetaID: "m1", HeldDate: time.Date(1994, 5, 8, 0, 0, 0, 0, time.UTC), RegionName: "ZALA", MainName: "NAGYKANIZSA"},
		{MetaID: "m2", HeldDate: time.Date(1994, 5, 8, 0, 0, 0, 0, time.UTC), RegionName: "ZALA", MainName: "NAGYKANIZSA"},
		{MetaID: "m3", HeldDate: time.Date(1994, 5, 8, 0, 0, 0, 0, time.UTC), RegionName: "ZALA", MainName: "KESZTHELY"},
	}

	regions := BuildGeoUnits(metas, regionKey)
	if len(regions) != 1 || regions[0].Name != "ZALA" || regions[0].LevelInfo != "county" {
		t.Fatalf("regions: %+v", regions)
	}

	mains := BuildGeoUnits(metas, mainKey)
	if len(mains) != 2 {
		t.Fatalf("mains: %+v", mains)
	}

	edges := BuildHierarchy(metas)
	if len(edges) != 2 {
		t.Fatalf("edges: %+v", edges)
	}
	if edges[0].ParentGID != GeoID("ZALA", regionKey) || edges[0].ChildGID != GeoID("NAGYKANIZSA", mainKey) {
		t.Fatalf("edge: %+v", edges[0])
	}
}
