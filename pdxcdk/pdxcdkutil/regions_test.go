package pdxcdkutil_test

import (
	"slices"
	"testing"

	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

func TestRegionIdentFor(t *testing.T) {
	if got := pdxcdkutil.RegionIdentFor("ap-southeast-2"); got != "Ase2" {
		t.Errorf("RegionIdentFor(ap-southeast-2) = %q, want %q", got, "Ase2")
	}
}

func TestRegionIdentFor_PanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown region")
		}
	}()
	pdxcdkutil.RegionIdentFor("unknown-region-1")
}

func TestAllKnownRegions_Sorted(t *testing.T) {
	regions := pdxcdkutil.AllKnownRegions()
	if !slices.IsSorted(regions) {
		t.Errorf("AllKnownRegions() is not sorted: %v", regions)
	}
	if !slices.Contains(regions, "ap-southeast-2") {
		t.Error("ap-southeast-2 should be known")
	}
}
