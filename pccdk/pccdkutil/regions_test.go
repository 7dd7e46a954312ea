package pccdkutil_test

import (
	"slices"
	"testing"

	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

func TestRegionIdents_AllFourCharacters(t *testing.T) {
	for region, ident := range pccdkutil.RegionIdents {
		if len(ident) != 4 {
			t.Errorf("ident for %s is %q, want exactly 4 characters", region, ident)
		}
	}
}

func TestRegionIdentFor(t *testing.T) {
	if got := pccdkutil.RegionIdentFor("us-east-1"); got != "Use1" {
		t.Errorf("RegionIdentFor(us-east-1) = %q, want Use1", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("RegionIdentFor should panic for unknown regions")
		}
	}()
	pccdkutil.RegionIdentFor("mars-north-1")
}

func TestRegionIdentLower(t *testing.T) {
	if got := pccdkutil.RegionIdentLower("eu-west-1"); got != "euw1" {
		t.Errorf("RegionIdentLower(eu-west-1) = %q, want euw1", got)
	}
}

func TestIsKnownRegion(t *testing.T) {
	if !pccdkutil.IsKnownRegion("us-east-1") {
		t.Error("us-east-1 should be known")
	}
	if pccdkutil.IsKnownRegion("mars-north-1") {
		t.Error("mars-north-1 should not be known")
	}
}

func TestAllKnownRegions_Sorted(t *testing.T) {
	regions := pccdkutil.AllKnownRegions()
	if len(regions) != len(pccdkutil.RegionIdents) {
		t.Errorf("AllKnownRegions() returned %d regions, want %d",
			len(regions), len(pccdkutil.RegionIdents))
	}
	if !slices.IsSorted(regions) {
		t.Error("AllKnownRegions() should be sorted")
	}
}
