package pdxcdkutil

import (
	"slices"
)

// RegionIdents maps the AWS regions the service may deploy into to
// 4-character identifiers: 2-letter geo + 1-letter direction + 1-digit number.
var RegionIdents = map[string]string{
	"ap-southeast-1": "Ase1",
	"ap-southeast-2": "Ase2",
	"ap-southeast-4": "Ase4",

	"us-east-1": "Use1",
	"us-west-2": "Usw2",

	"eu-west-1":    "Euw1",
	"eu-central-1": "Euc1",
}

// RegionIdentFor returns the 4-character identifier for an AWS region.
// It panics if the region is unknown. Use IsKnownRegion to check first if needed.
func RegionIdentFor(region string) string {
	ident, ok := RegionIdents[region]
	if !ok {
		panic("unknown AWS region: " + region + ". Please add it to pdxcdkutil.RegionIdents")
	}
	return ident
}

// IsKnownRegion returns true if the region has a known identifier.
func IsKnownRegion(region string) bool {
	_, ok := RegionIdents[region]
	return ok
}

// AllKnownRegions returns a sorted slice of all known AWS region codes.
func AllKnownRegions() []string {
	regions := make([]string, 0, len(RegionIdents))
	for region := range RegionIdents {
		regions = append(regions, region)
	}
	slices.Sort(regions)
	return regions
}
