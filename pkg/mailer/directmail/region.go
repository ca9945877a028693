package directmail

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultRegionID is used when Config.RegionID is empty.
const DefaultRegionID = "cn-hangzhou"

// Region is a DirectMail deployment zone with its own endpoint and API version.
type Region struct {
	ID       string
	Endpoint string
	Version  string
}

var regions = map[string]Region{
	"cn-hangzhou": {
		ID:       "cn-hangzhou",
		Endpoint: "https://dm.aliyuncs.com",
		Version:  "2015-11-23",
	},
	"ap-southeast-1": {
		ID:       "ap-southeast-1",
		Endpoint: "https://dm.ap-southeast-1.aliyuncs.com",
		Version:  "2017-06-22",
	},
	"ap-southeast-2": {
		ID:       "ap-southeast-2",
		Endpoint: "https://dm.ap-southeast-2.aliyuncs.com",
		Version:  "2017-06-22",
	},
}

// ResolveRegion returns the region registered under id.
// Returns ErrUnknownRegion if id is not a supported region.
func ResolveRegion(id string) (Region, error) {
	r, ok := regions[id]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	return r, nil
}

// Regions returns all supported regions ordered by ID.
func Regions() []Region {
	result := make([]Region, 0, len(regions))
	for _, r := range regions {
		result = append(result, r)
	}
	slices.SortFunc(result, func(a, b Region) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}
