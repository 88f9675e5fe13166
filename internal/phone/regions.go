package phone

import (
	"sort"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// callingCodes is the bidirectional calling-code <-> ISO region table. Built
// once from the libphonenumber metadata and never mutated afterwards.
type callingCodes struct {
	toRegions map[int][]string
	toCode    map[string]int
}

var (
	tableOnce sync.Once
	table     callingCodes
)

func loadTable() callingCodes {
	tableOnce.Do(func() {
		table = callingCodes{
			toRegions: make(map[int][]string),
			toCode:    make(map[string]int),
		}
		for region := range phonenumbers.GetSupportedRegions() {
			cc := phonenumbers.GetCountryCodeForRegion(region)
			if cc == 0 {
				continue
			}
			table.toCode[region] = cc
			table.toRegions[cc] = append(table.toRegions[cc], region)
		}
		for cc, regions := range table.toRegions {
			sort.Strings(regions)
			// Main country for the code first (US for 1, RU for 7).
			main := phonenumbers.GetRegionCodeForCountryCode(cc)
			for i, r := range regions {
				if r == main && i > 0 {
					copy(regions[1:i+1], regions[:i])
					regions[0] = main
					break
				}
			}
			table.toRegions[cc] = regions
		}
	})
	return table
}

// RegionsForCallingCode returns the ISO regions sharing a calling code, main
// country first. Returns nil for unknown codes. The slice must not be modified.
func RegionsForCallingCode(cc int) []string {
	return loadTable().toRegions[cc]
}

// CallingCodeForRegion returns the calling code of an ISO region, or 0.
func CallingCodeForRegion(region string) int {
	return loadTable().toCode[strings.ToUpper(strings.TrimSpace(region))]
}
