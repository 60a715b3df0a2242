package models

// Region names one output target of the dashboard.
type Region string

const (
	RegionReport    Region = "report"
	RegionCountdown Region = "countdown"
)

// Regions lists every region in display order.
var Regions = []Region{RegionReport, RegionCountdown}

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// RegionUpdate is one write to a region.
type RegionUpdate struct {
	Region Region `json:"region"`
	Text   string `json:"text"`
}
