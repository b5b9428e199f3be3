package sun

import (
	"time"
)

// Threshold is a named pair of events at which the Sun's center crosses
// Angle degrees of altitude, once rising and once setting.
type Threshold struct {
	Angle float64
	Rise  string
	Set   string
}

// Day holds the solved events for one calendar day. Times are Julian dates.
type Day struct {
	Noon  float64
	Nadir float64

	// Events holds only the crossings that occur; an absent name means the
	// Sun never reached that altitude (or never left it) on this day.
	Events map[string]float64
}

// Events solves every threshold for date's calendar day at lat, lon
// (degrees) for an observer elevationM metres up. Each threshold is
// evaluated on its own, so one missing pair never hides another.
func Events(date time.Time, lat, lon, elevationM float64, thresholds []Threshold) Day {
	tr := TransitFor(date, lat, lon)
	dip := ObserverDip(elevationM)

	day := Day{
		Noon:   tr.Noon,
		Nadir:  tr.Nadir(),
		Events: make(map[string]float64, 2*len(thresholds)),
	}
	for _, th := range thresholds {
		rise, set, ok := tr.Crossing(th.Angle + dip)
		if !ok {
			continue
		}
		day.Events[th.Rise] = rise
		day.Events[th.Set] = set
	}
	return day
}
