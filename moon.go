package skyclock

import (
	"encoding/json"
	"math"
	"time"

	"github.com/thurmanmarka/skyclock/internal/frame"
	"github.com/thurmanmarka/skyclock/internal/moon"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// MoonPosition is the Moon's place in the sky for one observer and instant.
type MoonPosition struct {
	// Altitude is the apparent altitude seen from the Earth's surface:
	// parallax removed, refraction added. Degrees.
	Altitude float64 `json:"altitude"`

	// GeocentricAltitude is the refracted altitude as seen from the Earth's
	// center, without the parallax correction. Degrees.
	GeocentricAltitude float64 `json:"geocentricAltitude"`

	Azimuth          float64 `json:"azimuth"`          // degrees from north, clockwise, [0, 360)
	Distance         float64 `json:"distance"`         // km, Earth center to Moon center
	ParallacticAngle float64 `json:"parallacticAngle"` // degrees
}

// GetMoonPosition returns the Moon's position at t for an observer at lat,
// lon (degrees, east positive).
func GetMoonPosition(t time.Time, lat, lon float64) MoonPosition {
	p := moon.Horizontal(timeutil.DaysSinceJ2000(t), lat, lon)

	geo := p.Horizontal.Altitude
	topo := p.TopocentricAltitude

	return MoonPosition{
		Altitude:           timeutil.Rad2Deg(topo + frame.Refraction(topo)),
		GeocentricAltitude: timeutil.Rad2Deg(geo + frame.Refraction(geo)),
		Azimuth:            timeutil.Normalize360(timeutil.Rad2Deg(p.Horizontal.Azimuth)),
		Distance:           p.Distance,
		ParallacticAngle:   timeutil.Rad2Deg(p.Horizontal.ParallacticAngle),
	}
}

// MoonIllumination describes the lit part of the lunar disc. It is the same
// for every observer.
type MoonIllumination struct {
	// Fraction is the illuminated fraction [0..1], 0=new, 1=full.
	Fraction float64 `json:"fraction"`

	// Phase runs through [0, 1): 0 new, 0.25 first quarter, 0.5 full,
	// 0.75 last quarter.
	Phase float64 `json:"phase"`

	// Angle is the position angle of the midpoint of the bright limb,
	// degrees eastward from north. Negative while waxing.
	Angle float64 `json:"angle"`
}

// GetMoonIllumination returns the Moon's illumination at t.
func GetMoonIllumination(t time.Time) MoonIllumination {
	ill := moon.IlluminationAt(timeutil.DaysSinceJ2000(t))
	return MoonIllumination{
		Fraction: ill.Fraction,
		Phase:    ill.Phase,
		Angle:    timeutil.Rad2Deg(ill.Angle),
	}
}

// Waxing reports whether the lit fraction is growing.
func (m MoonIllumination) Waxing() bool {
	return m.Phase < 0.5
}

// Name returns the conventional name of the phase, e.g. "Waxing Crescent".
func (m MoonIllumination) Name() string {
	return classifyMoonPhaseName(m.Fraction, m.Waxing())
}

// MoonTimes holds the Moon's rise and set on one calendar day. A day can
// have a rise without a set or the other way round, since the Moon's
// transit drifts about 50 minutes later each day.
type MoonTimes struct {
	Rise    time.Time
	Set     time.Time
	HasRise bool
	HasSet  bool

	// AlwaysUp and AlwaysDown are set only when neither event happens.
	AlwaysUp   bool
	AlwaysDown bool
}

// MarshalJSON renders absent events as null.
func (m MoonTimes) MarshalJSON() ([]byte, error) {
	type wire struct {
		Rise       *time.Time `json:"rise"`
		Set        *time.Time `json:"set"`
		AlwaysUp   bool       `json:"alwaysUp"`
		AlwaysDown bool       `json:"alwaysDown"`
	}
	w := wire{AlwaysUp: m.AlwaysUp, AlwaysDown: m.AlwaysDown}
	if m.HasRise {
		w.Rise = &m.Rise
	}
	if m.HasSet {
		w.Set = &m.Set
	}
	return json.Marshal(w)
}

// GetMoonTimes finds moonrise and moonset during date's calendar day
// (midnight to midnight in date's Location) at lat, lon. Returned times
// are UTC.
func GetMoonTimes(date time.Time, lat, lon float64) MoonTimes {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return MoonTimes{}
	}

	rs, okRise, okSet, alwaysUp := moon.RiseSetForDate(lat, lon, date)

	mt := MoonTimes{
		Rise:    rs.Rise,
		Set:     rs.Set,
		HasRise: okRise,
		HasSet:  okSet,
	}
	if !okRise && !okSet {
		mt.AlwaysUp = alwaysUp
		mt.AlwaysDown = !alwaysUp
	}
	return mt
}
