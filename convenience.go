package skyclock

import (
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/skyclock/internal/moon"
	"github.com/thurmanmarka/skyclock/internal/sun"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// Body represents a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return fmt.Sprintf("Body(%d)", int(b))
	}
}

// ParseBody maps "sun" or "moon" to a Body.
func ParseBody(s string) (Body, error) {
	switch s {
	case "sun":
		return Sun, nil
	case "moon":
		return Moon, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownBody)
}

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

// Altitude returns the Sun's center altitude (degrees) that bounds the
// twilight kind.
func (k TwilightKind) Altitude() (float64, error) {
	switch k {
	case TwilightCivil:
		return -6, nil
	case TwilightNautical:
		return -12, nil
	case TwilightAstronomical:
		return -18, nil
	}
	return 0, fmt.Errorf("unknown TwilightKind: %d", k)
}

// ParseTwilightKind maps "civil", "nautical" or "astronomical" to a kind.
func ParseTwilightKind(s string) (TwilightKind, error) {
	switch s {
	case "civil":
		return TwilightCivil, nil
	case "nautical":
		return TwilightNautical, nil
	case "astronomical":
		return TwilightAstronomical, nil
	}
	return 0, fmt.Errorf("unknown twilight kind %q", s)
}

// RiseSet holds rise and set times of a body on a given date, in the date's
// Location. A zero time marks an event that did not happen.
type RiseSet struct {
	Rise time.Time
	Set  time.Time
}

// PhaseWindow represents a continuous time interval where the Sun's altitude
// stays within a particular range (e.g. golden hour or blue hour).
type PhaseWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration is End minus Start.
func (w PhaseWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// DaylightPhases holds the morning and evening windows for a given phase
// (e.g. golden hour or blue hour).
type DaylightPhases struct {
	Morning PhaseWindow `json:"morning"`
	Evening PhaseWindow `json:"evening"`

	// HasMorning / HasEvening indicate whether the corresponding window
	// exists on this date at this location (high latitudes can be weird).
	HasMorning bool `json:"hasMorning"`
	HasEvening bool `json:"hasEvening"`
}

// MoonPhase describes the illuminated fraction and qualitative phase
// of the Moon at a given instant.
type MoonPhase struct {
	Time       time.Time `json:"time"`       // the instant this phase is evaluated at
	Fraction   float64   `json:"fraction"`   // illuminated fraction [0..1], 0=new, 1=full
	Phase      float64   `json:"phase"`      // [0, 1), 0 new, 0.5 full
	Elongation float64   `json:"elongation"` // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool      `json:"waxing"`     // true if waxing (illumination increasing), false if waning
	Name       string    `json:"name"`       // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// RiseSetFor returns rise and set times for the given body and location on a date.
// The date's time zone is used for the returned times.
func RiseSetFor(body Body, loc Coordinates, date time.Time) (RiseSet, error) {
	switch body {
	case Sun:
		return sunCrossing(loc, date, sunHorizon(loc))
	case Moon:
		mt := GetMoonTimes(date, loc.Lat, loc.Lon)
		if !mt.HasRise && !mt.HasSet {
			return RiseSet{}, ErrNoRiseNoSet
		}
		var rs RiseSet
		if mt.HasRise {
			rs.Rise = mt.Rise.In(date.Location())
		}
		if mt.HasSet {
			rs.Set = mt.Set.In(date.Location())
		}
		return rs, nil
	default:
		return RiseSet{}, fmt.Errorf("%v: %w", body, ErrUnknownBody)
	}
}

// SlideIntoSunset is your glorious convenience helper:
// it returns sunrise and sunset for the Sun at the given location and date.
func SlideIntoSunset(loc Coordinates, date time.Time) (RiseSet, error) {
	return RiseSetFor(Sun, loc, date)
}

// DaylightHours calculates the duration of daylight (time between sunrise and
// sunset) in hours.
//
// During polar night it returns 0 and ErrNoRiseNoSet. During the midnight
// sun it returns 24 and ErrNoRiseNoSet, so callers that only want the number
// can ignore the error.
func DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	rs, err := SlideIntoSunset(loc, date)
	if err == nil {
		return rs.Set.Sub(rs.Rise).Hours(), nil
	}

	dec := timeutil.Rad2Deg(sun.TransitFor(date, loc.Lat, loc.Lon).Declination())
	if noonAltitude := 90 - math.Abs(loc.Lat-dec); noonAltitude > sunHorizon(loc) {
		return 24, err
	}
	return 0, err
}

// TwilightFor computes twilight times (dawn and dusk) of the given kind for
// a location and local calendar date. Rise is dawn (the upward crossing of
// the twilight altitude) and Set is dusk.
func TwilightFor(loc Coordinates, date time.Time, kind TwilightKind) (RiseSet, error) {
	alt, err := kind.Altitude()
	if err != nil {
		return RiseSet{}, err
	}
	return sunCrossing(loc, date, alt)
}

// GoldenHourFor computes the golden hour windows, when the Sun's center is
// between -4° and +6°. Morning is the Sun climbing through that band and
// Evening is the Sun sinking through it.
func GoldenHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return phasesBetween(loc, date, -4, 6)
}

// BlueHourFor computes the blue hour windows, when the Sun's center is
// between -6° and -4°.
func BlueHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return phasesBetween(loc, date, -6, -4)
}

// MoonPhaseAt computes the Moon's illuminated fraction and qualitative phase
// at the given time. Phase is a global property (independent of observer
// location); the returned Time is t unchanged.
func MoonPhaseAt(t time.Time) (MoonPhase, error) {
	ill := moon.IlluminationAt(timeutil.DaysSinceJ2000(t))
	if math.IsNaN(ill.Fraction) {
		return MoonPhase{}, fmt.Errorf("moon phase at %v is undefined", t)
	}

	pub := MoonIllumination{Fraction: ill.Fraction, Phase: ill.Phase}
	return MoonPhase{
		Time:       t,
		Fraction:   ill.Fraction,
		Phase:      ill.Phase,
		Elongation: timeutil.Rad2Deg(ill.Elongation),
		Waxing:     pub.Waxing(),
		Name:       pub.Name(),
	}, nil
}

// sunHorizon is the sunrise/sunset altitude for loc, lowered by the dip of
// the horizon when the observer is elevated.
func sunHorizon(loc Coordinates) float64 {
	return sun.ApparentHorizonAltitudeSun + sun.ObserverDip(loc.Elevation)
}

func sunCrossing(loc Coordinates, date time.Time, altDeg float64) (RiseSet, error) {
	rise, set, ok := sun.CrossingTimes(date, loc.Lat, loc.Lon, altDeg)
	if !ok {
		return RiseSet{}, ErrNoRiseNoSet
	}
	tz := date.Location()
	return RiseSet{Rise: rise.In(tz), Set: set.In(tz)}, nil
}

// phasesBetween returns the morning and evening windows during which the
// Sun's center is between lowAlt and highAlt degrees.
func phasesBetween(loc Coordinates, date time.Time, lowAlt, highAlt float64) (DaylightPhases, error) {
	tr := sun.TransitFor(date, loc.Lat, loc.Lon)
	tz := date.Location()

	riseLow, setLow, okLow := tr.Crossing(lowAlt)
	riseHigh, setHigh, okHigh := tr.Crossing(highAlt)

	var phases DaylightPhases
	if okLow && okHigh {
		phases.Morning = PhaseWindow{Start: timeutil.FromJulian(riseLow).In(tz), End: timeutil.FromJulian(riseHigh).In(tz)}
		phases.Evening = PhaseWindow{Start: timeutil.FromJulian(setHigh).In(tz), End: timeutil.FromJulian(setLow).In(tz)}
		phases.HasMorning = phases.Morning.End.After(phases.Morning.Start)
		phases.HasEvening = phases.Evening.End.After(phases.Evening.Start)
	}

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return phases, nil
}

func classifyMoonPhaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return "New Moon"
	case f > 1-eps:
		return "Full Moon"
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case f < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
