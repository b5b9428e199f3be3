package skyclock

import (
	"time"

	"github.com/thurmanmarka/skyclock/internal/sun"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// SunPosition is the Sun's place in the sky for one observer and instant.
// Altitude is geometric; no refraction is applied.
type SunPosition struct {
	Altitude       float64 `json:"altitude"`       // degrees above the horizon
	Azimuth        float64 `json:"azimuth"`        // degrees from north, clockwise, [0, 360)
	Declination    float64 `json:"declination"`    // degrees
	RightAscension float64 `json:"rightAscension"` // degrees, [0, 360)
	EquationOfTime float64 `json:"equationOfTime"` // minutes, apparent minus mean solar time
}

// GetPosition returns the Sun's position at t for an observer at lat, lon
// (degrees, east positive).
func GetPosition(t time.Time, lat, lon float64) SunPosition {
	d := timeutil.DaysSinceJ2000(t)
	c, h := sun.Horizontal(d, lat, lon)

	return SunPosition{
		Altitude:       timeutil.Rad2Deg(h.Altitude),
		Azimuth:        timeutil.Normalize360(timeutil.Rad2Deg(h.Azimuth)),
		Declination:    timeutil.Rad2Deg(c.Dec),
		RightAscension: timeutil.Normalize360(timeutil.Rad2Deg(c.RA)),
		EquationOfTime: sun.EquationOfTime(d),
	}
}
