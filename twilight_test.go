package skyclock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/skyclock"
)

var testDate = time.Date(2025, time.November, 28, 0, 0, 0, 0, time.UTC)

// TestTwilightFor_Phoenix_2025_11_28 compares against an online twilight
// calculator for Phoenix, AZ (local time, America/Phoenix):
//
//	Civil dawn:        06:45   Civil dusk:        17:47
//	Nautical dawn:     06:14   Nautical dusk:     18:18
//	Astronomical dawn: 05:44   Astronomical dusk: 18:48
func TestTwilightFor_Phoenix_2025_11_28(t *testing.T) {
	loc, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)

	coords := skyclock.Coordinates{
		Lat: 33.4484,
		Lon: -112.0740,
	}
	date := time.Date(2025, time.November, 28, 0, 0, 0, 0, loc)

	cases := []struct {
		name       string
		kind       skyclock.TwilightKind
		expectDawn string // HH:MM local
		expectDusk string // HH:MM local
	}{
		{"Civil", skyclock.TwilightCivil, "06:45", "17:47"},
		{"Nautical", skyclock.TwilightNautical, "06:14", "18:18"},
		{"Astronomical", skyclock.TwilightAstronomical, "05:44", "18:48"},
	}

	const maxAllowedErr = 5 * time.Minute

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			refDawn := atLocalClock(t, date, tc.expectDawn)
			refDusk := atLocalClock(t, date, tc.expectDusk)

			rs, err := skyclock.TwilightFor(coords, date, tc.kind)
			require.NoError(t, err)

			assert.WithinDuration(t, refDawn, rs.Rise, maxAllowedErr, "dawn")
			assert.WithinDuration(t, refDusk, rs.Set, maxAllowedErr, "dusk")
			assert.Equal(t, loc, rs.Rise.Location())
		})
	}
}

// TestTwilightFor_MatchesGetTimes checks that the convenience wrapper and
// the threshold table agree.
func TestTwilightFor_MatchesGetTimes(t *testing.T) {
	coords := skyclock.Coordinates{Lat: 51.48, Lon: 0}
	times := skyclock.GetTimes(testDate, coords.Lat, coords.Lon)

	rs, err := skyclock.TwilightFor(coords, testDate, skyclock.TwilightAstronomical)
	require.NoError(t, err)

	nightEnd, ok := times.Event(skyclock.NightEnd)
	require.True(t, ok)
	night, ok := times.Event(skyclock.Night)
	require.True(t, ok)

	assert.True(t, nightEnd.Equal(rs.Rise))
	assert.True(t, night.Equal(rs.Set))
}

func TestTwilightFor_WhiteNights(t *testing.T) {
	// Saint Petersburg never gets darker than civil twilight around the June solstice.
	coords := skyclock.Coordinates{Lat: 59.94, Lon: 30.31}
	date := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)

	_, err := skyclock.TwilightFor(coords, date, skyclock.TwilightNautical)
	assert.ErrorIs(t, err, skyclock.ErrNoRiseNoSet)

	_, err = skyclock.TwilightFor(coords, date, skyclock.TwilightCivil)
	assert.NoError(t, err)
}

func atLocalClock(t *testing.T, date time.Time, hhmm string) time.Time {
	t.Helper()
	clock, err := time.ParseInLocation("15:04", hhmm, date.Location())
	require.NoError(t, err)
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location())
}
