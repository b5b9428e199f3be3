package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/profile"
)

var kyiv = skyclock.Coordinates{Lat: 50.5, Lon: 30.5}

func TestSunTimes_MarksAbsentEvents(t *testing.T) {
	tromso := skyclock.Coordinates{Lat: 69.6492, Lon: 18.9553}
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, SunTimes(&buf, tromso, date, time.UTC, skyclock.GetTimes(date, tromso.Lat, tromso.Lon)))

	out := buf.String()
	assert.Contains(t, out, "Sun times")
	assert.Contains(t, out, "69.6492°N 18.9553°E")
	assert.Contains(t, out, "Solar noon")
	assert.Contains(t, out, "goldenHour")
	assert.Regexp(t, `night\s+does not occur`, out)
}

func TestSunTimes_Clock(t *testing.T) {
	date := time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, SunTimes(&buf, kyiv, date, time.UTC, skyclock.GetTimes(date, kyiv.Lat, kyiv.Lon)))
	assert.Regexp(t, `sunrise\s+04:3[45]:\d\d UTC`, buf.String())
}

func TestSunPosition(t *testing.T) {
	at := time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, SunPosition(&buf, kyiv, at, skyclock.GetPosition(at, kyiv.Lat, kyiv.Lon)))

	out := buf.String()
	assert.Contains(t, out, "Sun position")
	assert.Contains(t, out, "2013-03-05T00:00:00Z")
	assert.Contains(t, out, "36.74")
}

func TestMoon(t *testing.T) {
	at := time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, Moon(&buf, kyiv, at,
		skyclock.GetMoonPosition(at, kyiv.Lat, kyiv.Lon),
		skyclock.GetMoonIllumination(at),
		skyclock.MoonTimes{Set: at.Add(8 * time.Hour), HasSet: true}))

	out := buf.String()
	assert.Contains(t, out, "Last Quarter")
	assert.Regexp(t, `Moonrise\s+does not occur`, out)
	assert.Regexp(t, `Moonset\s+08:00:00 UTC`, out)

	buf.Reset()
	require.NoError(t, Moon(&buf, kyiv, at, skyclock.MoonPosition{}, skyclock.MoonIllumination{}, skyclock.MoonTimes{AlwaysDown: true}))
	assert.Contains(t, buf.String(), "below the horizon all day")
}

func TestPhase(t *testing.T) {
	mp, err := skyclock.MoonPhaseAt(time.Date(2021, 5, 26, 11, 14, 0, 0, time.UTC))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Phase(&buf, mp))
	assert.Contains(t, buf.String(), "Full Moon")
	assert.Contains(t, buf.String(), "% illuminated")
}

func TestTwilight(t *testing.T) {
	date := time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)
	rs := skyclock.RiseSet{Rise: date.Add(6 * time.Hour), Set: date.Add(18 * time.Hour)}
	golden := &skyclock.DaylightPhases{
		Morning:    skyclock.PhaseWindow{Start: date.Add(7 * time.Hour), End: date.Add(8 * time.Hour)},
		HasMorning: true,
	}

	var buf bytes.Buffer
	require.NoError(t, Twilight(&buf, kyiv, date, "nautical", rs, golden, nil))

	out := buf.String()
	assert.Contains(t, out, "Nautical twilight")
	assert.Regexp(t, `Dawn\s+06:00:00 UTC`, out)
	assert.Contains(t, out, "07:00 - 08:00 (1h0m0s)")
	assert.NotContains(t, out, "Golden hour (pm)")
	assert.Regexp(t, `Blue hour\s+does not occur`, out)
}

func TestProfile(t *testing.T) {
	rep := &profile.Report{Mode: "SUN", Total: 3, Skipped: 1}
	rep.Rise.Add(1)
	rep.Rise.Add(3)
	rep.RiseBias.Add(-1)

	var buf bytes.Buffer
	require.NoError(t, Profile(&buf, kyiv, time.UTC, rep))

	out := buf.String()
	assert.Contains(t, out, "2 processed, 1 skipped")
	assert.Contains(t, out, "n=2 min=1.000 max=3.000 avg=2.000")
	assert.Contains(t, out, "mean=-1.000")
	assert.Regexp(t, `Set error\s+no data`, out)

	buf.Reset()
	require.NoError(t, Profile(&buf, kyiv, time.UTC, &profile.Report{Mode: "MOON"}))
	assert.Contains(t, buf.String(), "no valid rows")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	buf.Reset()
	date := time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, JSON(&buf, skyclock.GetTimes(date, kyiv.Lat, kyiv.Lon)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 14)
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"solarNoon\""))
}
