// Package render formats skyclock results for the terminal and as JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/profile"
)

// Palette
const (
	colorTitle  = "#FFD700" // Gold
	colorLabel  = "135"
	colorDim    = "60"
	colorAbsent = "#FF6347" // Tomato
	colorValue  = "255"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorTitle)).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel)).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorValue))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	absentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAbsent)).Italic(true)
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(colorDim)).
	Padding(0, 1)

// JSON writes v indented.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table renders label/value rows with aligned labels.
type table struct {
	rows [][2]string
}

func (t *table) add(label, value string) {
	t.rows = append(t.rows, [2]string{label, value})
}

func (t *table) String() string {
	width := 0
	for _, r := range t.rows {
		width = max(width, lipgloss.Width(r[0]))
	}

	lines := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		label := labelStyle.Width(width + 2).Render(r[0])
		lines = append(lines, label+r[1])
	}
	return strings.Join(lines, "\n")
}

func panel(w io.Writer, title, subtitle string, body fmt.Stringer) error {
	out := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		dimStyle.Render(subtitle),
		"",
		body.String(),
	)
	_, err := fmt.Fprintln(w, boxStyle.Render(out))
	return err
}

func clock(t time.Time, loc *time.Location) string {
	return valueStyle.Render(t.In(loc).Format("15:04:05 MST"))
}

func absent(text string) string {
	return absentStyle.Render(text)
}

func degrees(v float64) string {
	if math.IsNaN(v) {
		return absent("n/a")
	}
	return valueStyle.Render(fmt.Sprintf("%.3f°", v))
}

// SunTimes prints every solved event of st in loc, noting absent ones.
func SunTimes(w io.Writer, coords skyclock.Coordinates, date time.Time, loc *time.Location, st skyclock.SunTimes) error {
	var t table
	t.add("Solar noon", clock(st.SolarNoon, loc))
	t.add("Nadir", clock(st.Nadir, loc))
	for _, name := range st.Names() {
		at, ok := st.Event(name)
		if !ok {
			t.add(string(name), absent("does not occur"))
			continue
		}
		t.add(string(name), clock(at, loc))
	}
	return panel(w, "Sun times", subtitle(coords, date.Format(time.DateOnly), loc), &t)
}

// SunPosition prints the Sun's place at an instant.
func SunPosition(w io.Writer, coords skyclock.Coordinates, at time.Time, p skyclock.SunPosition) error {
	var t table
	t.add("Altitude", degrees(p.Altitude))
	t.add("Azimuth", degrees(p.Azimuth))
	t.add("Declination", degrees(p.Declination))
	t.add("Right ascension", degrees(p.RightAscension))
	t.add("Equation of time", valueStyle.Render(fmt.Sprintf("%+.2f min", p.EquationOfTime)))
	return panel(w, "Sun position", subtitle(coords, at.Format(time.RFC3339), at.Location()), &t)
}

// Moon prints the Moon's position, illumination and the day's rise and set.
func Moon(w io.Writer, coords skyclock.Coordinates, at time.Time, pos skyclock.MoonPosition, ill skyclock.MoonIllumination, mt skyclock.MoonTimes) error {
	loc := at.Location()

	var t table
	t.add("Altitude", degrees(pos.Altitude))
	t.add("Azimuth", degrees(pos.Azimuth))
	t.add("Distance", valueStyle.Render(fmt.Sprintf("%.0f km", pos.Distance)))
	t.add("Phase", valueStyle.Render(fmt.Sprintf("%s (%.1f%% lit)", ill.Name(), ill.Fraction*100)))

	switch {
	case mt.AlwaysUp:
		t.add("Rise/set", absent("above the horizon all day"))
	case mt.AlwaysDown:
		t.add("Rise/set", absent("below the horizon all day"))
	default:
		t.add("Moonrise", optionalClock(mt.Rise, mt.HasRise, loc))
		t.add("Moonset", optionalClock(mt.Set, mt.HasSet, loc))
	}
	return panel(w, "Moon", subtitle(coords, at.Format(time.RFC3339), loc), &t)
}

// Phase prints a MoonPhase.
func Phase(w io.Writer, mp skyclock.MoonPhase) error {
	trend := "Waning (illumination decreasing)"
	if mp.Waxing {
		trend = "Waxing (illumination increasing)"
	}

	var t table
	t.add("Name", valueStyle.Render(mp.Name))
	t.add("Fraction", valueStyle.Render(fmt.Sprintf("%.3f (%.1f%% illuminated)", mp.Fraction, mp.Fraction*100)))
	t.add("Elongation", degrees(mp.Elongation))
	t.add("Trend", valueStyle.Render(trend))
	return panel(w, "Moon phase", mp.Time.Format(time.RFC3339)+" ("+mp.Time.Location().String()+")", &t)
}

// Twilight prints dawn and dusk for one twilight kind, plus the golden and
// blue hour windows when they exist.
func Twilight(w io.Writer, coords skyclock.Coordinates, date time.Time, kind string, rs skyclock.RiseSet, golden, blue *skyclock.DaylightPhases) error {
	loc := date.Location()

	var t table
	t.add("Dawn", clock(rs.Rise, loc))
	t.add("Dusk", clock(rs.Set, loc))
	addPhases(&t, "Golden hour", golden, loc)
	addPhases(&t, "Blue hour", blue, loc)
	return panel(w, strings.ToUpper(kind[:1])+kind[1:]+" twilight", subtitle(coords, date.Format(time.DateOnly), loc), &t)
}

func addPhases(t *table, label string, p *skyclock.DaylightPhases, loc *time.Location) {
	if p == nil {
		t.add(label, absent("does not occur"))
		return
	}
	if p.HasMorning {
		t.add(label+" (am)", window(p.Morning, loc))
	}
	if p.HasEvening {
		t.add(label+" (pm)", window(p.Evening, loc))
	}
}

func window(w skyclock.PhaseWindow, loc *time.Location) string {
	return valueStyle.Render(fmt.Sprintf("%s - %s (%s)",
		w.Start.In(loc).Format("15:04"),
		w.End.In(loc).Format("15:04"),
		w.Duration().Round(time.Minute)))
}

func optionalClock(t time.Time, ok bool, loc *time.Location) string {
	if !ok {
		return absent("does not occur")
	}
	return clock(t, loc)
}

func subtitle(coords skyclock.Coordinates, when string, loc *time.Location) string {
	return fmt.Sprintf("%s  %s  %s", coords, when, loc)
}

// Profile prints the summary of a profiling run.
func Profile(w io.Writer, coords skyclock.Coordinates, loc *time.Location, rep *profile.Report) error {
	var t table
	t.add("Mode", valueStyle.Render(rep.Mode))
	t.add("Rows", valueStyle.Render(fmt.Sprintf("%d processed, %d skipped", rep.Processed(), rep.Skipped)))

	if rep.Rise.Count == 0 && rep.Set.Count == 0 {
		t.add("Errors", absent("no valid rows to compute stats"))
		return panel(w, "Profile", subtitle(coords, "", loc), &t)
	}

	t.add("Rise error", stats(rep.Rise, false))
	t.add("Set error", stats(rep.Set, false))
	t.add("Rise bias", stats(rep.RiseBias, true))
	t.add("Set bias", stats(rep.SetBias, true))
	return panel(w, "Profile", subtitle(coords, "", loc), &t)
}

func stats(s profile.Stats, signed bool) string {
	if s.Count == 0 {
		return absent("no data")
	}
	avg := "avg"
	if signed {
		avg = "mean"
	}
	return valueStyle.Render(fmt.Sprintf("n=%d min=%.3f max=%.3f %s=%.3f (minutes)", s.Count, s.Min, s.Max, avg, s.Mean()))
}
