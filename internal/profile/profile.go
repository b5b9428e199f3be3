// Package profile measures skyclock's rise and set times against a reference
// ephemeris, such as a table exported from an almanac service.
//
// The reference is CSV with one row per day:
//
//	date,rise,set
//	2025-01-01,07:32,17:12
//	2025-01-02,07:32,17:13
//
// date is YYYY-MM-DD and rise/set are local clock times (HH:MM or HH:MM:SS)
// in the profile's time zone. A leading header row is skipped. An empty
// rise or set cell means the reference has no such event that day.
package profile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thurmanmarka/skyclock"
)

// Options selects what to compare.
type Options struct {
	Coordinates skyclock.Coordinates
	Location    *time.Location
	Body        skyclock.Body

	// Twilight, when set, compares the reference against dawn and dusk of
	// that kind instead of the body's rise and set. Sun only.
	Twilight *skyclock.TwilightKind

	// Year, when non-zero, logs a warning for rows outside it.
	Year int
}

// Mode describes what is being compared, e.g. "SUN (CIVIL TWILIGHT)".
func (o Options) Mode() string {
	mode := strings.ToUpper(o.Body.String())
	if o.Twilight == nil {
		return mode
	}
	switch *o.Twilight {
	case skyclock.TwilightCivil:
		return mode + " (CIVIL TWILIGHT)"
	case skyclock.TwilightNautical:
		return mode + " (NAUTICAL TWILIGHT)"
	case skyclock.TwilightAstronomical:
		return mode + " (ASTRONOMICAL TWILIGHT)"
	}
	return mode + " (UNKNOWN TWILIGHT)"
}

func (o Options) validate() error {
	if o.Location == nil {
		return errors.New("profile: nil Location")
	}
	if err := o.Coordinates.Validate(); err != nil {
		return err
	}
	if o.Twilight != nil && o.Body != skyclock.Sun {
		return fmt.Errorf("twilight mode only supported for the sun, got %v", o.Body)
	}
	return nil
}

// Row is the comparison for one reference day. Error fields are minutes and
// NaN where either side lacks the event.
type Row struct {
	Date string

	GotRise, RefRise time.Time
	GotSet, RefSet   time.Time

	RiseErr, SetErr       float64
	RiseSigned, SetSigned float64

	// Phase is filled for moon runs, evaluated at local noon.
	Phase *skyclock.MoonPhase
}

// Report summarizes a run.
type Report struct {
	Mode     string
	Rows     []Row
	Total    int
	Skipped  int
	Rise     Stats
	Set      Stats
	RiseBias Stats // signed, ours minus reference
	SetBias  Stats
}

// Processed is the number of rows that produced a comparison.
func (r *Report) Processed() int { return r.Total - r.Skipped }

// Run reads the reference CSV from ref and compares every row. Malformed rows
// are logged and skipped; only an unreadable or empty input is an error.
func Run(ref io.Reader, opts Options, log *zap.Logger) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	r := csv.NewReader(ref)
	r.FieldsPerRecord = -1 // allow variable, we validate

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty CSV file")
	}

	// If first row looks like a header, skip it.
	start := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		start = 1
	}

	rep := &Report{Mode: opts.Mode()}
	for i := start; i < len(records); i++ {
		rep.Total++
		row, err := compareRow(records[i], opts, log.With(zap.Int("row", i+1)))
		if err != nil {
			log.Warn("Skipping row", zap.Int("row", i+1), zap.Error(err))
			rep.Skipped++
			continue
		}

		rep.Rise.Add(row.RiseErr)
		rep.Set.Add(row.SetErr)
		rep.RiseBias.Add(row.RiseSigned)
		rep.SetBias.Add(row.SetSigned)
		rep.Rows = append(rep.Rows, row)

		log.Debug("Compared day",
			zap.String("date", row.Date),
			zap.Float64("rise_err_min", row.RiseErr),
			zap.Float64("set_err_min", row.SetErr))
	}
	return rep, nil
}

func compareRow(rec []string, opts Options, log *zap.Logger) (Row, error) {
	if len(rec) < 3 {
		return Row{}, fmt.Errorf("expected at least 3 columns (date,rise,set), got %d", len(rec))
	}
	dateStr := strings.TrimSpace(rec[0])
	date, err := time.ParseInLocation(time.DateOnly, dateStr, opts.Location)
	if err != nil {
		return Row{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	if opts.Year != 0 && date.Year() != opts.Year {
		log.Warn("Date outside profile year", zap.String("date", dateStr), zap.Int("year", opts.Year))
	}

	refRise, err := parseLocalTime(date, strings.TrimSpace(rec[1]))
	if err != nil {
		return Row{}, fmt.Errorf("invalid rise time %q: %w", rec[1], err)
	}
	refSet, err := parseLocalTime(date, strings.TrimSpace(rec[2]))
	if err != nil {
		return Row{}, fmt.Errorf("invalid set time %q: %w", rec[2], err)
	}

	var rs skyclock.RiseSet
	if opts.Twilight != nil {
		// In twilight mode the reference "rise" is dawn and "set" is dusk.
		rs, err = skyclock.TwilightFor(opts.Coordinates, date, *opts.Twilight)
	} else {
		rs, err = skyclock.RiseSetFor(opts.Body, opts.Coordinates, date)
	}
	if err != nil && !(errors.Is(err, skyclock.ErrNoRiseNoSet) && refRise.IsZero() && refSet.IsZero()) {
		return Row{}, err
	}

	row := Row{
		Date:    dateStr,
		GotRise: inOrZero(rs.Rise, opts.Location),
		GotSet:  inOrZero(rs.Set, opts.Location),
		RefRise: refRise,
		RefSet:  refSet,
	}
	row.RiseErr = diffMinutes(row.GotRise, refRise)
	row.SetErr = diffMinutes(row.GotSet, refSet)
	row.RiseSigned = diffMinutesSigned(row.GotRise, refRise)
	row.SetSigned = diffMinutesSigned(row.GotSet, refSet)

	if opts.Body == skyclock.Moon {
		noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, opts.Location)
		mp, err := skyclock.MoonPhaseAt(noon)
		if err != nil {
			log.Warn("Failed to compute moon phase", zap.Error(err))
		} else {
			row.Phase = &mp
		}
	}
	return row, nil
}

func inOrZero(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(loc)
}

// parseLocalTime combines date with an HH:MM or HH:MM:SS clock reading. An
// empty or "-" cell yields the zero time.
func parseLocalTime(date time.Time, hhmm string) (time.Time, error) {
	if hhmm == "" || hhmm == "-" {
		return time.Time{}, nil
	}
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = time.TimeOnly
	}

	parsed, err := time.Parse(layout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, date.Location()), nil
}
