package httpapi

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/thurmanmarka/skyclock"
)

// errBadRequest marks query errors that map to 400.
var errBadRequest = errors.New("bad request")

// query wraps the URL parameters shared by every endpoint.
type query struct {
	values url.Values
	loc    *time.Location
	now    time.Time
}

func (q query) float(name string, required bool) (float64, error) {
	raw := q.values.Get(name)
	if raw == "" {
		if required {
			return 0, fmt.Errorf("missing %q: %w", name, errBadRequest)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", name, errBadRequest)
	}
	return v, nil
}

// coordinates reads lat, lon and the optional elevation, validated.
func (q query) coordinates() (skyclock.Coordinates, error) {
	var (
		c   skyclock.Coordinates
		err error
	)
	if c.Lat, err = q.float("lat", true); err != nil {
		return c, err
	}
	if c.Lon, err = q.float("lon", true); err != nil {
		return c, err
	}
	if c.Elevation, err = q.float("elevation", false); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// location returns tz if given, otherwise the server default.
func (q query) location() (*time.Location, error) {
	name := q.values.Get("tz")
	if name == "" {
		return q.loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown tz %q: %w", name, errBadRequest)
	}
	return loc, nil
}

// instant reads an RFC 3339 "time", defaulting to now.
func (q query) instant() (time.Time, error) {
	raw := q.values.Get("time")
	if raw == "" {
		return q.now, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("time must be RFC 3339: %w", errBadRequest)
	}
	return t, nil
}

// date reads a YYYY-MM-DD "date" in the requested zone, defaulting to today.
func (q query) date() (time.Time, error) {
	loc, err := q.location()
	if err != nil {
		return time.Time{}, err
	}
	raw := q.values.Get("date")
	if raw == "" {
		y, m, d := q.now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", errBadRequest)
	}
	return t, nil
}
