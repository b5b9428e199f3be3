// Command skyclock prints sun and moon positions, rise and set times,
// twilight and moon phases, profiles them against reference tables and
// serves them over HTTP.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/config"
	"github.com/thurmanmarka/skyclock/internal/logging"
)

// app carries state shared by every subcommand once the root command's
// PersistentPreRunE has run.
type app struct {
	// Global flags
	configPath string
	verbose    bool
	jsonOut    bool

	// Observer flags, applied over the configured observer when set.
	lat       float64
	lon       float64
	elevation float64
	tzName    string

	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "skyclock",
		Short: "Sun and moon ephemeris: positions, rise/set, twilight and phases",
		Long: `skyclock computes where the Sun and Moon are and when they rise, set and
cross the twilight altitudes for any place and date.

The observer comes from the config file (--config, SKYCLOCK_* variables)
and can be overridden per call with --lat, --lon, --elevation and --tz.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "skyclock.yaml", "path to the YAML config file (optional)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&a.jsonOut, "json", false, "output result as JSON")
	pf.Float64Var(&a.lat, "lat", 0, "latitude in degrees (north positive)")
	pf.Float64Var(&a.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	pf.Float64Var(&a.elevation, "elevation", 0, "observer height in meters above the surrounding terrain")
	pf.StringVar(&a.tzName, "tz", "", "IANA time zone name (e.g. America/Phoenix)")

	root.AddCommand(
		newTimesCmd(a),
		newRiseSetCmd(a),
		newPositionCmd(a),
		newMoonCmd(a),
		newPhaseCmd(a),
		newTwilightCmd(a),
		newProfileCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("lat") {
		cfg.Observer.Lat = a.lat
	}
	if flags.Changed("lon") {
		cfg.Observer.Lon = a.lon
	}
	if flags.Changed("elevation") {
		cfg.Observer.Elevation = a.elevation
	}
	if flags.Changed("tz") {
		cfg.Observer.Timezone = a.tzName
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.FromConfig(cfg, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("Configuration loaded",
		zap.String("config", a.configPath),
		zap.Stringer("observer", cfg.Observer.Coordinates),
		zap.String("tz", cfg.Observer.Timezone))

	if !flags.Changed("lat") && !flags.Changed("lon") && cfg.Observer.Lat == 0 && cfg.Observer.Lon == 0 {
		a.logger.Warn("lat=0 lon=0 (Gulf of Guinea). Use --lat and --lon to set a real location.")
	}
	return nil
}

func (a *app) observer() skyclock.Coordinates {
	return a.cfg.Observer.Coordinates
}

func (a *app) location() *time.Location {
	loc, err := a.cfg.Location()
	if err != nil {
		// Validate already resolved it once.
		return time.UTC
	}
	return loc
}

// parseDate reads YYYY-MM-DD in the observer's zone; empty means today.
func (a *app) parseDate(s string) (time.Time, error) {
	loc := a.location()
	if s == "" {
		now := a.now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	date, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", s, err)
	}
	return date, nil
}

// parseInstant accepts RFC 3339 or a local "YYYY-MM-DDTHH:MM", "YYYY-MM-DD
// HH:MM" or bare date; empty means now.
func (a *app) parseInstant(s string) (time.Time, error) {
	loc := a.location()
	if s == "" {
		return a.now().In(loc), nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		time.DateOnly,
	}
	var parseErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("could not parse --time %q: %w", s, parseErr)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
