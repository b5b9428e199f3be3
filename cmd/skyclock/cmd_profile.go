package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/profile"
	"github.com/thurmanmarka/skyclock/internal/render"
)

func newProfileCmd(a *app) *cobra.Command {
	var (
		refCSV   string
		outCSV   string
		bodyS    string
		twilight string
		year     int
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Compare computed rise/set times against a reference CSV",
		Long: `Reads a reference ephemeris (date,rise,set with local HH:MM times in --tz)
and reports absolute and signed errors of skyclock's times, in minutes.

  date,rise,set
  2025-01-01,07:32,17:12
  2025-01-02,07:32,17:13

With --twilight the rise and set columns are read as dawn and dusk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := skyclock.ParseBody(strings.ToLower(bodyS))
			if err != nil {
				return err
			}

			opts := profile.Options{
				Coordinates: a.observer(),
				Location:    a.location(),
				Body:        body,
				Year:        year,
			}
			if twilight != "" {
				kind, err := skyclock.ParseTwilightKind(strings.ToLower(twilight))
				if err != nil {
					return err
				}
				opts.Twilight = &kind
			}

			f, err := os.Open(refCSV)
			if err != nil {
				return fmt.Errorf("failed to open refcsv %q: %w", refCSV, err)
			}
			defer f.Close()

			rep, err := profile.Run(f, opts, a.logger)
			if err != nil {
				return err
			}
			a.logger.Info("Profile complete",
				zap.String("mode", rep.Mode),
				zap.Int("processed", rep.Processed()),
				zap.Int("skipped", rep.Skipped))

			if outCSV != "" {
				if err := writeRows(outCSV, rep); err != nil {
					return err
				}
			}

			if a.jsonOut {
				return render.JSON(cmd.OutOrStdout(), struct {
					Mode      string        `json:"mode"`
					Processed int           `json:"processed"`
					Skipped   int           `json:"skipped"`
					Rise      profile.Stats `json:"rise"`
					Set       profile.Stats `json:"set"`
					RiseBias  profile.Stats `json:"riseBias"`
					SetBias   profile.Stats `json:"setBias"`
				}{rep.Mode, rep.Processed(), rep.Skipped, rep.Rise, rep.Set, rep.RiseBias, rep.SetBias})
			}
			return render.Profile(cmd.OutOrStdout(), opts.Coordinates, opts.Location, rep)
		},
	}

	f := cmd.Flags()
	f.StringVar(&refCSV, "refcsv", "", "path to reference ephemeris CSV file (date,rise,set)")
	f.StringVar(&outCSV, "outcsv", "", "optional path to write per-row error CSV")
	f.StringVar(&bodyS, "body", "sun", "celestial body: sun or moon")
	f.StringVar(&twilight, "twilight", "", "twilight kind: civil, nautical, astronomical (sun only)")
	f.IntVar(&year, "year", 0, "year of the ephemeris data (optional, used for sanity checks)")
	_ = cmd.MarkFlagRequired("refcsv")
	return cmd
}

func writeRows(path string, rep *profile.Report) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create outcsv %q: %w", path, err)
	}
	if err := rep.WriteCSV(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
