package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/render"
)

func newTimesCmd(a *app) *cobra.Command {
	var dateS string

	cmd := &cobra.Command{
		Use:   "times",
		Short: "Solar noon, sunrise, sunset, twilight and golden hour for a day",
		Long: `Prints every solar event of the configured threshold table for one
calendar day. Events that do not happen that day (e.g. night during a
high-latitude summer) are shown as absent, or null with --json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.parseDate(dateS)
			if err != nil {
				return err
			}
			calc, err := a.cfg.Calculator()
			if err != nil {
				return err
			}

			coords := a.observer()
			st := calc.Times(date, coords)
			a.logger.Debug("Solved sun times",
				zap.Time("date", date),
				zap.Int("events", len(st.Names())))

			if a.jsonOut {
				return render.JSON(cmd.OutOrStdout(), struct {
					Date        string               `json:"date"`
					Timezone    string               `json:"timezone"`
					Coordinates skyclock.Coordinates `json:"coordinates"`
					Times       skyclock.SunTimes    `json:"times"`
				}{date.Format(time.DateOnly), date.Location().String(), coords, st})
			}
			return render.SunTimes(cmd.OutOrStdout(), coords, date, date.Location(), st)
		},
	}

	cmd.Flags().StringVar(&dateS, "date", "", "date in YYYY-MM-DD (defaults to today in --tz)")
	return cmd
}

// riseSetOutput is the JSON form of the riseset command.
type riseSetOutput struct {
	Body      string     `json:"body"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Date      string     `json:"date"` // YYYY-MM-DD
	Rise      *time.Time `json:"rise,omitempty"`
	Set       *time.Time `json:"set,omitempty"`
	Timezone  string     `json:"timezone"`
}

func newRiseSetCmd(a *app) *cobra.Command {
	var (
		dateS string
		bodyS string
		event string
	)

	cmd := &cobra.Command{
		Use:   "riseset",
		Short: "Rise and set of the Sun or Moon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.parseDate(dateS)
			if err != nil {
				return err
			}
			body, err := skyclock.ParseBody(strings.ToLower(bodyS))
			if err != nil {
				return err
			}

			event = strings.ToLower(event)
			switch event {
			case "rise", "set", "both":
			default:
				return fmt.Errorf("unknown --event %q (use rise, set or both)", event)
			}

			coords := a.observer()
			rs, err := skyclock.RiseSetFor(body, coords, date)
			if err != nil {
				return fmt.Errorf("error computing rise/set: %w", err)
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				o := riseSetOutput{
					Body:      body.String(),
					Latitude:  coords.Lat,
					Longitude: coords.Lon,
					Date:      date.Format(time.DateOnly),
					Timezone:  date.Location().String(),
				}
				if event != "set" && !rs.Rise.IsZero() {
					o.Rise = &rs.Rise
				}
				if event != "rise" && !rs.Set.IsZero() {
					o.Set = &rs.Set
				}
				return render.JSON(out, o)
			}

			fmt.Fprintf(out, "%s rise/set for %s\n", titleCase(body.String()), coords)
			fmt.Fprintf(out, "Date: %s (%s)\n\n", date.Format(time.DateOnly), date.Location())
			if event != "set" {
				fmt.Fprintf(out, "Rise: %s\n", formatOptional(rs.Rise))
			}
			if event != "rise" {
				fmt.Fprintf(out, "Set:  %s\n", formatOptional(rs.Set))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateS, "date", "", "date in YYYY-MM-DD (defaults to today in --tz)")
	cmd.Flags().StringVar(&bodyS, "body", "sun", "celestial body: sun or moon")
	cmd.Flags().StringVar(&event, "event", "both", "event: rise, set, or both")
	return cmd
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatOptional(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.Format(time.RFC3339)
}
