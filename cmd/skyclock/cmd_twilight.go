package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/render"
)

func newTwilightCmd(a *app) *cobra.Command {
	var (
		dateS string
		kindS string
	)

	cmd := &cobra.Command{
		Use:   "twilight",
		Short: "Dawn and dusk of one twilight kind, plus golden and blue hour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.parseDate(dateS)
			if err != nil {
				return err
			}
			kindS = strings.ToLower(kindS)
			kind, err := skyclock.ParseTwilightKind(kindS)
			if err != nil {
				return err
			}

			coords := a.observer()
			rs, err := skyclock.TwilightFor(coords, date, kind)
			if err != nil {
				return fmt.Errorf("no %s twilight on %s: %w", kindS, date.Format(time.DateOnly), err)
			}

			golden := a.phases("golden hour", skyclock.GoldenHourFor, coords, date)
			blue := a.phases("blue hour", skyclock.BlueHourFor, coords, date)

			if a.jsonOut {
				return render.JSON(cmd.OutOrStdout(), struct {
					Date     string                   `json:"date"`
					Timezone string                   `json:"timezone"`
					Kind     string                   `json:"kind"`
					Dawn     time.Time                `json:"dawn"`
					Dusk     time.Time                `json:"dusk"`
					Golden   *skyclock.DaylightPhases `json:"goldenHour"`
					Blue     *skyclock.DaylightPhases `json:"blueHour"`
				}{date.Format(time.DateOnly), date.Location().String(), kindS, rs.Rise, rs.Set, golden, blue})
			}
			return render.Twilight(cmd.OutOrStdout(), coords, date, kindS, rs, golden, blue)
		},
	}

	cmd.Flags().StringVar(&dateS, "date", "", "date in YYYY-MM-DD (defaults to today in --tz)")
	cmd.Flags().StringVar(&kindS, "kind", "civil", "twilight kind: civil, nautical, astronomical")
	return cmd
}

type phaseFunc func(skyclock.Coordinates, time.Time) (skyclock.DaylightPhases, error)

// phases returns nil when the window does not occur that day.
func (a *app) phases(name string, fn phaseFunc, coords skyclock.Coordinates, date time.Time) *skyclock.DaylightPhases {
	p, err := fn(coords, date)
	if err != nil {
		if !errors.Is(err, skyclock.ErrNoRiseNoSet) {
			a.logger.Warn("Failed to compute window", zap.String("window", name), zap.Error(err))
		}
		return nil
	}
	return &p
}
