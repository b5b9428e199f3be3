package profile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

var rowHeader = []string{
	"date",
	"body",
	"mode",
	"rise_err",
	"set_err",
	"rise_signed",
	"set_signed",
	"phase_fraction",
	"phase_name",
	"phase_elongation",
	"phase_waxing",
}

// WriteCSV writes one line per compared row, with a header.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rowHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	body := strings.Fields(r.Mode)[0]
	for _, row := range r.Rows {
		var fraction, name, elongation, waxing string
		if row.Phase != nil {
			fraction = fmt.Sprintf("%.6f", row.Phase.Fraction)
			name = row.Phase.Name
			elongation = fmt.Sprintf("%.3f", row.Phase.Elongation)
			waxing = "waning"
			if row.Phase.Waxing {
				waxing = "waxing"
			}
		}

		rec := []string{
			row.Date,
			body,
			r.Mode,
			fmt.Sprintf("%.6f", row.RiseErr),
			fmt.Sprintf("%.6f", row.SetErr),
			fmt.Sprintf("%.6f", row.RiseSigned),
			fmt.Sprintf("%.6f", row.SetSigned),
			fraction,
			name,
			elongation,
			waxing,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.Date, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
