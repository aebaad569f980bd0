package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// FormatNumber prints whole numbers without decimals and everything else
// with two.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteText renders the report as aligned plain text.
func WriteText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range r.entries {
		var err error
		switch e.Kind {
		case KindHeader:
			_, err = fmt.Fprintf(tw, "%s\n%s\n", e.Label, strings.Repeat("=", len(e.Label)))
		case KindSubHeader:
			_, err = fmt.Fprintf(tw, "%s\n", e.Label)
		case KindLine:
			_, err = fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Label, e.Formula, FormatNumber(e.Total))
		case KindInfo:
			_, err = fmt.Fprintf(tw, "  %s\t%s\t\n", e.Label, e.Formula)
		case KindBlank:
			_, err = fmt.Fprintln(tw)
		}
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return tw.Flush()
}

// WriteTSV renders one row per entry: kind, label, formula, total.
func WriteTSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, e := range r.entries {
		var row []string
		switch e.Kind {
		case KindHeader:
			row = []string{"header", e.Label, "", ""}
		case KindSubHeader:
			row = []string{"subheader", e.Label, "", ""}
		case KindLine:
			row = []string{"line", e.Label, e.Formula, FormatNumber(e.Total)}
		case KindInfo:
			row = []string{"info", e.Label, e.Formula, ""}
		case KindBlank:
			row = []string{"blank", "", "", ""}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write tsv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
