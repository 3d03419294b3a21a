// Package render prints analysis reports as terminal tables and draws the
// sample chart.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/analysis"
	"github.com/joseph-ayodele/mpstats/internal/stats"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteFilesTable prints one row per extracted sample followed by the
// processed-file count.
func WriteFilesTable(w io.Writer, rep *analysis.Report) error {
	t := newTable(w, "#", "File", rep.Metric.Label())
	t.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for i, s := range rep.Samples {
		t.Append([]string{strconv.Itoa(i + 1), s.SourceName, formatFloat(s.Value)})
	}
	t.Render()
	_, err := fmt.Fprintf(w, "Files processed: %d\n", len(rep.Samples))
	return err
}

// WriteSummaryTable prints the statistics transposed: one row per statistic
// and a single value column headed by the metric label.
func WriteSummaryTable(w io.Writer, sum stats.Summary, metric constants.Metric) error {
	t := newTable(w, "Statistic", metric.Label())
	t.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, row := range sum.Rows() {
		t.Append([]string{row.Name, row.Value.String()})
	}
	t.Render()
	return nil
}

// WriteLimits prints the limits the capability indices were computed with.
func WriteLimits(w io.Writer, rep *analysis.Report) error {
	if rep.Summary == nil {
		return nil
	}
	unit := rep.Metric.Unit()
	l := rep.Summary.Limits
	_, err := fmt.Fprintf(w, "USL: %s %s%s\nLSL: %s %s%s\n",
		formatFloat(l.USL), unit, defaultedNote(rep.LimitsDefaulted.USL, "max"),
		formatFloat(l.LSL), unit, defaultedNote(rep.LimitsDefaulted.LSL, "min"))
	if err != nil {
		return err
	}
	if rep.Summary.LimitsInverted {
		_, err = fmt.Fprintln(w, "warning: USL is below LSL; capability indices are negative")
	}
	return err
}

func defaultedNote(defaulted bool, from string) string {
	if !defaulted {
		return ""
	}
	return " (observed " + from + ")"
}

// WriteSkipped lists the candidates that produced no sample. Nothing is
// printed when every file succeeded.
func WriteSkipped(w io.Writer, rep *analysis.Report) error {
	skipped := rep.Skipped()
	if len(skipped) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Skipped files: %d\n", len(skipped)); err != nil {
		return err
	}
	t := newTable(w, "File", "Reason", "Error")
	for _, f := range skipped {
		t.Append([]string{f.Name, string(f.Skip), f.Err})
	}
	t.Render()
	return nil
}

// WriteReport prints the full console view of a successful run.
func WriteReport(w io.Writer, rep *analysis.Report, withSkipped bool) error {
	if err := WriteFilesTable(w, rep); err != nil {
		return err
	}
	if rep.Summary != nil {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := WriteSummaryTable(w, *rep.Summary, rep.Metric); err != nil {
			return err
		}
		if err := WriteLimits(w, rep); err != nil {
			return err
		}
	}
	if withSkipped {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return WriteSkipped(w, rep)
	}
	return nil
}
