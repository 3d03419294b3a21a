package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/mpstats/internal/analysis"
	"github.com/joseph-ayodele/mpstats/internal/common"
	"github.com/joseph-ayodele/mpstats/internal/stats"
)

const (
	SamplesSheet = "Samples"
	SummarySheet = "Summary"
)

// Service renders analysis reports as XLSX workbooks.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportXLSX returns a workbook (as bytes) with the samples, the statistics
// and a line chart of the samples.
func (s *Service) ExportXLSX(ctx context.Context, rep *analysis.Report) ([]byte, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rep.NoResults() {
		return nil, common.ErrNoSamples
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SamplesSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(SamplesSheet)
	f.SetActiveSheet(activeIndex)

	label := rep.Metric.AxisTitle()
	if err := writeRow(f, SamplesSheet, 1, "Index", "File", label); err != nil {
		return nil, err
	}
	for i, smp := range rep.Samples {
		if err := writeRow(f, SamplesSheet, i+2, i+1, smp.SourceName, smp.Value); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(SamplesSheet, "A", "A", 8)
	_ = f.SetColWidth(SamplesSheet, "B", "B", 40)
	_ = f.SetColWidth(SamplesSheet, "C", "C", 18)

	if err := writeSummary(f, rep); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 22)
	_ = f.SetColWidth(SummarySheet, "B", "B", 18)

	if err := addChart(f, rep); err != nil {
		return nil, fmt.Errorf("xlsx chart: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", rep.RunID,
		"rows", len(rep.Samples),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	return nil
}

// cellValue keeps computed statistics numeric and writes "n/a" otherwise.
func cellValue(v stats.Value) any {
	if x, ok := v.Get(); ok {
		return x
	}
	return stats.NotComputable
}

func writeSummary(f *excelize.File, rep *analysis.Report) error {
	if err := writeRow(f, SummarySheet, 1, "Statistic", rep.Metric.Label()); err != nil {
		return err
	}
	row := 2
	if rep.Summary != nil {
		for _, r := range rep.Summary.Rows() {
			if err := writeRow(f, SummarySheet, row, r.Name, cellValue(r.Value)); err != nil {
				return err
			}
			row++
		}
		l := rep.Summary.Limits
		if err := writeRow(f, SummarySheet, row, "USL", l.USL); err != nil {
			return err
		}
		if err := writeRow(f, SummarySheet, row+1, "LSL", l.LSL); err != nil {
			return err
		}
		row += 2
	}
	return writeRow(f, SummarySheet, row, "Files processed", len(rep.Samples))
}

func addChart(f *excelize.File, rep *analysis.Report) error {
	last := len(rep.Samples) + 1
	return f.AddChart(SamplesSheet, "E2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$C$1", SamplesSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", SamplesSheet, last),
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", SamplesSheet, last),
			},
		},
		Title:  []excelize.RichTextRun{{Text: rep.Metric.Label()}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Sample Index"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: rep.Metric.AxisTitle()}}},
	})
}
