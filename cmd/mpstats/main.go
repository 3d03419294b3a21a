package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/analysis"
	"github.com/joseph-ayodele/mpstats/internal/common"
	"github.com/joseph-ayodele/mpstats/internal/export"
	"github.com/joseph-ayodele/mpstats/internal/extract"
	"github.com/joseph-ayodele/mpstats/internal/ingest"
	"github.com/joseph-ayodele/mpstats/internal/render"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// optionalFloat is a flag that remembers whether it was set.
type optionalFloat struct {
	v *float64
}

func (o *optionalFloat) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.FormatFloat(*o.v, 'g', -1, 64)
}

func (o *optionalFloat) Set(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	o.v = &f
	return nil
}

type options struct {
	req       analysis.Request
	xlsxPath  string
	chartPath string
	skipped   bool
}

// app runs one analysis and prints it. It holds no per-run state so the
// watch loop can call it repeatedly.
type app struct {
	analyzer *analysis.Analyzer
	exporter *export.Service
	stdout   io.Writer
	logger   *slog.Logger
}

// run returns the process exit code: 1 for an unusable folder or request,
// 0 otherwise (including a run that found no values).
func (a *app) run(ctx context.Context, opts options) int {
	rep, err := a.analyzer.Analyze(ctx, opts.req)
	switch {
	case errors.Is(err, common.ErrNoSamples):
		fmt.Fprintln(a.stdout, analysis.NoResultsMessage(opts.req.Metric))
		if opts.skipped {
			_ = render.WriteSkipped(a.stdout, rep)
		}
		return 0
	case err != nil:
		printError("Error: %v\n", err)
		return 1
	}

	if err := render.WriteReport(a.stdout, rep, opts.skipped); err != nil {
		printError("Error: writing report: %v\n", err)
		return 1
	}

	if opts.xlsxPath != "" {
		b, err := a.exporter.ExportXLSX(ctx, rep)
		if err == nil {
			err = os.WriteFile(opts.xlsxPath, b, 0o644)
		}
		if err != nil {
			printError("Error: writing %s: %v\n", opts.xlsxPath, err)
			return 1
		}
		fmt.Fprintf(a.stdout, "- Workbook: %s\n", opts.xlsxPath)
	}

	if opts.chartPath != "" {
		if err := writeChart(opts.chartPath, rep); err != nil {
			printError("Error: writing %s: %v\n", opts.chartPath, err)
			return 1
		}
		fmt.Fprintf(a.stdout, "- Chart: %s\n", opts.chartPath)
	}
	return 0
}

func writeChart(path string, rep *analysis.Report) (err error) {
	format, err := render.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.RenderChart(f, format, rep)
}

// watch re-runs the analysis every time the folder changes, one run at a
// time, until ctx is cancelled.
func (a *app) watch(ctx context.Context, opts options, debounce time.Duration) int {
	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Folder:   opts.req.Folder,
		Debounce: debounce,
		Logger:   a.logger,
	})
	if err != nil {
		printError("Error: %v\n", err)
		return 1
	}

	a.run(ctx, opts)
	a.logger.Info("watching folder", "folder", opts.req.Folder, "debounce", debounce)
	for {
		select {
		case <-ctx.Done():
			return 0
		case _, ok := <-events:
			if !ok {
				return 0
			}
			fmt.Fprintf(a.stdout, "\n--- %s ---\n", time.Now().Format(time.DateTime))
			a.run(ctx, opts)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			a.logger.Warn("watch error", "error", err)
		}
	}
}

func main() {
	// Parse CLI flags
	var (
		dir       = flag.String("dir", "", "folder containing MP- PDF reports (required)")
		filter    = flag.String("filter", "", "only read files whose name contains this text (case-insensitive)")
		metricStr = flag.String("metric", string(constants.XMaximum), "metric to extract: "+strings.Join(constants.AsStringSlice(), " | "))
		xlsxPath  = flag.String("xlsx", "", "also write an XLSX workbook to this path")
		chartPath = flag.String("chart", "", "also write a line chart to this path (.png or .svg)")
		skipped   = flag.Bool("skipped", false, "list files that produced no value")
		watch     = flag.Bool("watch", false, "re-run whenever the folder changes")
		usl, lsl  optionalFloat
	)
	flag.Var(&usl, "usl", "upper specification limit (default: observed max)")
	flag.Var(&lsl, "lsl", "lower specification limit (default: observed min)")
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	metric, ok := constants.ParseMetric(*metricStr)
	if !ok {
		printError("Error: invalid --metric %q, use one of %s\n", *metricStr, strings.Join(constants.AsStringSlice(), ", "))
		os.Exit(1)
	}
	if *chartPath != "" {
		if _, err := render.FormatFromPath(*chartPath); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so the tables on stdout stay clean.
	logger := common.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	text, err := extract.New(cfg.Text, logger)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	a := &app{
		analyzer: analysis.NewAnalyzer(ingest.NewCollector(text, logger, ingest.WithFileTimeout(cfg.Text.Timeout)), logger),
		exporter: export.NewService(logger),
		stdout:   os.Stdout,
		logger:   logger,
	}
	opts := options{
		req: analysis.Request{
			Folder: *dir,
			Filter: *filter,
			Metric: metric,
			USL:    usl.v,
			LSL:    lsl.v,
		},
		xlsxPath:  *xlsxPath,
		chartPath: *chartPath,
		skipped:   *skipped,
	}

	var code int
	if *watch {
		code = a.watch(ctx, opts, cfg.Watch.Debounce)
	} else {
		code = a.run(ctx, opts)
	}
	stop()
	os.Exit(code)
}
