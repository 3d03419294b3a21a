package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/common"
	"github.com/joseph-ayodele/mpstats/internal/ingest"
	"github.com/joseph-ayodele/mpstats/internal/stats"
)

// Report is everything one run produced. Summary is nil when no sample was
// extracted.
type Report struct {
	RunID   string
	Request Request
	Metric  constants.Metric
	Files   []ingest.FileResult
	Stats   ingest.DirStats
	Samples []stats.Sample
	Summary *stats.Summary

	// LimitsDefaulted is true for each limit taken from the observed data.
	LimitsDefaulted struct {
		USL bool
		LSL bool
	}
	Duration time.Duration
}

// NoResults reports whether the run extracted nothing.
func (r *Report) NoResults() bool {
	return r == nil || len(r.Samples) == 0
}

// Skipped returns the candidates that produced no sample.
func (r *Report) Skipped() []ingest.FileResult {
	var out []ingest.FileResult
	for _, f := range r.Files {
		if !f.OK {
			out = append(out, f)
		}
	}
	return out
}

// NoResultsMessage is the user-facing text for an empty run.
func NoResultsMessage(m constants.Metric) string {
	return fmt.Sprintf("No valid %s values found in PDFs.", m.Label())
}

type Analyzer struct {
	collector ingest.SampleCollector
	logger    *slog.Logger
}

func NewAnalyzer(collector ingest.SampleCollector, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{collector: collector, logger: logger}
}

// Analyze validates req, collects the samples and summarizes them.
//
// An empty collection returns the partial report together with
// common.ErrNoSamples so callers can still show the skipped files.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	log := a.logger.With("run_id", runID, "metric", req.Metric)

	col, err := a.collector.Collect(ctx, req.Folder, req.Filter, req.Metric)
	if err != nil {
		log.Error("analysis.collect.failed", "folder", req.Folder, "error", err)
		return nil, err
	}

	rep := &Report{
		RunID:   runID,
		Request: req,
		Metric:  req.Metric,
		Files:   col.Files,
		Stats:   col.Stats,
		Samples: col.Samples,
	}

	if col.NoResults() {
		rep.Duration = time.Since(start)
		log.Warn("analysis.no_results", "folder", req.Folder, "matched", col.Stats.Matched)
		return rep, common.ErrNoSamples
	}

	limits, err := a.resolveLimits(req, col.Samples, rep)
	if err != nil {
		return rep, err
	}
	if limits.Inverted() {
		log.Warn("analysis.limits.inverted", "usl", limits.USL, "lsl", limits.LSL)
	}

	sum, err := stats.Summarize(col.Samples, limits)
	if err != nil {
		return rep, common.WrapError(err, "summarize")
	}
	rep.Summary = &sum
	rep.Duration = time.Since(start)

	log.Info("analysis.ok",
		"n", sum.N,
		"mean", sum.Mean,
		"std_dev", sum.StdDev.String(),
		"cp", sum.Cp.String(),
		"cpk", sum.Cpk.String(),
		"duration_ms", rep.Duration.Milliseconds(),
	)
	return rep, nil
}

// resolveLimits takes each override when given and the observed extreme
// otherwise.
func (a *Analyzer) resolveLimits(req Request, samples []stats.Sample, rep *Report) (stats.SpecLimits, error) {
	def, err := stats.DefaultLimits(samples)
	if err != nil {
		if errors.Is(err, common.ErrNoSamples) {
			return stats.SpecLimits{}, err
		}
		return stats.SpecLimits{}, common.WrapError(err, "default limits")
	}

	limits := def
	if req.USL != nil {
		limits.USL = *req.USL
	} else {
		rep.LimitsDefaulted.USL = true
	}
	if req.LSL != nil {
		limits.LSL = *req.LSL
	} else {
		rep.LimitsDefaulted.LSL = true
	}
	return limits, nil
}
