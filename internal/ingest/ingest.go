package ingest

import (
	"context"
	"time"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/stats"
)

// FileResult is the per-file collection outcome.
type FileResult struct {
	Name     string
	Path     string
	Value    float64
	OK       bool
	Skip     constants.SkipReason
	Err      string
	Duration time.Duration
}

// DirStats summarizes a folder collection.
type DirStats struct {
	Scanned   uint32 // directory entries seen
	Matched   uint32 // candidates after name filtering
	Succeeded uint32
	NoMatch   uint32
	Failed    uint32
}

// Skipped is the number of candidates that produced no sample.
func (s DirStats) Skipped() uint32 { return s.NoMatch + s.Failed }

// CollectResult is the ordered outcome of one collection run.
type CollectResult struct {
	Samples []stats.Sample
	Files   []FileResult
	Stats   DirStats
}

// NoResults is the explicit "nothing extracted" signal. It is not an error.
func (r *CollectResult) NoResults() bool {
	return r == nil || len(r.Samples) == 0
}

// SkippedFiles returns the candidates that did not yield a sample, in order.
func (r *CollectResult) SkippedFiles() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if !f.OK {
			out = append(out, f)
		}
	}
	return out
}

// SampleCollector is the behavior the analysis layer depends on.
type SampleCollector interface {
	Collect(ctx context.Context, folder, filter string, metric constants.Metric) (*CollectResult, error)
}
