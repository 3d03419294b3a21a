package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/common"
	"github.com/joseph-ayodele/mpstats/internal/extract"
	"github.com/joseph-ayodele/mpstats/internal/pipeline/parsefields"
	"github.com/joseph-ayodele/mpstats/internal/stats"
)

// Collector reads report PDFs from the local filesystem, one at a time.
type Collector struct {
	text        extract.TextExtractor
	logger      *slog.Logger
	fileTimeout time.Duration
}

type Option func(*Collector)

// WithFileTimeout bounds the extraction of a single file. A file that runs
// over is skipped as EXTRACT_FAILED and the batch continues.
func WithFileTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.fileTimeout = d
		}
	}
}

func NewCollector(text extract.TextExtractor, logger *slog.Logger, opts ...Option) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Collector{text: text, logger: logger}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Collect lists the candidates in folder, extracts the metric from each and
// returns the samples in filename order. Only an unreadable folder (or a
// cancelled context) is an error; every per-file problem is recorded in
// Files and the batch continues.
func (c *Collector) Collect(ctx context.Context, folder, filter string, metric constants.Metric) (*CollectResult, error) {
	names, scanned, err := ListCandidates(folder, filter)
	if err != nil {
		c.logger.Error("collect.folder.failed", "folder", folder, "error", err)
		return nil, err
	}

	res := &CollectResult{
		Files: make([]FileResult, 0, len(names)),
		Stats: DirStats{Scanned: scanned, Matched: uint32(len(names))},
	}
	c.logger.Info("collect.start", "folder", folder, "filter", filter, "metric", metric, "scanned", scanned, "candidates", len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("collect: %w", err)
		}

		fr := c.collectFile(ctx, filepath.Join(folder, name), name, metric)
		res.Files = append(res.Files, fr)
		switch fr.Skip {
		case constants.SkipNone:
			res.Stats.Succeeded++
			res.Samples = append(res.Samples, stats.Sample{SourceName: name, Value: fr.Value})
		case constants.SkipNoMatch:
			res.Stats.NoMatch++
		default:
			res.Stats.Failed++
		}
	}

	c.logger.Info("collect.done",
		"folder", folder,
		"matched", res.Stats.Matched,
		"succeeded", res.Stats.Succeeded,
		"no_match", res.Stats.NoMatch,
		"failed", res.Stats.Failed,
	)
	return res, nil
}

func (c *Collector) collectFile(ctx context.Context, path, name string, metric constants.Metric) FileResult {
	start := time.Now()
	fr := FileResult{Name: name, Path: path}

	fctx, cancel := common.WithTimeout(ctx, c.fileTimeout)
	txt, err := c.extractText(fctx, path)
	cancel()
	fr.Duration = time.Since(start)
	if err != nil {
		fr.Skip = constants.SkipExtractFailed
		fr.Err = err.Error()
		c.logger.Warn("collect.file.skipped", "file", name, "reason", fr.Skip, "error", err)
		return fr
	}

	v, ok := parsefields.Extract(txt.Text, metric)
	if !ok {
		fr.Skip = constants.SkipNoMatch
		c.logger.Debug("collect.file.skipped", "file", name, "reason", fr.Skip, "pages", txt.Pages)
		return fr
	}

	fr.Value = v
	fr.OK = true
	c.logger.Debug("collect.file.ok", "file", name, "value", v, "method", txt.Method, "duration_ms", fr.Duration.Milliseconds())
	return fr
}

// extractText shields the batch from backends that panic on bad input.
func (c *Collector) extractText(ctx context.Context, path string) (res extract.TextExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract %s: panic: %v", path, r)
		}
	}()
	return c.text.Extract(ctx, path)
}
