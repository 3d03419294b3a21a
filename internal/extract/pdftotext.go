package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Pdftotext shells out to poppler's pdftotext.
type Pdftotext struct {
	bin     string
	timeout time.Duration
	runner  Runner
	logger  *slog.Logger
}

func NewPdftotext(bin string, timeout time.Duration, logger *slog.Logger) *Pdftotext {
	if logger == nil {
		logger = slog.Default()
	}
	if bin == "" {
		bin = "pdftotext"
	}
	return &Pdftotext{bin: bin, timeout: timeout, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (e *Pdftotext) WithRunner(r Runner) *Pdftotext {
	e.runner = r
	return e
}

func (e *Pdftotext) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	res := TextExtractionResult{Method: "pdftotext"}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.bin, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	res.Duration = time.Since(start)
	if err != nil {
		if len(errb) > 0 {
			res.Warnings = append(res.Warnings, strings.TrimSpace(string(errb)))
		}
		return res, fmt.Errorf("pdftotext: %w", err)
	}
	raw := string(out)
	// A form-feed \f is used as page separator by default
	res.Pages = 1 + countFormFeeds(raw)
	res.Text = Normalize(strings.ReplaceAll(raw, "\f", "\n"))
	return res, nil
}

func countFormFeeds(s string) int {
	return strings.Count(strings.TrimRight(s, "\f\n"), "\f")
}
