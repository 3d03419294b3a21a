package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tsawler/tabula"
)

// Tabula extracts text with github.com/tsawler/tabula.
type Tabula struct {
	logger *slog.Logger
}

func NewTabula(logger *slog.Logger) *Tabula {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tabula{logger: logger}
}

func (e *Tabula) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	res := TextExtractionResult{Method: "tabula"}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	ext := tabula.Open(path)
	defer ext.Close()
	pages, err := ext.PageCount()
	if err != nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("tabula: %w", err)
	}
	txt, warnings, err := ext.Text()
	res.Duration = time.Since(start)
	for _, w := range warnings {
		res.Warnings = append(res.Warnings, fmt.Sprint(w))
	}
	if err != nil {
		return res, fmt.Errorf("tabula: %w", err)
	}
	res.Text = Normalize(txt)
	res.Pages = pages
	e.logger.Debug("tabula text extracted", "path", path, "bytes", len(res.Text), "warnings", len(warnings))
	return res, nil
}
