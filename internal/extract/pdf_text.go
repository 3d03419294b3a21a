package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// PDFText extracts the embedded text layer with github.com/ledongthuc/pdf.
type PDFText struct {
	logger *slog.Logger
}

func NewPDFText(logger *slog.Logger) *PDFText {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFText{logger: logger}
}

// Extract concatenates the plain text of every page. The library panics on
// some malformed files; those are turned into errors.
func (e *PDFText) Extract(ctx context.Context, path string) (res TextExtractionResult, err error) {
	start := time.Now()
	res.Method = "pdf-text"
	if err := ctx.Err(); err != nil {
		return res, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: malformed document %q: %v", path, r)
		}
		res.Duration = time.Since(start)
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return res, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("failed to close pdf", "path", path, "error", cerr)
		}
	}()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		txt, perr := p.GetPlainText(nil)
		if perr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, perr))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
	}

	res.Text = Normalize(b.String())
	res.Pages = total
	e.logger.Debug("pdf text extracted", "path", path, "pages", total, "bytes", len(res.Text))
	return res, nil
}
