package extract

import (
	"log/slog"

	"github.com/joseph-ayodele/mpstats/internal/common"
)

// New returns the extractor for the configured backend.
func New(cfg common.TextConfig, logger *slog.Logger) (TextExtractor, error) {
	switch cfg.Backend {
	case common.BackendPDF, "":
		return NewPDFText(logger), nil
	case common.BackendTabula:
		return NewTabula(logger), nil
	case common.BackendPdftotext:
		return NewPdftotext(cfg.Pdftotext, cfg.Timeout, logger), nil
	default:
		return nil, common.NewAppError("CONFIG_ERROR", "unknown text backend "+cfg.Backend, common.ErrInvalidInput)
	}
}
