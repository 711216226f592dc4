// Package pdftext is the document-to-text collaborator: it renders a PDF
// report into per-page plain text via poppler's pdftotext, preserving layout
// so line groupings survive for the extractor.
package pdftext

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
)

type Config struct {
	Pdftotext string        // binary name or absolute path; if empty -> "pdftotext"
	Timeout   time.Duration // bound on one pdftotext run; <= 0 means no bound
}

type Source struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewSource(cfg Config, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Source{cfg: cfg, runner: execRunner{}, logger: logger}
}

// pdfMagic is the header every PDF starts with.
const pdfMagic = "%PDF-"

// Pages renders the document at path and returns its pages in reading order.
// A file that is not a PDF fails with ErrNotADocument; a render failure
// surfaces as ErrDecodeFailure. An empty page list is never returned for a
// failure.
func (s *Source) Pages(ctx context.Context, path string) ([]string, error) {
	if err := sniffPDF(path); err != nil {
		return nil, err
	}

	// A hung render must not block the caller forever.
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := s.runner.Run(ctx, s.cfg.Pdftotext, s.logger,
		"-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrDecodeFailure, strings.TrimSpace(string(errb)), err)
	}

	// pdftotext separates pages with a form feed and appends a trailing one.
	pages := strings.Split(strings.TrimSuffix(string(out), "\f"), "\f")
	s.logger.Debug("pdf rendered", "path", path, "pages", len(pages))
	return pages, nil
}

func sniffPDF(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecodeFailure, err)
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, header); err != nil || string(header) != pdfMagic {
		return fmt.Errorf("%w: %s", common.ErrNotADocument, path)
	}
	return nil
}
