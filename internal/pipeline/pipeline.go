// Package pipeline glues the document text source to the extraction core and
// the optional run-history store: one call takes a report path and produces
// the record sequence plus run metadata.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/history"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/metrics"
)

// PageSource supplies per-page document text. Satisfied by pdftext.Source.
type PageSource interface {
	Pages(ctx context.Context, path string) ([]string, error)
}

// Result is one completed extraction run.
type Result struct {
	Records  []extract.Record
	Pages    int
	Duration time.Duration
}

type Pipeline struct {
	Source    PageSource
	Extractor *extract.Extractor
	History   *history.Store // nil disables run recording
	Logger    *slog.Logger
}

func New(source PageSource, ex *extract.Extractor, hist *history.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if ex == nil {
		ex = extract.New(nil)
	}
	return &Pipeline{Source: source, Extractor: ex, History: hist, Logger: logger}
}

// Run extracts the report at path. Zero records is a valid (flagged, logged)
// outcome, not an error; source failures are returned with their taxonomy
// intact so callers can surface them distinctly.
func (p *Pipeline) Run(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	pages, err := p.Source.Pages(ctx, path)
	if err != nil {
		outcome := "decode_failure"
		if errors.Is(err, common.ErrNotADocument) {
			outcome = "not_a_document"
		}
		metrics.ExtractsTotal.WithLabelValues(outcome).Inc()
		p.recordRun(ctx, path, 0, nil, constants.RunStatusFailed, err.Error(), time.Since(start))
		p.Logger.Error("extract failed", "path", path, "error", err)
		return Result{}, err
	}

	records := p.Extractor.Extract(pages)
	dur := time.Since(start)

	status := constants.RunStatusOK
	outcome := "ok"
	if len(records) == 0 {
		status = constants.RunStatusEmpty
		outcome = "empty"
	}
	metrics.ExtractsTotal.WithLabelValues(outcome).Inc()
	metrics.ExtractDuration.Observe(dur.Seconds())
	voids := 0
	for _, r := range records {
		metrics.RecordsTotal.WithLabelValues(string(r.Status)).Inc()
		if r.Status == constants.StatusVoid {
			voids++
		}
	}

	p.recordRun(ctx, path, len(pages), records, status, "", dur)

	p.Logger.Info("extract.ok",
		"path", path,
		"pages", len(pages),
		"records", len(records),
		"voided", voids,
		"duration_ms", dur.Milliseconds(),
	)
	return Result{Records: records, Pages: len(pages), Duration: dur}, nil
}

func (p *Pipeline) recordRun(ctx context.Context, path string, pages int, records []extract.Record, status constants.RunStatus, errMsg string, dur time.Duration) {
	if p.History == nil {
		return
	}
	voids := 0
	for _, r := range records {
		if r.Status == constants.StatusVoid {
			voids++
		}
	}
	_, err := p.History.RecordRun(ctx, history.Run{
		SourceName:  filepath.Base(path),
		Pages:       pages,
		RecordCount: len(records),
		VoidCount:   voids,
		Status:      status,
		Error:       errMsg,
		Duration:    dur,
	})
	if err != nil {
		// History is advisory; a failed insert never fails the run.
		p.Logger.Warn("history record failed", "path", path, "error", err)
	}
}
