// upswatch watches drop directories for new report PDFs and extracts each one
// as it lands, writing the CSV next to the source file.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/export"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/history"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/ingest"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pdftext"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pipeline"
)

func main() {
	initialScan := flag.Bool("scan", false, "process PDFs already present in the watched directories")
	flag.Parse()
	roots := flag.Args()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := common.LoadConfig(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger := common.NewLogger(cfg.LogLevel)

	if len(roots) == 0 {
		logger.Error("usage", "cmd", "upswatch [-scan] <dir> [dir...]")
		os.Exit(2)
	}

	var hist *history.Store
	if cfg.History.DSN != "" {
		hist, err = history.Open(ctx, cfg.History.DSN, logger)
		if err != nil {
			logger.Error("open history store", "error", err)
			os.Exit(1)
		}
		defer hist.Close()
	}

	source := pdftext.NewSource(pdftext.Config{Pdftotext: cfg.PDF.Pdftotext, Timeout: cfg.PDF.Timeout}, logger)
	rebuilder := extract.NewRebuilder(cfg.Extract.CarrierPrefix, nil)
	pipe := pipeline.New(source, extract.New(rebuilder), hist, logger)

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       roots,
		InitialScan: *initialScan,
		Debounce:    cfg.Watch.Debounce,
	}, logger)
	if err != nil {
		logger.Error("start watcher", "error", err)
		os.Exit(1)
	}

	logger.Info("watching for report PDFs", "roots", strings.Join(roots, ","))

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped")
			return
		case werr, ok := <-errs:
			if ok {
				logger.Error("watch error", "error", werr)
			}
		case path, ok := <-events:
			if !ok {
				return
			}
			res, err := pipe.Run(ctx, path)
			if err != nil {
				// Already logged by the pipeline; keep watching.
				continue
			}
			out := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
			f, err := os.Create(out)
			if err != nil {
				logger.Error("create output", "path", out, "error", err)
				continue
			}
			if err := export.WriteCSV(f, res.Records); err != nil {
				logger.Error("write csv", "path", out, "error", err)
			}
			_ = f.Close()
			logger.Info("csv written", "path", out, "records", len(res.Records))
		}
	}
}
