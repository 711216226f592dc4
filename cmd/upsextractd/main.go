// upsextractd serves the shipment report extractor over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/history"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pdftext"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pipeline"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := common.LoadConfig(ctx)
	if err != nil {
		// Logger depends on config; this one failure goes to stderr raw.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger := common.NewLogger(cfg.LogLevel)

	var hist *history.Store
	if cfg.History.DSN != "" {
		hist, err = history.Open(ctx, cfg.History.DSN, logger)
		if err != nil {
			logger.Error("open history store", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := hist.Close(); cerr != nil {
				logger.Error("close history store", "error", cerr)
			}
		}()
	}

	source := pdftext.NewSource(pdftext.Config{Pdftotext: cfg.PDF.Pdftotext, Timeout: cfg.PDF.Timeout}, logger)
	rebuilder := extract.NewRebuilder(cfg.Extract.CarrierPrefix, nil)
	pipe := pipeline.New(source, extract.New(rebuilder), hist, logger)

	srv := server.New(pipe, cfg.Server, logger)
	e := srv.Router()

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
