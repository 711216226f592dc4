// Package server exposes the extractor over HTTP: upload a report, get the
// record sequence back as JSON; post a record sequence back to download it
// as CSV or XLSX.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pipeline"
)

type Server struct {
	pipe   *pipeline.Pipeline
	cfg    common.ServerConfig
	logger *slog.Logger
}

func New(pipe *pipeline.Pipeline, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{pipe: pipe, cfg: cfg, logger: logger}
}

// Router builds the Echo instance with all routes registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	uploadMB := s.cfg.MaxUploadBytes >> 20
	if uploadMB < 1 {
		uploadMB = 32
	}
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dM", uploadMB)))

	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/extract", s.handleExtract)
	api.POST("/download", s.handleDownload)

	return e
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
