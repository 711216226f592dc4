package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type extractResponse struct {
	Records any `json:"records"`
	Pages   int `json:"pages"`
}

// handleExtract accepts a multipart upload under the "pdf" field, runs the
// pipeline on it, and returns the record sequence. The temp copy of the
// upload is removed whatever the outcome.
func (s *Server) handleExtract(c echo.Context) error {
	fh, err := c.FormFile("pdf")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No PDF file uploaded"})
	}
	if !constants.IsAllowedExt(filepath.Ext(fh.Filename)) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "File must be a PDF"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "read upload failed"})
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upsx-*.pdf")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "temp file failed"})
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "store upload failed"})
	}
	if err := tmp.Close(); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "store upload failed"})
	}

	res, err := s.pipe.Run(c.Request().Context(), tmpPath)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotADocument):
			return c.JSON(http.StatusBadRequest, errorResponse{
				Error: "File must be a PDF", Code: "NOT_A_DOCUMENT",
			})
		case errors.Is(err, common.ErrDecodeFailure):
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Error: firstLine(err.Error()), Code: "DECODE_FAILURE",
			})
		default:
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: firstLine(err.Error())})
		}
	}

	return c.JSON(http.StatusOK, extractResponse{Records: res.Records, Pages: res.Pages})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
