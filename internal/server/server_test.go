package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pipeline"
)

type stubSource struct {
	pages []string
	err   error
}

func (s *stubSource) Pages(context.Context, string) ([]string, error) {
	return s.pages, s.err
}

func newTestServer(src pipeline.PageSource) *Server {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	pipe := pipeline.New(src, nil, nil, logger)
	return New(pipe, common.ServerConfig{MaxUploadBytes: 32 << 20}, logger)
}

func multipartPDF(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	// Valid header so the source's magic sniff passes.
	if _, err := fw.Write([]byte("%PDF-1.7 stub content")); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, mw.FormDataContentType()
}

func TestExtractEndpoint(t *testing.T) {
	srv := newTestServer(&stubSource{pages: []string{
		"Package Ref No.1: ORDER-100\nTracking No.: 1Z9999999999999999",
	}})
	e := srv.Router()

	body, contentType := multipartPDF(t, "pdf", "report.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set(echoContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Records []extract.Record `json:"records"`
		Pages   int              `json:"pages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(resp.Records))
	}
	if resp.Records[0].Tracking != "1ZGW01599999999999" {
		t.Errorf("tracking = %q", resp.Records[0].Tracking)
	}
	if resp.Pages != 1 {
		t.Errorf("pages = %d, want 1", resp.Pages)
	}
}

const echoContentType = "Content-Type"

func TestExtractEndpointMissingFile(t *testing.T) {
	srv := newTestServer(&stubSource{})
	e := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(""))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No PDF file uploaded") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestExtractEndpointWrongExtension(t *testing.T) {
	srv := newTestServer(&stubSource{})
	e := srv.Router()

	body, contentType := multipartPDF(t, "pdf", "report.docx")
	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set(echoContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "File must be a PDF") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestExtractEndpointDecodeFailure(t *testing.T) {
	srv := newTestServer(&stubSource{err: fmt.Errorf("%w: corrupt xref", common.ErrDecodeFailure)})
	e := srv.Router()

	body, contentType := multipartPDF(t, "pdf", "report.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/extract", body)
	req.Header.Set(echoContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "DECODE_FAILURE") {
		t.Errorf("body should carry the failure code: %s", rec.Body.String())
	}
}

func TestDownloadEndpointCSV(t *testing.T) {
	srv := newTestServer(&stubSource{})
	e := srv.Router()

	payload := `{"records":[{"reference":"ORDER-100","tracking":"1ZGW01599999999999","status":"Active"}],"format":"csv"}`
	req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader(payload))
	req.Header.Set(echoContentType, "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "shipments.csv") {
		t.Errorf("disposition = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "ORDER-100") {
		t.Errorf("csv body missing record: %s", rec.Body.String())
	}
}

func TestDownloadEndpointXLSX(t *testing.T) {
	srv := newTestServer(&stubSource{})
	e := srv.Router()

	payload := `{"records":[{"reference":"","tracking":"1ZGW01598888888888","status":"Void"}],"format":"xlsx"}`
	req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader(payload))
	req.Header.Set(echoContentType, "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "shipments.xlsx") {
		t.Errorf("disposition = %q", got)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("response is not an xlsx archive")
	}
}

func TestDownloadEndpointRejectsBadPayload(t *testing.T) {
	srv := newTestServer(&stubSource{})
	e := srv.Router()

	tests := []struct {
		name    string
		payload string
	}{
		{"wrong status enum", `{"records":[{"tracking":"1ZGW01599999999999","status":"Cancelled"}]}`},
		{"short tracking", `{"records":[{"tracking":"1Z99","status":"Active"}]}`},
		{"missing records", `{"format":"csv"}`},
		{"unknown format", `{"records":[],"format":"pdf"}`},
		{"extra field", `{"records":[],"surprise":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader(tt.payload))
			req.Header.Set(echoContentType, "application/json")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubSource{})
	e := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
