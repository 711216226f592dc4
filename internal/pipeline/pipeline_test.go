package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
)

type stubSource struct {
	pages []string
	err   error
}

func (s *stubSource) Pages(context.Context, string) ([]string, error) {
	return s.pages, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRunProducesRecords(t *testing.T) {
	src := &stubSource{pages: []string{
		"Package Ref No.1: ORDER-100\nTracking No.: 1Z9999999999999999",
		"VOID\nTracking No.: 1Z8888888888888888",
	}}
	p := New(src, nil, nil, testLogger())

	res, err := p.Run(context.Background(), "report.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if res.Pages != 2 {
		t.Errorf("pages = %d, want 2", res.Pages)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if res.Records[0].Status != constants.StatusActive {
		t.Errorf("first status = %q, want Active", res.Records[0].Status)
	}
	if res.Records[1].Status != constants.StatusVoid {
		t.Errorf("second status = %q, want Void", res.Records[1].Status)
	}
}

func TestRunEmptyIsNotAnError(t *testing.T) {
	p := New(&stubSource{pages: []string{"nothing matches here"}}, nil, nil, testLogger())

	res, err := p.Run(context.Background(), "report.pdf")
	if err != nil {
		t.Fatalf("empty extraction must not fail: %v", err)
	}
	if len(res.Records) != 0 {
		t.Errorf("records = %d, want 0", len(res.Records))
	}
}

func TestRunSourceFailurePreservesTaxonomy(t *testing.T) {
	wrapped := fmt.Errorf("%w: bad xref", common.ErrDecodeFailure)
	p := New(&stubSource{err: wrapped}, nil, nil, testLogger())

	_, err := p.Run(context.Background(), "report.pdf")
	if !errors.Is(err, common.ErrDecodeFailure) {
		t.Errorf("err = %v, want ErrDecodeFailure preserved", err)
	}

	p = New(&stubSource{err: fmt.Errorf("%w: x", common.ErrNotADocument)}, nil, nil, testLogger())
	_, err = p.Run(context.Background(), "report.pdf")
	if !errors.Is(err, common.ErrNotADocument) {
		t.Errorf("err = %v, want ErrNotADocument preserved", err)
	}
}
