// Package history persists one row per extraction run so operators can audit
// what was processed and when. It speaks database/sql with either a postgres
// DSN (pgx stdlib driver) or a sqlite path (modernc driver); the CLI defaults
// to a local sqlite file while the server typically points at postgres.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
)

// Run is one recorded extraction.
type Run struct {
	ID          uuid.UUID
	SourceName  string
	Pages       int
	RecordCount int
	VoidCount   int
	Status      constants.RunStatus
	Error       string
	Duration    time.Duration
	CreatedAt   time.Time
}

type Store struct {
	db       *sql.DB
	postgres bool
	logger   *slog.Logger
}

// Fixed-width fraction so the text sorts chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS extract_runs (
	id            TEXT PRIMARY KEY,
	source_name   TEXT NOT NULL,
	pages         INTEGER NOT NULL,
	record_count  INTEGER NOT NULL,
	void_count    INTEGER NOT NULL,
	status        TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT '',
	duration_ms   INTEGER NOT NULL,
	created_at    TEXT NOT NULL
)`

// Open connects to the store identified by dsn and ensures the schema exists.
// DSNs beginning with postgres:// (or postgresql://) use pgx; anything else
// is treated as a sqlite database path.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	postgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	driver := "sqlite"
	if postgres {
		driver = "pgx"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", common.ErrDatabase, driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", common.ErrDatabase, err)
	}

	s := &Store{db: db, postgres: postgres, logger: logger}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", common.ErrDatabase, err)
	}
	logger.Debug("history store ready", "driver", driver)
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run row. The ID is assigned here when zero.
func (s *Store) RecordRun(ctx context.Context, run Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	q := s.rebind(`INSERT INTO extract_runs
		(id, source_name, pages, record_count, void_count, status, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	// UTC text timestamps round-trip identically through both drivers.
	_, err := s.db.ExecContext(ctx, q,
		run.ID.String(), run.SourceName, run.Pages, run.RecordCount, run.VoidCount,
		string(run.Status), run.Error, run.Duration.Milliseconds(),
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: insert run: %v", common.ErrDatabase, err)
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	q := s.rebind(`SELECT id, source_name, pages, record_count, void_count, status, error, duration_ms, created_at
		FROM extract_runs ORDER BY created_at DESC LIMIT ?`)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list runs: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r                   Run
			id, status, created string
			durationMS          int64
		)
		if err := rows.Scan(&id, &r.SourceName, &r.Pages, &r.RecordCount, &r.VoidCount,
			&status, &r.Error, &durationMS, &created); err != nil {
			return nil, fmt.Errorf("%w: scan run: %v", common.ErrDatabase, err)
		}
		r.ID, _ = uuid.Parse(id)
		r.Status = constants.RunStatus(status)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// rebind rewrites ? placeholders to $N for postgres.
func (s *Store) rebind(q string) string {
	if !s.postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
