// Package sqlite is a report archive backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/paperiq/pkg/paperiq/archive"
)

// Store implements archive.Archive on SQLite
type Store struct {
	db  *sql.DB
	ids *archive.IDs
	now func() time.Time
}

// Open opens (or creates) the archive database at path with WAL mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for concurrent readers
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, ids: archive.NewIDs(), now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	source TEXT,
	composite REAL NOT NULL,
	payload BLOB NOT NULL
);

DROP INDEX IF EXISTS idx_reports_created;
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Save inserts r, replacing any record with the same ID.
func (s *Store) Save(ctx context.Context, r archive.Record) (archive.Record, error) {
	r = archive.Prepare(r, s.ids, s.now())
	payload, err := archive.EncodeReport(r.Report)
	if err != nil {
		return archive.Record{}, fmt.Errorf("encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, created_at, source, composite, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			source = excluded.source,
			composite = excluded.composite,
			payload = excluded.payload
	`, r.ID, r.CreatedAt.Format(time.RFC3339Nano), r.Source, r.Report.Composite, payload)
	if err != nil {
		return archive.Record{}, fmt.Errorf("save report %s: %w", r.ID, err)
	}
	return r, nil
}

// Get loads a record by ID.
func (s *Store) Get(ctx context.Context, id string) (archive.Record, bool, error) {
	var (
		r       archive.Record
		created string
		source  sql.NullString
		payload []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, payload FROM reports WHERE id = ?`, id,
	).Scan(&r.ID, &created, &source, &payload)
	if err == sql.ErrNoRows {
		return archive.Record{}, false, nil
	}
	if err != nil {
		return archive.Record{}, false, err
	}

	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return archive.Record{}, false, fmt.Errorf("report %s: created_at: %w", id, err)
	}
	r.Source = source.String
	if r.Report, err = archive.DecodeReport(payload); err != nil {
		return archive.Record{}, false, fmt.Errorf("report %s: decode: %w", id, err)
	}
	return r, true, nil
}

// List returns the newest summaries first. IDs are ULIDs, so the primary key
// order is creation order.
func (s *Store) List(ctx context.Context, limit int) ([]archive.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source, composite FROM reports
		ORDER BY id DESC
		LIMIT ?
	`, archive.Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []archive.Summary{}
	for rows.Next() {
		var (
			sum     archive.Summary
			created string
			source  sql.NullString
		)
		if err := rows.Scan(&sum.ID, &created, &source, &sum.Composite); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, err
		}
		sum.Source = source.String
		out = append(out, sum)
	}
	return out, rows.Err()
}

var _ archive.Archive = (*Store)(nil)
