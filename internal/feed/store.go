package feed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"podium/internal/concert"
)

// Store manages feed persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the feed database at path and verifies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// ReplaceAll swaps the stored feed for the given records in one transaction
// and records the run that produced them. Records must already carry
// identifiers.
func (s *Store) ReplaceAll(ctx context.Context, runID string, concerts []concert.Concert) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin feed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM concerts`); err != nil {
		return fmt.Errorf("clear feed: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO concerts (
        id, datetime, url, venue, title, subtitle, description,
        programme_pdf_url, performers_json, pieces_json,
        min_pence, max_pence, is_under35_discount, is_proms_event
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range concerts {
		if c.ID == "" {
			return fmt.Errorf("record %q has no identifier", c.Title)
		}
		performersJSON, err := json.Marshal(c.Performers)
		if err != nil {
			return fmt.Errorf("marshal performers: %w", err)
		}
		piecesJSON, err := json.Marshal(c.Pieces)
		if err != nil {
			return fmt.Errorf("marshal pieces: %w", err)
		}
		if _, err := stmt.ExecContext(
			ctx,
			c.ID,
			c.Datetime.UTC().Format(time.RFC3339),
			c.URL,
			c.Venue,
			c.Title,
			nullableString(c.Subtitle),
			nullableString(c.Description),
			nullableString(c.ProgrammePDFURL),
			string(performersJSON),
			string(piecesJSON),
			nullableInt(c.MinPence),
			nullableInt(c.MaxPence),
			boolToInt(c.Under35),
			boolToInt(c.Prom),
		); err != nil {
			return fmt.Errorf("insert concert %s: %w", c.ID, err)
		}
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, finished_at, concert_count) VALUES (?, ?, ?)`,
		runID,
		time.Now().UTC().Format(time.RFC3339Nano),
		len(concerts),
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit feed: %w", err)
	}
	return nil
}

// All returns the stored feed ordered by start time, identifier breaking ties.
func (s *Store) All(ctx context.Context) ([]concert.Concert, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+concertColumns+` FROM concerts ORDER BY datetime, id`)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	defer rows.Close()

	var concerts []concert.Concert
	for rows.Next() {
		c, err := scanConcert(rows)
		if err != nil {
			return nil, err
		}
		concerts = append(concerts, c)
	}
	return concerts, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM concerts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count feed: %w", err)
	}
	return count, nil
}

// LastRun reports when the most recent run finished and how many records it
// wrote. ok is false when no run has been recorded.
func (s *Store) LastRun(ctx context.Context) (finished time.Time, count int, ok bool, err error) {
	var raw string
	row := s.db.QueryRowContext(ctx, `SELECT finished_at, concert_count FROM runs ORDER BY finished_at DESC LIMIT 1`)
	if scanErr := row.Scan(&raw, &count); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return time.Time{}, 0, false, nil
		}
		return time.Time{}, 0, false, fmt.Errorf("query last run: %w", scanErr)
	}
	finished, err = time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, 0, false, fmt.Errorf("parse run timestamp: %w", err)
	}
	return finished, count, true, nil
}

const concertColumns = "id, datetime, url, venue, title, subtitle, description, programme_pdf_url, performers_json, pieces_json, min_pence, max_pence, is_under35_discount, is_proms_event"

func scanConcert(scanner interface{ Scan(dest ...any) error }) (concert.Concert, error) {
	var (
		c              concert.Concert
		rawDatetime    string
		subtitle       sql.NullString
		description    sql.NullString
		programmePDF   sql.NullString
		performersJSON string
		piecesJSON     string
		minPence       sql.NullInt64
		maxPence       sql.NullInt64
		under35        int
		prom           int
	)

	if err := scanner.Scan(
		&c.ID,
		&rawDatetime,
		&c.URL,
		&c.Venue,
		&c.Title,
		&subtitle,
		&description,
		&programmePDF,
		&performersJSON,
		&piecesJSON,
		&minPence,
		&maxPence,
		&under35,
		&prom,
	); err != nil {
		return concert.Concert{}, fmt.Errorf("scan concert: %w", err)
	}

	datetime, err := time.Parse(time.RFC3339, rawDatetime)
	if err != nil {
		return concert.Concert{}, fmt.Errorf("parse datetime for %s: %w", c.ID, err)
	}
	c.Datetime = datetime.UTC()
	c.Subtitle = subtitle.String
	c.Description = description.String
	c.ProgrammePDFURL = programmePDF.String
	if err := json.Unmarshal([]byte(performersJSON), &c.Performers); err != nil {
		return concert.Concert{}, fmt.Errorf("unmarshal performers for %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(piecesJSON), &c.Pieces); err != nil {
		return concert.Concert{}, fmt.Errorf("unmarshal pieces for %s: %w", c.ID, err)
	}
	if minPence.Valid {
		v := int(minPence.Int64)
		c.MinPence = &v
	}
	if maxPence.Valid {
		v := int(maxPence.Int64)
		c.MaxPence = &v
	}
	c.Under35 = under35 != 0
	c.Prom = prom != 0
	return c, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
