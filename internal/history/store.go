// Package history persists statements run from the workbench so they can
// be recalled later with `quill history`.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/syndrdb/quill/internal/log"
)

// ErrNotFound is returned when a history entry does not exist.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded statement run.
type Entry struct {
	ID         string
	Text       string
	Rule       string // name of the grammar rule the statement matched, if any
	Valid      bool
	ErrorCount int
	ExecutedAt time.Time
}

// Store is a sqlite-backed statement history.
type Store struct {
	db *sql.DB
}

// NewStore opens the history database at path, creating it and its parent
// directory on first use.
func NewStore(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatHistory, "Opened history store", "path", path)
	return &Store{db: db}, nil
}

// Record inserts an entry. A zero ID gets a fresh uuid and a zero
// ExecutedAt gets the current time; the stored entry is returned.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ExecutedAt.IsZero() {
		entry.ExecutedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO statements (id, text, rule, valid, error_count, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Text, entry.Rule, boolToInt(entry.Valid),
		entry.ErrorCount, entry.ExecutedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording history entry: %w", err)
	}

	log.Debug(log.CatHistory, "Recorded statement", "id", entry.ID, "valid", entry.Valid)
	return entry, nil
}

// List returns the most recent entries, newest first. A limit <= 0 returns
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, text, rule, valid, error_count, executed_at
		FROM statements ORDER BY executed_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return entries, nil
}

// Get returns a single entry by id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, text, rule, valid, error_count, executed_at
		 FROM statements WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("getting history entry: %w", err)
	}
	return entry, nil
}

// Clear deletes all entries.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM statements`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	log.Info(log.CatHistory, "Cleared statement history")
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEntry(scanner interface{ Scan(...any) error }) (Entry, error) {
	var (
		entry      Entry
		valid      int
		executedAt string
	)
	if err := scanner.Scan(&entry.ID, &entry.Text, &entry.Rule, &valid,
		&entry.ErrorCount, &executedAt); err != nil {
		return Entry{}, err
	}
	entry.Valid = valid != 0

	ts, err := time.Parse(time.RFC3339Nano, executedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing executed_at %q: %w", executedAt, err)
	}
	entry.ExecutedAt = ts
	return entry, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
