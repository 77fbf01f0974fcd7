package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
)

// SQLiteStore keeps each result as a JSON snapshot in the calculations table.
type SQLiteStore struct {
	db    *sql.DB
	newID func() string
}

// NewSQLiteStore returns a store over db. The calculations table must exist.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, newID: newID}
}

// List filters names with matchesName; % and _ in query are literal.
func (s *SQLiteStore) List(ctx context.Context, query string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, record_json
		FROM calculations
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for position := 0; rows.Next(); position++ {
		var (
			id         string
			name       string
			recordJSON string
		)
		if err := rows.Scan(&id, &name, &recordJSON); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		if !matchesName(name, query) {
			continue
		}

		entry := Entry{Position: position}
		if err := json.Unmarshal([]byte(recordJSON), &entry.Result); err != nil {
			return nil, fmt.Errorf("decode calculation %s: %w", id, err)
		}
		entry.CreatedAt = createdAt(id)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	return entries, nil
}

func (s *SQLiteStore) At(ctx context.Context, position int) (breakeven.Result, error) {
	if position < 0 {
		return breakeven.Result{}, ErrNotFound
	}

	var recordJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT record_json
		FROM calculations
		ORDER BY seq
		LIMIT 1 OFFSET ?
	`, position).Scan(&recordJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return breakeven.Result{}, ErrNotFound
		}
		return breakeven.Result{}, fmt.Errorf("query calculation at %d: %w", position, err)
	}

	var r breakeven.Result
	if err := json.Unmarshal([]byte(recordJSON), &r); err != nil {
		return breakeven.Result{}, fmt.Errorf("decode calculation at %d: %w", position, err)
	}
	return r, nil
}

func (s *SQLiteStore) Append(ctx context.Context, r breakeven.Result) (breakeven.Result, error) {
	r.ID = s.newID()

	recordJSON, err := json.Marshal(r)
	if err != nil {
		return breakeven.Result{}, fmt.Errorf("encode calculation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, name, record_json)
		VALUES (?, ?, ?)
	`, r.ID, r.Name, string(recordJSON))
	if err != nil {
		return breakeven.Result{}, fmt.Errorf("insert calculation: %w", err)
	}

	return r, nil
}

func (s *SQLiteStore) DeleteAt(ctx context.Context, position int) error {
	if position < 0 {
		return ErrNotFound
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM calculations
		WHERE seq = (
			SELECT seq
			FROM calculations
			ORDER BY seq
			LIMIT 1 OFFSET ?
		)
	`, position)
	if err != nil {
		return fmt.Errorf("delete calculation at %d: %w", position, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete calculation at %d: %w", position, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
