package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
)

// FileStore keeps the whole collection as an indented JSON array in a single
// file. Every operation reads the file whole and every change rewrites it whole.
type FileStore struct {
	mu    sync.Mutex
	path  string
	newID func() string
}

// NewFileStore returns a store backed by the JSON file at path. The file and
// its directory are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, newID: newID}
}

func (s *FileStore) List(ctx context.Context, query string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		if !matchesName(r.Name, query) {
			continue
		}
		entries = append(entries, Entry{Position: i, CreatedAt: createdAt(r.ID), Result: r})
	}
	return entries, nil
}

func (s *FileStore) At(ctx context.Context, position int) (breakeven.Result, error) {
	if err := ctx.Err(); err != nil {
		return breakeven.Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return breakeven.Result{}, err
	}
	if position < 0 || position >= len(records) {
		return breakeven.Result{}, ErrNotFound
	}
	return records[position], nil
}

func (s *FileStore) Append(ctx context.Context, r breakeven.Result) (breakeven.Result, error) {
	if err := ctx.Err(); err != nil {
		return breakeven.Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return breakeven.Result{}, err
	}

	r.ID = s.newID()
	if err := s.save(append(records, r)); err != nil {
		return breakeven.Result{}, err
	}
	return r, nil
}

func (s *FileStore) DeleteAt(ctx context.Context, position int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	if position < 0 || position >= len(records) {
		return ErrNotFound
	}

	return s.save(append(records[:position], records[position+1:]...))
}

func (s *FileStore) load() ([]breakeven.Result, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read calculations file: %w", err)
	}

	var records []breakeven.Result
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode calculations file %s: %w", s.path, err)
	}
	return records, nil
}

func (s *FileStore) save(records []breakeven.Result) error {
	if records == nil {
		records = []breakeven.Result{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode calculations: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".calculations-*.json")
	if err != nil {
		return fmt.Errorf("create temp calculations file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp calculations file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp calculations file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace calculations file: %w", err)
	}
	return nil
}
