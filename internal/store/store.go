// Package store persists calculation results as an ordered collection
// addressed by position.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
)

// ErrNotFound is returned when no record exists at a position.
var ErrNotFound = errors.New("calculation not found")

// Entry is a stored result with its position in the full collection.
type Entry struct {
	Position  int
	CreatedAt time.Time
	Result    breakeven.Result
}

// Store is an ordered collection of results. Insertion order is display order.
type Store interface {
	// List returns the records in insertion order. A non-empty query keeps
	// only records whose name contains it, ignoring case; positions still
	// refer to the unfiltered collection.
	List(ctx context.Context, query string) ([]Entry, error)
	At(ctx context.Context, position int) (breakeven.Result, error)
	// Append stores r under a new id and returns the stored copy.
	Append(ctx context.Context, r breakeven.Result) (breakeven.Result, error)
	DeleteAt(ctx context.Context, position int) error
}

// matchesName reports whether name contains query as a literal substring,
// ignoring case. An empty query matches every name.
func matchesName(name, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

func newID() string {
	return ulid.Make().String()
}

// createdAt extracts the creation time encoded in an id. Ids that are not
// ULIDs yield the zero time.
func createdAt(id string) time.Time {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(parsed.Time()).UTC()
}
