// Package notes is the separate keyed record store for rich/markdown notes.
// The backup subsystem consumes it wholesale: enumerate-all during export,
// bulk upsert during restore. The notes editor UI shares the same contract.
package notes

import (
	"context"
	"errors"
	"fmt"
)

// Format identifies a note's content encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatRich     Format = "rich"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatMarkdown || f == FormatRich
}

// Record is one stored note. UpdatedAt is an RFC 3339 timestamp string.
type Record struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Format    Format `json:"format"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updatedAt"`
}

// ErrMissingID rejects records without a key.
var ErrMissingID = errors.New("notes: record id is required")

// Store is the keyed record collection contract.
type Store interface {
	// All enumerates every stored record.
	All(ctx context.Context) ([]Record, error)
	// Upsert inserts or replaces the record keyed by its id and returns the
	// stored value.
	Upsert(ctx context.Context, record Record) (Record, error)
	// Delete removes the record with the given id. Deleting an unknown id
	// succeeds.
	Delete(ctx context.Context, id string) error
}

func validate(record Record) error {
	if record.ID == "" {
		return ErrMissingID
	}
	if !record.Format.Valid() {
		return fmt.Errorf("notes: unknown format %q for record %q", record.Format, record.ID)
	}
	return nil
}
