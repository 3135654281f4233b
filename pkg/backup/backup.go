// Package backup encodes the full DomainState plus the note collection into
// a versioned export document, and validates arbitrary JSON payloads before
// they are allowed anywhere near live state.
//
// Two input shapes are accepted: the versioned wrapper produced by Export,
// and a legacy raw dump (a plain object matching DomainState directly).
// Both normalize through ExtractCandidate.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	campus "github.com/goliatone/go-campus"
	"github.com/goliatone/go-campus/pkg/notes"
)

// CurrentVersion is the schema version written by Export and the only
// version Confirm will apply besides legacy (unversioned) dumps.
const CurrentVersion = 1

// Document is the export/import wire format.
type Document struct {
	Version    int                `json:"version"`
	ExportedAt string             `json:"exportedAt"`
	Data       campus.DomainState `json:"data"`
	Notes      []notes.Record     `json:"notes"`
}

// Export wraps the current state and full note collection. Construction is
// pure; there is no failure mode.
func Export(state campus.DomainState, allNotes []notes.Record, now time.Time) Document {
	if allNotes == nil {
		allNotes = []notes.Record{}
	}
	return Document{
		Version:    CurrentVersion,
		ExportedAt: now.Format(time.RFC3339),
		Data:       state,
		Notes:      allNotes,
	}
}

// Encode renders the document as indented JSON, the format written to the
// downloadable backup file.
func (d Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Filename is the date-stamped name backups are offered under.
func Filename(now time.Time) string {
	return fmt.Sprintf("campus-backup-%s.json", now.Format("2006-01-02"))
}

// ExtractCandidate pulls a state-shaped candidate out of a parsed payload.
// A wrapper object with an object-valued data field yields that object;
// any other plain object is the candidate directly (legacy dump). Arrays,
// scalars and null yield no candidate.
func ExtractCandidate(payload any) (map[string]any, bool) {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	if data, exists := root["data"]; exists {
		if candidate, ok := data.(map[string]any); ok {
			return candidate, true
		}
	}
	return root, true
}

// CanImport reports whether a usable state candidate exists in payload.
func CanImport(payload any) bool {
	_, ok := ExtractCandidate(payload)
	return ok
}

// ExtractNotes returns the well-formed note records from the payload's
// top-level notes array. Malformed entries are silently dropped, never
// rejected.
func ExtractNotes(payload any) []notes.Record {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	items, ok := root["notes"].([]any)
	if !ok {
		return nil
	}
	var out []notes.Record
	for _, item := range items {
		if record, ok := asNoteRecord(item); ok {
			out = append(out, record)
		}
	}
	return out
}

func asNoteRecord(value any) (notes.Record, bool) {
	entry, ok := value.(map[string]any)
	if !ok {
		return notes.Record{}, false
	}
	record := notes.Record{}
	for _, field := range []struct {
		key string
		dst *string
	}{
		{"id", &record.ID},
		{"title", &record.Title},
		{"subject", &record.Subject},
		{"content", &record.Content},
		{"updatedAt", &record.UpdatedAt},
	} {
		text, ok := entry[field.key].(string)
		if !ok {
			return notes.Record{}, false
		}
		*field.dst = text
	}
	format, ok := entry["format"].(string)
	if !ok || !notes.Format(format).Valid() {
		return notes.Record{}, false
	}
	record.Format = notes.Format(format)
	return record, true
}
