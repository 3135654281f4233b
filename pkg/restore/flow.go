// Package restore implements the two-phase import protocol: a backup file is
// validated and staged with its compatibility verdict and entity counts, and
// only an explicit confirmation applies it. An invalid, foreign, or
// schema-incompatible file can never silently overwrite accumulated local
// data.
package restore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-campus/pkg/backup"
	"github.com/goliatone/go-campus/pkg/notes"
	"github.com/goliatone/go-campus/pkg/store"
)

// Phase is the flow's current state.
type Phase int

const (
	// PhaseIdle means no pending import.
	PhaseIdle Phase = iota
	// PhaseStaged means a validated candidate awaits confirmation.
	PhaseStaged
	// PhaseApplying is the transient state while an import commits.
	PhaseApplying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStaged:
		return "staged"
	case PhaseApplying:
		return "applying"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidBackup rejects payloads that are not JSON or carry no
	// extractable state candidate. Nothing is staged.
	ErrInvalidBackup = errors.New("restore: invalid backup file")
	// ErrIncompatibleBackup blocks confirmation of an unsupported schema
	// version. The candidate stays staged; no state mutates.
	ErrIncompatibleBackup = errors.New("restore: backup version is not compatible")
	// ErrNothingStaged rejects confirmation with no pending candidate.
	ErrNothingStaged = errors.New("restore: no staged backup")
)

// Staged is a validated, not-yet-applied import payload with the metadata
// the preview shows.
type Staged struct {
	Candidate     map[string]any
	Notes         []notes.Record
	Version       *int
	ExportedAt    string
	Compatibility backup.Compatibility
	Snapshot      backup.Snapshot
}

// copy isolates the flow's pending candidate from callers; what Confirm
// applies is always the payload as staged.
func (s *Staged) copy() *Staged {
	if s == nil {
		return nil
	}
	out := *s
	out.Candidate = cloneTree(s.Candidate)
	out.Notes = append([]notes.Record(nil), s.Notes...)
	if s.Version != nil {
		version := *s.Version
		out.Version = &version
	}
	return &out
}

func cloneTree(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneTreeValue(value)
	}
	return out
}

func cloneTreeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneTree(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneTreeValue(item)
		}
		return out
	default:
		return v
	}
}

// Flow owns the Idle/Staged/Applying state machine over one store pair.
type Flow struct {
	mu     sync.Mutex
	phase  Phase
	staged *Staged
	states *store.Store
	notes  notes.Store
}

// NewFlow constructs an idle flow bound to the state store and note store.
func NewFlow(states *store.Store, noteStore notes.Store) *Flow {
	return &Flow{states: states, notes: noteStore}
}

// Phase reports the current state.
func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Staged returns a copy of the pending candidate, or nil when idle.
func (f *Flow) Staged() *Staged {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staged.copy()
}

// Stage reads and validates an uploaded backup. On success the candidate is
// held for confirmation, annotated with its compatibility verdict and entity
// counts. On any parse or shape failure the flow stays idle and nothing is
// partially staged; re-staging replaces a previous pending candidate.
func (f *Flow) Stage(r io.Reader) (*Staged, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	candidate, ok := backup.ExtractCandidate(payload)
	if !ok {
		return nil, ErrInvalidBackup
	}

	staged := &Staged{
		Candidate: candidate,
		Notes:     backup.ExtractNotes(payload),
	}
	resolution := backup.ResolveCompatibility(payload)
	staged.Version = resolution.Version
	staged.ExportedAt = resolution.ExportedAt
	staged.Compatibility = resolution.Compatibility
	staged.Snapshot = backup.BuildSnapshot(payload, len(staged.Notes))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged = staged
	f.phase = PhaseStaged
	return staged.copy(), nil
}

// Cancel discards the staged candidate without mutating any state.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase == PhaseApplying {
		return
	}
	f.staged = nil
	f.phase = PhaseIdle
}

// Confirm applies the staged candidate: the state store is merge-updated
// first, then every staged note is upserted. The two writes are not atomic;
// a notes failure leaves the already-merged state in place, every entry is
// still attempted, and the joined error is returned. Any failure discards
// the staged candidate, so retry starts from file selection again.
//
// Confirming an incompatible candidate returns ErrIncompatibleBackup
// without touching anything; the candidate stays staged.
func (f *Flow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.staged == nil {
		return ErrNothingStaged
	}
	if f.staged.Compatibility == backup.CompatibilityIncompatible {
		return ErrIncompatibleBackup
	}

	pending := f.staged
	f.phase = PhaseApplying
	defer func() {
		f.staged = nil
		f.phase = PhaseIdle
	}()

	if err := f.states.Restore(pending.Candidate); err != nil {
		return fmt.Errorf("restore: apply state: %w", err)
	}

	var errs []error
	for _, record := range pending.Notes {
		if _, err := f.notes.Upsert(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("note %q: %w", record.ID, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore: note upserts: %w", errors.Join(errs...))
	}
	return nil
}
