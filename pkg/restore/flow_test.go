package restore_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-campus/pkg/backup"
	"github.com/goliatone/go-campus/pkg/notes"
	"github.com/goliatone/go-campus/pkg/restore"
	"github.com/goliatone/go-campus/pkg/store"
)

var flowNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return flowNow }

func newFlow(t *testing.T) (*restore.Flow, *store.Store, *notes.MemoryStore) {
	t.Helper()
	states := store.New(store.WithNow(fixedNow))
	noteStore := notes.NewMemoryStore()
	return restore.NewFlow(states, noteStore), states, noteStore
}

type rejectingNotes struct {
	notes.Store
	calls int
}

func (s *rejectingNotes) Upsert(context.Context, notes.Record) (notes.Record, error) {
	s.calls++
	return notes.Record{}, errors.New("store offline")
}

func TestStageRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"array", `[1, 2]`},
		{"null", `null`},
		{"scalar", `"backup"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flow, _, _ := newFlow(t)
			_, err := flow.Stage(strings.NewReader(tc.payload))
			if !errors.Is(err, restore.ErrInvalidBackup) {
				t.Fatalf("expected ErrInvalidBackup, got %v", err)
			}
			if flow.Phase() != restore.PhaseIdle {
				t.Fatalf("failed staging must leave the flow idle, got %s", flow.Phase())
			}
			if flow.Staged() != nil {
				t.Fatalf("nothing may be partially staged")
			}
		})
	}
}

func TestStageVersionedDocument(t *testing.T) {
	flow, _, _ := newFlow(t)
	staged, err := flow.Stage(strings.NewReader(`{
		"version": 1,
		"exportedAt": "2026-03-01T10:00:00Z",
		"data": {"tasks": [{"id": "t-1", "title": "Imported"}]},
		"notes": [{"id": "n-1", "title": "ok", "subject": "", "format": "rich", "content": "", "updatedAt": ""}]
	}`))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	if flow.Phase() != restore.PhaseStaged {
		t.Fatalf("expected staged phase, got %s", flow.Phase())
	}
	if staged.Compatibility != backup.CompatibilityCompatible {
		t.Fatalf("expected compatible, got %s", staged.Compatibility)
	}
	if staged.Version == nil || *staged.Version != 1 {
		t.Fatalf("expected version 1, got %v", staged.Version)
	}
	if staged.ExportedAt != "2026-03-01T10:00:00Z" {
		t.Fatalf("unexpected exportedAt: %s", staged.ExportedAt)
	}
	if staged.Snapshot.Tasks != 1 || staged.Snapshot.Notes != 1 {
		t.Fatalf("unexpected snapshot: %+v", staged.Snapshot)
	}
}

func TestLegacyDumpStagesAndApplies(t *testing.T) {
	flow, states, _ := newFlow(t)
	staged, err := flow.Stage(strings.NewReader(`{
		"tasks": [{"id": "t-1", "title": "Old dump task"}]
	}`))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if staged.Compatibility != backup.CompatibilityLegacy {
		t.Fatalf("expected legacy, got %s", staged.Compatibility)
	}

	if err := flow.Confirm(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	state := states.Read()
	if len(state.Tasks) != 1 || state.Tasks[0].Title != "Old dump task" {
		t.Fatalf("imported tasks must replace the defaults, got %+v", state.Tasks)
	}
	if state.Settings.FocusMinutes != 25 {
		t.Fatalf("keys absent from the dump must come from defaults")
	}
	if flow.Phase() != restore.PhaseIdle || flow.Staged() != nil {
		t.Fatalf("confirm must return the flow to idle")
	}
}

func TestConfirmUpsertsNotes(t *testing.T) {
	flow, _, noteStore := newFlow(t)
	if _, err := flow.Stage(strings.NewReader(`{
		"version": 1,
		"data": {},
		"notes": [
			{"id": "n-1", "title": "a", "subject": "", "format": "markdown", "content": "", "updatedAt": ""},
			{"id": "n-2", "title": "b", "subject": "", "format": "rich", "content": "", "updatedAt": ""}
		]
	}`)); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if err := flow.Confirm(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	all, err := noteStore.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 imported notes, got %d", len(all))
	}
}

func TestIncompatibleBackupBlocksConfirm(t *testing.T) {
	flow, states, _ := newFlow(t)
	before, _ := json.Marshal(states.Read())

	staged, err := flow.Stage(strings.NewReader(`{"version": 2, "data": {"tasks": []}}`))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if staged.Compatibility != backup.CompatibilityIncompatible {
		t.Fatalf("expected incompatible, got %s", staged.Compatibility)
	}

	err = flow.Confirm(context.Background())
	if !errors.Is(err, restore.ErrIncompatibleBackup) {
		t.Fatalf("expected ErrIncompatibleBackup, got %v", err)
	}

	after, _ := json.Marshal(states.Read())
	if string(before) != string(after) {
		t.Fatalf("blocked confirm must not mutate state")
	}
	if flow.Phase() != restore.PhaseStaged || flow.Staged() == nil {
		t.Fatalf("the candidate must stay staged after a blocked confirm")
	}
}

func TestConfirmWithoutStagedCandidate(t *testing.T) {
	flow, _, _ := newFlow(t)
	if err := flow.Confirm(context.Background()); !errors.Is(err, restore.ErrNothingStaged) {
		t.Fatalf("expected ErrNothingStaged, got %v", err)
	}
}

func TestCancelDiscardsWithoutMutation(t *testing.T) {
	flow, states, _ := newFlow(t)
	before, _ := json.Marshal(states.Read())

	if _, err := flow.Stage(strings.NewReader(`{"tasks": []}`)); err != nil {
		t.Fatalf("stage: %v", err)
	}
	flow.Cancel()

	if flow.Phase() != restore.PhaseIdle || flow.Staged() != nil {
		t.Fatalf("cancel must clear the staged candidate")
	}
	after, _ := json.Marshal(states.Read())
	if string(before) != string(after) {
		t.Fatalf("cancel must not mutate state")
	}

	if err := flow.Confirm(context.Background()); !errors.Is(err, restore.ErrNothingStaged) {
		t.Fatalf("confirm after cancel must fail, got %v", err)
	}
}

func TestRestagingReplacesPendingCandidate(t *testing.T) {
	flow, states, _ := newFlow(t)
	if _, err := flow.Stage(strings.NewReader(`{"tasks": [{"id": "first", "title": "first"}]}`)); err != nil {
		t.Fatalf("stage first: %v", err)
	}
	if _, err := flow.Stage(strings.NewReader(`{"tasks": [{"id": "second", "title": "second"}]}`)); err != nil {
		t.Fatalf("stage second: %v", err)
	}
	if err := flow.Confirm(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	tasks := states.Read().Tasks
	if len(tasks) != 1 || tasks[0].ID != "second" {
		t.Fatalf("the later staging must win, got %+v", tasks)
	}
}

func TestNoteFailureKeepsMergedStateAndDiscardsCandidate(t *testing.T) {
	states := store.New(store.WithNow(fixedNow))
	broken := &rejectingNotes{}
	flow := restore.NewFlow(states, broken)

	if _, err := flow.Stage(strings.NewReader(`{
		"version": 1,
		"data": {"tasks": [{"id": "t-1", "title": "survives"}]},
		"notes": [
			{"id": "n-1", "title": "a", "subject": "", "format": "markdown", "content": "", "updatedAt": ""},
			{"id": "n-2", "title": "b", "subject": "", "format": "markdown", "content": "", "updatedAt": ""}
		]
	}`)); err != nil {
		t.Fatalf("stage: %v", err)
	}

	err := flow.Confirm(context.Background())
	if err == nil {
		t.Fatalf("expected a note upsert failure")
	}
	if broken.calls != 2 {
		t.Fatalf("every note must still be attempted, got %d calls", broken.calls)
	}

	// The state write already happened; the failure is reported, not rolled back.
	tasks := states.Read().Tasks
	if len(tasks) != 1 || tasks[0].Title != "survives" {
		t.Fatalf("merged state must stay in place, got %+v", tasks)
	}
	if flow.Phase() != restore.PhaseIdle || flow.Staged() != nil {
		t.Fatalf("a failed apply must discard the staged candidate")
	}
}

func TestStagedCandidateCannotBeTampered(t *testing.T) {
	flow, states, _ := newFlow(t)
	fromStage, err := flow.Stage(strings.NewReader(`{
		"tasks": [{"id": "t-1", "title": "genuine"}],
		"settings": {"focusMinutes": 50}
	}`))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	fromStage.Candidate["tasks"] = "overwritten"
	peek := flow.Staged()
	peek.Candidate["settings"].(map[string]any)["focusMinutes"] = 1
	delete(peek.Candidate, "tasks")

	if again := flow.Staged(); again.Candidate["tasks"] == nil {
		t.Fatalf("mutating one snapshot must not leak into the next")
	}

	if err := flow.Confirm(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	state := states.Read()
	if len(state.Tasks) != 1 || state.Tasks[0].Title != "genuine" {
		t.Fatalf("confirm must apply the payload as staged, got %+v", state.Tasks)
	}
	if state.Settings.FocusMinutes != 50 {
		t.Fatalf("confirm must apply the staged settings, got %d", state.Settings.FocusMinutes)
	}
}

func TestPhaseString(t *testing.T) {
	cases := map[restore.Phase]string{
		restore.PhaseIdle:     "idle",
		restore.PhaseStaged:   "staged",
		restore.PhaseApplying: "applying",
		restore.Phase(99):     "unknown",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
