package campus_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	campus "github.com/goliatone/go-campus"
)

func TestDefaultStateIsDeterministicIgnoringIDs(t *testing.T) {
	now := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	first := stripIDs(t, campus.DefaultState(now))
	second := stripIDs(t, campus.DefaultState(now))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two default states for the same instant must match apart from ids")
	}
}

func TestDefaultStateSeedShape(t *testing.T) {
	now := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	state := campus.DefaultState(now)

	if len(state.Tasks) != 3 {
		t.Fatalf("expected 3 seed tasks, got %d", len(state.Tasks))
	}
	if state.Focus.Streak != 5 {
		t.Fatalf("expected seed streak 5, got %d", state.Focus.Streak)
	}
	if got := state.Focus.DailyMinutes[campus.ISODate(now)]; got != 75 {
		t.Fatalf("expected 75 seed minutes today, got %d", got)
	}
	if len(state.Coding.DailyActivity) != 30 {
		t.Fatalf("expected a 30-day activity window, got %d", len(state.Coding.DailyActivity))
	}
	if last := state.Coding.DailyActivity[29]; last.Date != campus.ISODate(now) {
		t.Fatalf("activity window must end today, got %s", last.Date)
	}
	if state.Settings.FocusMinutes != 25 || state.Settings.BreakMinutes != 5 {
		t.Fatalf("unexpected seed durations: %+v", state.Settings)
	}
	if state.Settings.Theme != campus.ThemeDark {
		t.Fatalf("expected dark seed theme, got %q", state.Settings.Theme)
	}
	if len(state.GradeScale) != 8 {
		t.Fatalf("expected 8 grade scale entries, got %d", len(state.GradeScale))
	}
}

func TestNewIDUsesPrefixAndUniqueSuffix(t *testing.T) {
	a := campus.NewID("task")
	b := campus.NewID("task")
	if a == b {
		t.Fatalf("ids must be unique, got %q twice", a)
	}
	// prefix, dash, 8 hex chars of the uuid
	if len(a) != len("task-")+8 || a[:5] != "task-" {
		t.Fatalf("unexpected id shape: %q", a)
	}
}

func TestAddDays(t *testing.T) {
	base := time.Date(2026, time.February, 27, 23, 0, 0, 0, time.UTC)
	cases := []struct {
		days int
		want string
	}{
		{0, "2026-02-27"},
		{1, "2026-02-28"},
		{2, "2026-03-01"},
		{-27, "2026-01-31"},
	}
	for _, tc := range cases {
		if got := campus.AddDays(base, tc.days); got != tc.want {
			t.Fatalf("AddDays(%d): expected %s, got %s", tc.days, tc.want, got)
		}
	}
}

// stripIDs blanks every "id" field, recursively, via the wire encoding.
func stripIDs(t *testing.T, state campus.DomainState) map[string]any {
	t.Helper()
	raw, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	blankIDs(tree)
	return tree
}

func blankIDs(value any) {
	switch v := value.(type) {
	case map[string]any:
		if _, ok := v["id"]; ok {
			v["id"] = ""
		}
		for _, child := range v {
			blankIDs(child)
		}
	case []any:
		for _, child := range v {
			blankIDs(child)
		}
	}
}
