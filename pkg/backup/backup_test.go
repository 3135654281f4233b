package backup_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	campus "github.com/goliatone/go-campus"
	"github.com/goliatone/go-campus/pkg/backup"
	"github.com/goliatone/go-campus/pkg/notes"
)

var backupNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func parse(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return payload
}

func TestExportShape(t *testing.T) {
	state := campus.DefaultState(backupNow)
	doc := backup.Export(state, nil, backupNow)

	if doc.Version != backup.CurrentVersion {
		t.Fatalf("expected version %d, got %d", backup.CurrentVersion, doc.Version)
	}
	if doc.ExportedAt != "2026-03-14T09:30:00Z" {
		t.Fatalf("unexpected exportedAt: %s", doc.ExportedAt)
	}
	if doc.Notes == nil || len(doc.Notes) != 0 {
		t.Fatalf("nil note collections must export as an empty array")
	}
}

func TestFilename(t *testing.T) {
	if got := backup.Filename(backupNow); got != "campus-backup-2026-03-14.json" {
		t.Fatalf("unexpected filename: %s", got)
	}
}

func TestExportEncodeRoundTrip(t *testing.T) {
	state := campus.DefaultState(backupNow)
	records := []notes.Record{{
		ID:        "n-1",
		Title:     "OS recap",
		Subject:   "OS",
		Format:    notes.FormatMarkdown,
		Content:   "# Scheduling",
		UpdatedAt: "2026-03-14T09:00:00Z",
	}}

	encoded, err := backup.Export(state, records, backupNow).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	payload := parse(t, string(encoded))
	candidate, ok := backup.ExtractCandidate(payload)
	if !ok {
		t.Fatalf("exported document must yield a candidate")
	}

	restored := campus.MergeMap(campus.DefaultState(backupNow), candidate)
	original, _ := json.Marshal(state)
	roundTripped, _ := json.Marshal(restored)
	if string(original) != string(roundTripped) {
		t.Fatalf("export then restore must reproduce the state")
	}

	extracted := backup.ExtractNotes(payload)
	if !reflect.DeepEqual(extracted, records) {
		t.Fatalf("expected notes %+v, got %+v", records, extracted)
	}
}

func TestExtractCandidate(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		ok      bool
		wantKey string
	}{
		{"versioned wrapper", `{"version": 1, "data": {"tasks": []}}`, true, "tasks"},
		{"legacy raw dump", `{"tasks": [], "focus": {}}`, true, "tasks"},
		{"wrapper with scalar data falls back to root", `{"data": 42, "tasks": []}`, true, "tasks"},
		{"array", `[1, 2, 3]`, false, ""},
		{"null", `null`, false, ""},
		{"scalar", `"state"`, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate, ok := backup.ExtractCandidate(parse(t, tc.payload))
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if !ok {
				return
			}
			if _, exists := candidate[tc.wantKey]; !exists {
				t.Fatalf("expected candidate to carry %q, got %v", tc.wantKey, candidate)
			}
			if backup.CanImport(parse(t, tc.payload)) != tc.ok {
				t.Fatalf("CanImport must agree with ExtractCandidate")
			}
		})
	}
}

func TestExtractCandidateUnwrapsDataObject(t *testing.T) {
	payload := parse(t, `{"version": 1, "data": {"focus": {"streak": 3}}, "notes": []}`)
	candidate, ok := backup.ExtractCandidate(payload)
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if _, exists := candidate["version"]; exists {
		t.Fatalf("wrapper keys must not leak into the candidate: %v", candidate)
	}
	if _, exists := candidate["focus"]; !exists {
		t.Fatalf("expected the unwrapped data object, got %v", candidate)
	}
}

func TestExtractNotesFiltersMalformedEntries(t *testing.T) {
	payload := parse(t, `{"notes": [
		{"id": "n-1", "title": "ok", "subject": "DSA", "format": "markdown", "content": "x", "updatedAt": "2026-03-14"},
		{"id": 1, "title": "numeric id", "subject": "", "format": "markdown", "content": "", "updatedAt": ""},
		{"id": "n-3", "title": "bad format", "subject": "", "format": "html", "content": "", "updatedAt": ""},
		"not an object"
	]}`)

	got := backup.ExtractNotes(payload)
	if len(got) != 1 || got[0].ID != "n-1" {
		t.Fatalf("expected only the well-formed record, got %+v", got)
	}
}

func TestExtractNotesMissingOrInvalidArray(t *testing.T) {
	if got := backup.ExtractNotes(parse(t, `{"tasks": []}`)); got != nil {
		t.Fatalf("missing notes array must yield nil, got %+v", got)
	}
	if got := backup.ExtractNotes(parse(t, `{"notes": "lots"}`)); got != nil {
		t.Fatalf("non-array notes must yield nil, got %+v", got)
	}
	if got := backup.ExtractNotes(parse(t, `[1]`)); got != nil {
		t.Fatalf("non-object payload must yield nil, got %+v", got)
	}
}

func TestResolveCompatibility(t *testing.T) {
	one := 1
	nine := 9
	cases := []struct {
		name        string
		payload     string
		want        backup.Compatibility
		wantVersion *int
	}{
		{"current version", `{"version": 1}`, backup.CompatibilityCompatible, &one},
		{"future version", `{"version": 9}`, backup.CompatibilityIncompatible, &nine},
		{"absent version", `{"tasks": []}`, backup.CompatibilityLegacy, nil},
		{"string version", `{"version": "1"}`, backup.CompatibilityLegacy, nil},
		{"null version", `{"version": null}`, backup.CompatibilityLegacy, nil},
		{"non-object payload", `[]`, backup.CompatibilityLegacy, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := backup.ResolveCompatibility(parse(t, tc.payload))
			if got.Compatibility != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.Compatibility)
			}
			if (got.Version == nil) != (tc.wantVersion == nil) {
				t.Fatalf("version presence mismatch: %v", got.Version)
			}
			if got.Version != nil && *got.Version != *tc.wantVersion {
				t.Fatalf("expected version %d, got %d", *tc.wantVersion, *got.Version)
			}
		})
	}
}

func TestResolveCompatibilityReadsExportedAt(t *testing.T) {
	got := backup.ResolveCompatibility(parse(t, `{"version": 1, "exportedAt": "2026-03-14T09:30:00Z"}`))
	if got.ExportedAt != "2026-03-14T09:30:00Z" {
		t.Fatalf("unexpected exportedAt: %q", got.ExportedAt)
	}
}

func TestBuildSnapshotCounts(t *testing.T) {
	payload := parse(t, `{
		"version": 1,
		"data": {
			"tasks": [{}, {}, {}],
			"exams": [{}],
			"goals": [{}, {}],
			"resources": [],
			"placement": {"applications": [{}, {}, {}, {}]}
		}
	}`)

	got := backup.BuildSnapshot(payload, 5)
	want := backup.Snapshot{Tasks: 3, Exams: 1, Goals: 2, Resources: 0, Applications: 4, Notes: 5}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestBuildSnapshotTolerantOfShape(t *testing.T) {
	got := backup.BuildSnapshot(parse(t, `{"tasks": "many", "placement": []}`), 0)
	if got != (backup.Snapshot{}) {
		t.Fatalf("malformed collections must count zero, got %+v", got)
	}
	if backup.BuildSnapshot(parse(t, `[]`), 2).Notes != 2 {
		t.Fatalf("non-object payloads must still carry the note count")
	}
}
