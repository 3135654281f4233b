package campus

import (
	"bytes"
	"encoding/json"
)

// Merge completes a partial state candidate against defaults and is used at
// both hydration and restore. Top-level keys present in the candidate
// overwrite the default wholesale, except the five nested objects (focus,
// placement, coding, resume, settings) which merge key by key one level
// deep. Collections are replaced wholesale, never element-merged.
//
// Candidates are untrusted JSON: every field is decoded on its own, and a
// field that is null or fails to decode is absorbed by keeping the default
// value rather than rejecting the document.
func Merge(defaults DomainState, raw []byte) DomainState {
	out := Clone(defaults)

	fields, ok := objectFields(raw)
	if !ok {
		return out
	}

	setField(fields, "tasks", &out.Tasks)
	setField(fields, "exams", &out.Exams)
	setField(fields, "semesters", &out.Semesters)
	setField(fields, "gradeScale", &out.GradeScale)
	setField(fields, "companyKits", &out.CompanyKits)
	setField(fields, "resources", &out.Resources)
	setField(fields, "goals", &out.Goals)

	if nested, ok := objectFields(fields["focus"]); ok {
		setField(nested, "sessions", &out.Focus.Sessions)
		setField(nested, "dailyMinutes", &out.Focus.DailyMinutes)
		setField(nested, "streak", &out.Focus.Streak)
		setField(nested, "ambientMode", &out.Focus.AmbientMode)
	}
	if nested, ok := objectFields(fields["placement"]); ok {
		setField(nested, "checklist", &out.Placement.Checklist)
		setField(nested, "applications", &out.Placement.Applications)
		setField(nested, "offers", &out.Placement.Offers)
		setField(nested, "rejections", &out.Placement.Rejections)
		setField(nested, "resumeVersions", &out.Placement.ResumeVersions)
	}
	if nested, ok := objectFields(fields["coding"]); ok {
		setField(nested, "platforms", &out.Coding.Platforms)
		setField(nested, "dailyActivity", &out.Coding.DailyActivity)
		setField(nested, "topics", &out.Coding.Topics)
	}
	if nested, ok := objectFields(fields["resume"]); ok {
		setField(nested, "template", &out.Resume.Template)
		setField(nested, "fullName", &out.Resume.FullName)
		setField(nested, "email", &out.Resume.Email)
		setField(nested, "phone", &out.Resume.Phone)
		setField(nested, "location", &out.Resume.Location)
		setField(nested, "headline", &out.Resume.Headline)
		setField(nested, "summary", &out.Resume.Summary)
		setField(nested, "education", &out.Resume.Education)
		setField(nested, "experience", &out.Resume.Experience)
		setField(nested, "projects", &out.Resume.Projects)
		setField(nested, "skills", &out.Resume.Skills)
	}
	if nested, ok := objectFields(fields["settings"]); ok {
		setField(nested, "theme", &out.Settings.Theme)
		setField(nested, "focusMinutes", &out.Settings.FocusMinutes)
		setField(nested, "breakMinutes", &out.Settings.BreakMinutes)
	}
	return out
}

// MergeMap is Merge for an already-parsed JSON object, as produced by the
// backup candidate extraction.
func MergeMap(defaults DomainState, candidate map[string]any) DomainState {
	raw, err := json.Marshal(candidate)
	if err != nil {
		return Clone(defaults)
	}
	return Merge(defaults, raw)
}

// objectFields decodes raw as a JSON object while keeping every field
// undecoded, so each can be applied or absorbed independently.
func objectFields(raw []byte) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// setField overwrites *dst only when the field is present and decodes
// cleanly as a whole. Absent, null, and type-mismatched values all keep the
// default.
func setField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return
	}
	*dst = value
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
