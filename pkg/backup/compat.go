package backup

// Compatibility is the verdict shown in the restore preview.
type Compatibility string

const (
	// CompatibilityLegacy marks an unversioned (or non-numeric version) dump.
	// Legacy dumps restore through the same merge policy.
	CompatibilityLegacy Compatibility = "legacy"
	// CompatibilityCompatible marks a document at CurrentVersion.
	CompatibilityCompatible Compatibility = "compatible"
	// CompatibilityIncompatible marks any other version; applying it is
	// blocked at the flow level.
	CompatibilityIncompatible Compatibility = "incompatible"
)

// Resolution carries the version metadata read from a raw payload. Version
// is nil when the field is absent or not numeric.
type Resolution struct {
	Version       *int
	ExportedAt    string
	Compatibility Compatibility
}

// ResolveCompatibility classifies the raw (unwrapped) payload. The version
// must be numeric; anything else is treated as absent, hence legacy.
func ResolveCompatibility(payload any) Resolution {
	root, ok := payload.(map[string]any)
	if !ok {
		return Resolution{Compatibility: CompatibilityLegacy}
	}

	out := Resolution{Compatibility: CompatibilityLegacy}
	if text, ok := root["exportedAt"].(string); ok {
		out.ExportedAt = text
	}
	version, ok := root["version"].(float64)
	if !ok {
		return out
	}
	v := int(version)
	out.Version = &v
	if version == float64(CurrentVersion) {
		out.Compatibility = CompatibilityCompatible
	} else {
		out.Compatibility = CompatibilityIncompatible
	}
	return out
}

// Snapshot counts the entities a candidate would restore, for the
// user-facing preview. Counting never applies anything.
type Snapshot struct {
	Tasks        int
	Exams        int
	Goals        int
	Resources    int
	Applications int
	Notes        int
}

// BuildSnapshot tallies the payload's collections plus the already-filtered
// note count.
func BuildSnapshot(payload any, noteCount int) Snapshot {
	snapshot := Snapshot{Notes: noteCount}
	root, ok := ExtractCandidate(payload)
	if !ok {
		return snapshot
	}
	snapshot.Tasks = arrayLen(root["tasks"])
	snapshot.Exams = arrayLen(root["exams"])
	snapshot.Goals = arrayLen(root["goals"])
	snapshot.Resources = arrayLen(root["resources"])
	if placement, ok := root["placement"].(map[string]any); ok {
		snapshot.Applications = arrayLen(placement["applications"])
	}
	return snapshot
}

func arrayLen(value any) int {
	items, ok := value.([]any)
	if !ok {
		return 0
	}
	return len(items)
}
