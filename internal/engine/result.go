package engine

// Variant statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusDryRun  = "dry-run"
	StatusExplain = "explain"
)

// Result is the structured output of a build.
type Result struct {
	RunID         string          `json:"run_id"`
	Success       bool            `json:"success"`
	FailedVariant string          `json:"failed_variant,omitempty"`
	Declared      []string        `json:"declared"`
	Referenced    []string        `json:"referenced"`
	Unreferenced  []string        `json:"unreferenced,omitempty"`
	Total         int             `json:"total_variants"`
	Variants      []VariantResult `json:"variants"`
}

// VariantResult describes the outcome of one variant.
type VariantResult struct {
	Variant     string              `json:"variant"`
	Pairs       map[string]any      `json:"pairs"`
	Status      string              `json:"status"`
	FailedPhase string              `json:"failed_phase,omitempty"`
	Duration    string              `json:"duration,omitempty"`
	Commands    map[string][]string `json:"commands,omitempty"` // rendered, for dry-run
}
