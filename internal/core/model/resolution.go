package model

import "github.com/google/uuid"

// MatchField identifies which field pair triggered a duplicate match.
type MatchField string

const (
	FieldSource  MatchField = "source"
	FieldTargetA MatchField = "target_a"
	FieldTargetB MatchField = "target_b"
)

// DuplicateMatch pairs an incoming candidate with the existing term it
// collided with. Transient: built per import attempt, never persisted.
type DuplicateMatch struct {
	Candidate    CandidateTerm `json:"candidate"`
	Existing     Term          `json:"existing"`
	MatchedField MatchField    `json:"matched_field"`
}

// ResolutionAction is the user's bulk decision for selected duplicates.
type ResolutionAction string

const (
	ActionOverride ResolutionAction = "override"
	ActionIgnore   ResolutionAction = "ignore"
)

// ResolutionRequest scopes an action to a subset of the duplicate list.
// Existing ids absent from SelectedExistingIDs are left untouched.
type ResolutionRequest struct {
	Action              ResolutionAction `json:"action"`
	SelectedExistingIDs []uuid.UUID      `json:"selected_existing_ids"`
}

// ItemFailure records one failed store call inside a best-effort batch.
type ItemFailure struct {
	// ID is the existing term id for overrides, empty for inserts.
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
	Op     string `json:"op"`   // "override" or "insert"
	Kind   string `json:"kind"` // store error classification
	Reason string `json:"reason"`
}

// ResolutionSummary is the aggregate outcome of one resolution batch.
// Unselected duplicates appear in no counter at all.
type ResolutionSummary struct {
	Overridden int           `json:"overridden"`
	Ignored    int           `json:"ignored"`
	Inserted   int           `json:"inserted"`
	Invalid    int           `json:"invalid"`
	Failures   []ItemFailure `json:"failures,omitempty"`
}
