package model

import (
	"time"

	"github.com/google/uuid"
)

// Term workflow states.
const (
	TermStatusDraft    = "draft"
	TermStatusReview   = "review"
	TermStatusApproved = "approved"
	TermStatusRejected = "rejected"
)

// Term is a persisted glossary entry. Source is the base language; TargetA
// and TargetB are the two translation languages and may be empty.
type Term struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Source    string    `gorm:"index;not null" json:"source"`
	TargetA   string    `json:"target_a"`
	TargetB   string    `json:"target_b"`
	Category  string    `json:"category"`
	Status    string    `gorm:"index;default:draft" json:"status"`
	Remark    string    `json:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CandidateTerm is a proposed glossary entry pending import. It has no ID
// because it is not persisted yet.
type CandidateTerm struct {
	Source   string `json:"source"`
	TargetA  string `json:"target_a"`
	TargetB  string `json:"target_b"`
	Category string `json:"category"`
	Remark   string `json:"remark"`
}

// ValidTermStatus reports whether s is a known workflow state.
func ValidTermStatus(s string) bool {
	switch s {
	case TermStatusDraft, TermStatusReview, TermStatusApproved, TermStatusRejected:
		return true
	}
	return false
}
