package glossary

import (
	"strings"

	"github.com/chnbi/termbridge/internal/core/model"
)

// Field comparison rules: source and targetA fold case, targetB compares
// exactly since the third language is typically a script without case.
// All comparisons trim surrounding whitespace, and an empty field on either
// side never matches.

func foldMatch(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

func exactMatch(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return a == b
}

// matchField checks the candidate against one existing term in fixed field
// priority order and reports the first field that collides. When several
// fields match the same term only the highest-priority one is reported,
// which can misrepresent the real reason for the collision; that ambiguity
// is accepted behavior, not something to repair here.
func matchField(c model.CandidateTerm, t model.Term) (model.MatchField, bool) {
	if foldMatch(c.Source, t.Source) {
		return model.FieldSource, true
	}
	if foldMatch(c.TargetA, t.TargetA) {
		return model.FieldTargetA, true
	}
	if exactMatch(c.TargetB, t.TargetB) {
		return model.FieldTargetB, true
	}
	return "", false
}

// DetectDuplicates partitions candidates into duplicates and uniques. Each
// candidate is compared against existing terms in iteration order and stops
// at the first collision, so a candidate matches at most one existing term
// even when several would qualify. The function is pure: no side effects,
// identical inputs always produce the identical partition.
func DetectDuplicates(candidates []model.CandidateTerm, existing []model.Term) ([]model.DuplicateMatch, []model.CandidateTerm) {
	duplicates := make([]model.DuplicateMatch, 0, len(candidates))
	uniques := make([]model.CandidateTerm, 0, len(candidates))

	for _, candidate := range candidates {
		matched := false
		for _, term := range existing {
			if field, ok := matchField(candidate, term); ok {
				duplicates = append(duplicates, model.DuplicateMatch{
					Candidate:    candidate,
					Existing:     term,
					MatchedField: field,
				})
				matched = true
				break
			}
		}
		if !matched {
			uniques = append(uniques, candidate)
		}
	}

	return duplicates, uniques
}
