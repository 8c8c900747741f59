package glossary

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chnbi/termbridge/internal/core/model"
)

func term(source, targetA, targetB string) model.Term {
	return model.Term{ID: uuid.New(), Source: source, TargetA: targetA, TargetB: targetB}
}

func TestDetectEmptyInputs(t *testing.T) {
	duplicates, uniques := DetectDuplicates(nil, nil)
	assert.Empty(t, duplicates)
	assert.Empty(t, uniques)

	candidates := []model.CandidateTerm{{Source: "Bank"}, {Source: "Loan"}}
	duplicates, uniques = DetectDuplicates(candidates, nil)
	assert.Empty(t, duplicates)
	assert.Equal(t, candidates, uniques)
}

func TestDetectEmptyFieldsNeverCollide(t *testing.T) {
	// Both sides have empty target fields; empty-vs-empty is not a match.
	candidates := []model.CandidateTerm{{Source: "Bank", TargetA: "", TargetB: ""}}
	existing := []model.Term{term("Loan", "", "")}

	duplicates, uniques := DetectDuplicates(candidates, existing)
	assert.Empty(t, duplicates)
	assert.Len(t, uniques, 1)
}

func TestDetectFirstExistingMatchWins(t *testing.T) {
	t1 := term("Apple", "", "")
	t2 := term("Apple", "", "")
	candidates := []model.CandidateTerm{{Source: "Apple"}}

	duplicates, uniques := DetectDuplicates(candidates, []model.Term{t1, t2})
	require.Len(t, duplicates, 1)
	assert.Empty(t, uniques)
	assert.Equal(t, t1.ID, duplicates[0].Existing.ID)
}

func TestDetectFieldPriorityOrder(t *testing.T) {
	// Source and targetB both match; the reported field must be source.
	existing := []model.Term{term("Apple", "Berbeza", "苹果")}
	candidates := []model.CandidateTerm{{Source: "Apple", TargetA: "Epal", TargetB: "苹果"}}

	duplicates, _ := DetectDuplicates(candidates, existing)
	require.Len(t, duplicates, 1)
	assert.Equal(t, model.FieldSource, duplicates[0].MatchedField)
}

func TestDetectTargetAMatchReported(t *testing.T) {
	existing := []model.Term{term("Loan", "Pinjaman", "贷款")}
	candidates := []model.CandidateTerm{{Source: "Credit", TargetA: "pinjaman"}}

	duplicates, _ := DetectDuplicates(candidates, existing)
	require.Len(t, duplicates, 1)
	assert.Equal(t, model.FieldTargetA, duplicates[0].MatchedField)
}

func TestDetectSourceCaseAndWhitespaceInsensitive(t *testing.T) {
	existing := []model.Term{term("Interest Rate", "", "")}
	candidates := []model.CandidateTerm{{Source: "  interest rate "}}

	duplicates, _ := DetectDuplicates(candidates, existing)
	assert.Len(t, duplicates, 1)
}

func TestDetectTargetBIsCaseSensitive(t *testing.T) {
	existing := []model.Term{term("A", "", "Abc")}

	duplicates, _ := DetectDuplicates([]model.CandidateTerm{{Source: "B", TargetB: "abc"}}, existing)
	assert.Empty(t, duplicates, "targetB does not fold case")

	duplicates, _ = DetectDuplicates([]model.CandidateTerm{{Source: "B", TargetB: " Abc "}}, existing)
	assert.Len(t, duplicates, 1, "targetB still trims whitespace")
}

func TestDetectCandidateMatchesAtMostOnce(t *testing.T) {
	// The candidate would match t1 on targetA and t2 on source; only the
	// first existing term is reported.
	t1 := term("Loan", "Epal", "")
	t2 := term("Apple", "", "")
	candidates := []model.CandidateTerm{{Source: "Apple", TargetA: "Epal"}}

	duplicates, _ := DetectDuplicates(candidates, []model.Term{t1, t2})
	require.Len(t, duplicates, 1)
	assert.Equal(t, t1.ID, duplicates[0].Existing.ID)
	assert.Equal(t, model.FieldTargetA, duplicates[0].MatchedField)
}

func TestDetectPreservesUniqueOrder(t *testing.T) {
	existing := []model.Term{term("Known", "", "")}
	candidates := []model.CandidateTerm{
		{Source: "Zebra"},
		{Source: "Known"},
		{Source: "Alpha"},
	}

	duplicates, uniques := DetectDuplicates(candidates, existing)
	require.Len(t, duplicates, 1)
	require.Len(t, uniques, 2)
	assert.Equal(t, "Zebra", uniques[0].Source)
	assert.Equal(t, "Alpha", uniques[1].Source)
}

func TestDetectIdempotent(t *testing.T) {
	existing := []model.Term{
		term("Apple", "Epal", "苹果"),
		term("Bank", "Bank", "银行"),
	}
	candidates := []model.CandidateTerm{
		{Source: "apple"},
		{Source: "Credit", TargetA: "bank"},
		{Source: "Fresh"},
	}

	dup1, uniq1 := DetectDuplicates(candidates, existing)
	dup2, uniq2 := DetectDuplicates(candidates, existing)
	assert.Equal(t, dup1, dup2)
	assert.Equal(t, uniq1, uniq2)
}
