package glossary

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
	"github.com/chnbi/termbridge/internal/store"
)

func newTestEngine(mock *MockTermStore) *Engine {
	return NewEngine(mock, logger.NewNop(), 2)
}

func TestResolveNilRequest(t *testing.T) {
	engine := newTestEngine(NewMockTermStore())
	_, err := engine.Resolve(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

func TestResolveUnknownAction(t *testing.T) {
	engine := newTestEngine(NewMockTermStore())
	_, err := engine.Resolve(context.Background(), nil, &model.ResolutionRequest{Action: "merge"}, nil)
	assert.Error(t, err)
}

func TestResolveOverrideMergesFieldLevel(t *testing.T) {
	existing := model.Term{
		ID: uuid.New(), Source: "Old", TargetA: "ExistingMY", TargetB: "OldZH",
	}
	mock := NewMockTermStore(existing)
	engine := newTestEngine(mock)

	duplicates := []model.DuplicateMatch{{
		Candidate:    model.CandidateTerm{Source: "X", TargetA: "", TargetB: "Y"},
		Existing:     existing,
		MatchedField: model.FieldSource,
	}}
	req := &model.ResolutionRequest{
		Action:              model.ActionOverride,
		SelectedExistingIDs: []uuid.UUID{existing.ID},
	}

	summary, err := engine.Resolve(context.Background(), duplicates, req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Overridden)

	updated, ok := mock.Find(existing.ID)
	require.True(t, ok)
	assert.Equal(t, "X", updated.Source)
	assert.Equal(t, "ExistingMY", updated.TargetA, "empty candidate field must not blank existing value")
	assert.Equal(t, "Y", updated.TargetB)
}

func TestResolveUnselectedDuplicatesUntouched(t *testing.T) {
	t1 := model.Term{ID: uuid.New(), Source: "One", TargetA: "Satu"}
	t2 := model.Term{ID: uuid.New(), Source: "Two", TargetA: "Dua"}
	t3 := model.Term{ID: uuid.New(), Source: "Three", TargetA: "Tiga"}
	mock := NewMockTermStore(t1, t2, t3)
	engine := newTestEngine(mock)

	duplicates := []model.DuplicateMatch{
		{Candidate: model.CandidateTerm{Source: "one-new"}, Existing: t1, MatchedField: model.FieldSource},
		{Candidate: model.CandidateTerm{Source: "two-new"}, Existing: t2, MatchedField: model.FieldSource},
		{Candidate: model.CandidateTerm{Source: "three-new"}, Existing: t3, MatchedField: model.FieldSource},
	}
	req := &model.ResolutionRequest{
		Action:              model.ActionOverride,
		SelectedExistingIDs: []uuid.UUID{t2.ID},
	}

	summary, err := engine.Resolve(context.Background(), duplicates, req, nil)
	require.NoError(t, err)

	// The selection set scopes the action: the other two terms stay exactly
	// as they were and are counted in neither overridden nor ignored.
	assert.Equal(t, 1, summary.Overridden)
	assert.Equal(t, 0, summary.Ignored)

	got1, _ := mock.Find(t1.ID)
	got3, _ := mock.Find(t3.ID)
	assert.Equal(t, t1, got1)
	assert.Equal(t, t3, got3)
}

func TestResolveIgnoreCountsWithoutStoreCalls(t *testing.T) {
	t1 := model.Term{ID: uuid.New(), Source: "One"}
	t2 := model.Term{ID: uuid.New(), Source: "Two"}
	mock := NewMockTermStore(t1, t2)
	engine := newTestEngine(mock)

	duplicates := []model.DuplicateMatch{
		{Candidate: model.CandidateTerm{Source: "a"}, Existing: t1, MatchedField: model.FieldSource},
		{Candidate: model.CandidateTerm{Source: "b"}, Existing: t2, MatchedField: model.FieldSource},
	}
	req := &model.ResolutionRequest{
		Action:              model.ActionIgnore,
		SelectedExistingIDs: []uuid.UUID{t1.ID, t2.ID},
	}

	summary, err := engine.Resolve(context.Background(), duplicates, req, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Ignored)
	assert.Equal(t, 0, summary.Overridden)
	assert.Empty(t, mock.UpdatedFields)
}

func TestResolveUniquesAlwaysInserted(t *testing.T) {
	t1 := model.Term{ID: uuid.New(), Source: "One"}
	mock := NewMockTermStore(t1)
	engine := newTestEngine(mock)

	duplicates := []model.DuplicateMatch{
		{Candidate: model.CandidateTerm{Source: "one"}, Existing: t1, MatchedField: model.FieldSource},
	}
	uniques := []model.CandidateTerm{{Source: "Fresh"}, {Source: "Newer"}}

	// All duplicates unselected; uniques still go in.
	req := &model.ResolutionRequest{Action: model.ActionIgnore}
	summary, err := engine.Resolve(context.Background(), duplicates, req, uniques)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted)
	assert.ElementsMatch(t, []string{"Fresh", "Newer"}, mock.InsertedSources)
}

func TestResolveBatchResilience(t *testing.T) {
	t1 := model.Term{ID: uuid.New(), Source: "One"}
	t2 := model.Term{ID: uuid.New(), Source: "Two"}
	mock := NewMockTermStore(t1, t2)
	mock.UpdateErrFor[t1.ID] = &store.Error{Kind: store.KindConflict, Op: "update term", Err: assert.AnError}
	engine := newTestEngine(mock)

	duplicates := []model.DuplicateMatch{
		{Candidate: model.CandidateTerm{Source: "one-new"}, Existing: t1, MatchedField: model.FieldSource},
		{Candidate: model.CandidateTerm{Source: "two-new"}, Existing: t2, MatchedField: model.FieldSource},
	}
	req := &model.ResolutionRequest{
		Action:              model.ActionOverride,
		SelectedExistingIDs: []uuid.UUID{t1.ID, t2.ID},
	}
	uniques := []model.CandidateTerm{{Source: "Fresh"}}

	// One CONFLICT must not abort the rest of the batch or raise.
	summary, err := engine.Resolve(context.Background(), duplicates, req, uniques)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Overridden)
	assert.Equal(t, 1, summary.Inserted)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, string(store.KindConflict), summary.Failures[0].Kind)
	assert.Equal(t, "override", summary.Failures[0].Op)
}

func TestResolveSelectedIDNotInDuplicateList(t *testing.T) {
	t1 := model.Term{ID: uuid.New(), Source: "One"}
	mock := NewMockTermStore(t1)
	engine := newTestEngine(mock)

	duplicates := []model.DuplicateMatch{
		{Candidate: model.CandidateTerm{Source: "one"}, Existing: t1, MatchedField: model.FieldSource},
	}
	stranger := uuid.New()
	req := &model.ResolutionRequest{
		Action:              model.ActionOverride,
		SelectedExistingIDs: []uuid.UUID{stranger, t1.ID},
	}

	summary, err := engine.Resolve(context.Background(), duplicates, req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Invalid, "unknown selected id is excluded and counted")
	assert.Equal(t, 1, summary.Overridden)
}

func TestResolveRejectsRepeatedExistingIDs(t *testing.T) {
	t1 := model.Term{ID: uuid.New(), Source: "One"}
	mock := NewMockTermStore(t1)
	engine := newTestEngine(mock)

	// A caller re-entering with the same existing id twice must not produce
	// two racing updates for that term.
	dup := model.DuplicateMatch{
		Candidate: model.CandidateTerm{Source: "one-new"}, Existing: t1, MatchedField: model.FieldSource,
	}
	req := &model.ResolutionRequest{
		Action:              model.ActionOverride,
		SelectedExistingIDs: []uuid.UUID{t1.ID},
	}

	summary, err := engine.Resolve(context.Background(), []model.DuplicateMatch{dup, dup}, req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Overridden)
	assert.Equal(t, 1, summary.Invalid)
}

func TestResolveSkipsEmptySourceUnique(t *testing.T) {
	mock := NewMockTermStore()
	engine := newTestEngine(mock)

	uniques := []model.CandidateTerm{{Source: "   "}, {Source: "Valid"}}
	req := &model.ResolutionRequest{Action: model.ActionIgnore}

	summary, err := engine.Resolve(context.Background(), nil, req, uniques)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Invalid)
}
