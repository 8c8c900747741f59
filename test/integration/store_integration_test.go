//go:build integration

package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chnbi/termbridge/internal/config"
	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
	"github.com/chnbi/termbridge/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	}
	st, err := store.Open(cfg, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, st.AutoMigrate())
	return st
}

func TestTermInsertDefaults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	term, err := st.Terms().Insert(ctx, model.CandidateTerm{
		Source: "Bank", TargetA: "Bank", TargetB: "银行", Category: "Finance",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "", term.ID.String())
	assert.Equal(t, model.TermStatusDraft, term.Status)
	assert.False(t, term.CreatedAt.IsZero())
}

func TestTermPartialUpdate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	term, err := st.Terms().Insert(ctx, model.CandidateTerm{
		Source: "Loan", TargetA: "Pinjaman", TargetB: "贷款", Remark: "keep me",
	})
	require.NoError(t, err)

	updated, err := st.Terms().Update(ctx, term.ID, map[string]interface{}{
		"target_a": "Pinjaman Baharu",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pinjaman Baharu", updated.TargetA)
	assert.Equal(t, "Loan", updated.Source, "unsupplied columns stay put")
	assert.Equal(t, "keep me", updated.Remark)
}

func TestTermUpdateRejectsUnknownColumn(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	term, err := st.Terms().Insert(ctx, model.CandidateTerm{Source: "X"})
	require.NoError(t, err)

	_, err = st.Terms().Update(ctx, term.ID, map[string]interface{}{"id": "nope"})
	require.Error(t, err)
	assert.Equal(t, store.KindInvalid, store.KindOf(err))
}

func TestTermStatusWorkflow(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	term, err := st.Terms().Insert(ctx, model.CandidateTerm{Source: "Rate"})
	require.NoError(t, err)

	term, err = st.Terms().UpdateStatus(ctx, term.ID, model.TermStatusReview)
	require.NoError(t, err)
	term, err = st.Terms().UpdateStatus(ctx, term.ID, model.TermStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.TermStatusApproved, term.Status)

	approved, err := st.Terms().ListByStatus(ctx, model.TermStatusApproved)
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	_, err = st.Terms().UpdateStatus(ctx, term.ID, "published")
	assert.Error(t, err)
}

func TestRowStatusCounts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	project := &model.Project{Name: "Demo"}
	require.NoError(t, st.Projects().Create(ctx, project))
	page := &model.Page{ProjectID: project.ID, Name: "Page 1"}
	require.NoError(t, st.Pages().Create(ctx, page))

	rows := []*model.Row{
		{PageID: page.ID, SourceText: "a"},
		{PageID: page.ID, SourceText: "b"},
		{PageID: page.ID, SourceText: "c", Status: model.RowStatusTranslated},
	}
	require.NoError(t, st.Rows().CreateBatch(ctx, rows))

	counts, err := st.Rows().StatusCounts(ctx, page.ID)
	require.NoError(t, err)

	got := map[string]int64{}
	for _, bucket := range counts {
		got[bucket.Status] = bucket.Count
	}
	assert.Equal(t, int64(2), got[model.RowStatusPending])
	assert.Equal(t, int64(1), got[model.RowStatusTranslated])

	projectCounts, err := st.Projects().StatusCounts(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, projectCounts, 2)
}

func TestProjectCascadeDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	project := &model.Project{Name: "Doomed"}
	require.NoError(t, st.Projects().Create(ctx, project))
	page := &model.Page{ProjectID: project.ID, Name: "Page"}
	require.NoError(t, st.Pages().Create(ctx, page))
	require.NoError(t, st.Rows().Create(ctx, &model.Row{PageID: page.ID, SourceText: "x"}))

	require.NoError(t, st.Projects().Delete(ctx, project.ID))

	_, err := st.Pages().Get(ctx, page.ID)
	assert.Equal(t, store.KindNotFound, store.KindOf(err))
}

func TestDefaultTemplateIsExclusive(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first := &model.PromptTemplate{Name: "First", Body: "one", IsDefault: true}
	require.NoError(t, st.Templates().Create(ctx, first))
	second := &model.PromptTemplate{Name: "Second", Body: "two", IsDefault: true}
	require.NoError(t, st.Templates().Create(ctx, second))

	def, err := st.Templates().GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID)
}
