package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chnbi/termbridge/internal/core/model"
)

func TestTermsXLSXRoundTrip(t *testing.T) {
	terms := []model.Term{
		{Source: "Bank", TargetA: "Bank", TargetB: "银行", Category: "Finance", Status: model.TermStatusApproved},
		{Source: "Loan", TargetA: "Pinjaman", TargetB: "贷款", Category: "Finance", Status: model.TermStatusDraft},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTermsXLSX(&buf, terms))

	candidates, skipped, err := ReadTermsXLSX(&buf, "General")
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Bank", candidates[0].Source)
	assert.Equal(t, "贷款", candidates[1].TargetB)
}

func TestReadTermsXLSXSkipsEmptySource(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTermsXLSX(&buf, []model.Term{
		{Source: "Valid", TargetA: "Sah"},
		{Source: "", TargetA: "orphan"},
	}))

	candidates, skipped, err := ReadTermsXLSX(&buf, "General")
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Valid", candidates[0].Source)
}

func TestWriteRowsXLSX(t *testing.T) {
	rows := []model.Row{
		{SourceText: "Hello", TranslatedA: "Helo", TranslatedB: "你好", Status: model.RowStatusTranslated},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteRowsXLSX(&buf, rows))
	assert.NotZero(t, buf.Len())
}
