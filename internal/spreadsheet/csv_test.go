package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chnbi/termbridge/internal/core/model"
)

func TestReadTermsCSVWithHeader(t *testing.T) {
	data := `source,target_a,target_b,category,remark
Bank,Bank,银行,Finance,core term
Loan,Pinjaman,贷款,,
,orphan,孤儿,,
`
	candidates, skipped, err := ReadTermsCSV(strings.NewReader(data), "General")
	require.NoError(t, err)

	assert.Equal(t, 1, skipped, "row without source is dropped")
	require.Len(t, candidates, 2)
	assert.Equal(t, "Bank", candidates[0].Source)
	assert.Equal(t, "银行", candidates[0].TargetB)
	assert.Equal(t, "Finance", candidates[0].Category)
	assert.Equal(t, "General", candidates[1].Category, "default category fills the blank")
}

func TestReadTermsCSVPositionalFallback(t *testing.T) {
	data := "Apple,Epal,苹果\nPear,Pir,梨\n"
	candidates, skipped, err := ReadTermsCSV(strings.NewReader(data), "General")
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Epal", candidates[0].TargetA)
}

func TestReadTermsCSVShuffledColumns(t *testing.T) {
	data := "target_b,source,target_a\n银行,Bank,Bank\n"
	candidates, _, err := ReadTermsCSV(strings.NewReader(data), "General")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Bank", candidates[0].Source)
	assert.Equal(t, "银行", candidates[0].TargetB)
}

func TestReadTermsCSVEmpty(t *testing.T) {
	candidates, skipped, err := ReadTermsCSV(strings.NewReader(""), "General")
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Zero(t, skipped)
}

func TestTermsCSVRoundTrip(t *testing.T) {
	terms := []model.Term{
		{Source: "Bank", TargetA: "Bank", TargetB: "银行", Category: "Finance", Remark: "note"},
		{Source: "Loan", TargetA: "Pinjaman", TargetB: "贷款", Category: "Finance"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTermsCSV(&buf, terms))

	candidates, skipped, err := ReadTermsCSV(&buf, "General")
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Loan", candidates[1].Source)
	assert.Equal(t, "note", candidates[0].Remark)
}
