package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/chnbi/termbridge/internal/core/model"
)

var termHeader = []string{"source", "target_a", "target_b", "category", "remark"}

// columnIndexes maps header names to positions, case-insensitively. A file
// without a recognizable header falls back to positional columns.
func columnIndexes(first []string) (map[string]int, bool) {
	idx := make(map[string]int, len(first))
	for i, name := range first {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	_, ok := idx["source"]
	return idx, ok
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func candidateFromRecord(record []string, idx map[string]int, defaultCategory string) (model.CandidateTerm, bool) {
	get := func(name string, fallback int) string {
		if i, ok := idx[name]; ok {
			return cell(record, i)
		}
		return cell(record, fallback)
	}

	candidate := model.CandidateTerm{
		Source:   get("source", 0),
		TargetA:  get("target_a", 1),
		TargetB:  get("target_b", 2),
		Category: get("category", 3),
		Remark:   get("remark", 4),
	}
	if candidate.Source == "" {
		return model.CandidateTerm{}, false
	}
	if candidate.Category == "" {
		candidate.Category = defaultCategory
	}
	return candidate, true
}

// ReadTermsCSV parses candidate terms out of CSV data. Rows without a
// source value are dropped and returned as the skipped count.
func ReadTermsCSV(r io.Reader, defaultCategory string) ([]model.CandidateTerm, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, nil
	}

	idx, hasHeader := columnIndexes(records[0])
	rows := records
	if hasHeader {
		rows = records[1:]
	} else {
		idx = map[string]int{}
	}

	candidates := make([]model.CandidateTerm, 0, len(rows))
	skipped := 0
	for _, record := range rows {
		candidate, ok := candidateFromRecord(record, idx, defaultCategory)
		if !ok {
			skipped++
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, skipped, nil
}

// WriteTermsCSV writes the glossary in the same column layout the importer
// accepts, so an export can round-trip.
func WriteTermsCSV(w io.Writer, terms []model.Term) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(termHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, term := range terms {
		record := []string{term.Source, term.TargetA, term.TargetB, term.Category, term.Remark}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
