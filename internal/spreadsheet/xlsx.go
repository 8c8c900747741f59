package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/chnbi/termbridge/internal/core/model"
)

// ReadTermsXLSX parses candidate terms from the first sheet of a workbook.
// Same validation as CSV: empty-source rows are skipped and counted.
func ReadTermsXLSX(r io.Reader, defaultCategory string) ([]model.CandidateTerm, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
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

// WriteTermsXLSX writes the glossary as a single-sheet workbook.
func WriteTermsXLSX(w io.Writer, terms []model.Term) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []interface{}{"source", "target_a", "target_b", "category", "status", "remark"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, term := range terms {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{term.Source, term.TargetA, term.TargetB, term.Category, term.Status, term.Remark}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

// WriteRowsXLSX exports a page's rows with their translations and states.
func WriteRowsXLSX(w io.Writer, rows []model.Row) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []interface{}{"source_text", "translated_a", "translated_b", "status", "remark"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.SourceText, row.TranslatedA, row.TranslatedB, row.Status, row.Remark}
		if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}
