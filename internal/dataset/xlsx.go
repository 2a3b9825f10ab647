package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/memoriz/internal/results"
)

// SheetName is the worksheet written on export.
const SheetName = "results"

// ReadXLSX parses the first worksheet of an Excel workbook.
func ReadXLSX(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	// Trailing empty cells are not returned; pad short rows so only rows
	// with extra cells are rejected as malformed.
	for i, row := range rows {
		if i > 0 && len(row) > 0 && len(row) < len(results.Columns) {
			rows[i] = append(row, make([]string, len(results.Columns)-len(row))...)
		}
	}
	return parseRows(rows)
}

// WriteXLSX writes recs to a single-sheet workbook with a bold header.
func WriteXLSX(w io.Writer, recs []results.TestResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, len(results.Columns))
	for i, c := range results.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := cellValues(r)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "K", 18); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// cellValues keeps numbers numeric in the sheet.
func cellValues(r results.TestResult) []interface{} {
	s := formatRow(r)
	return []interface{}{
		r.ParticipantID,
		r.Age,
		int(r.Education),
		r.ImmediateMemory,
		r.WorkingMemory,
		r.VisualMemory,
		r.ReactionTimeMs,
		r.AccuracyPct,
		r.SustainedAttention,
		r.Fatigue,
		s[colDate],
	}
}
