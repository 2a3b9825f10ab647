package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/abhisek/memoriz/internal/results"
)

// ReadCSV parses a CSV dataset.
func ReadCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row length is checked per row
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseRows(rows)
}

// WriteCSV writes recs with the standard header.
func WriteCSV(w io.Writer, recs []results.TestResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(results.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range recs {
		if err := cw.Write(formatRow(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
