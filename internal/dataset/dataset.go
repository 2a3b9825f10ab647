// Package dataset imports and exports result records as CSV or Excel
// workbooks using the results column layout.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/memoriz/internal/results"
)

// Format is a tabular file format.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// ErrHeaderMismatch is returned when the first row is not the
	// expected header.
	ErrHeaderMismatch = errors.New("dataset header does not match")

	// ErrEmpty is returned for files without a header row.
	ErrEmpty = errors.New("dataset is empty")
)

// Column indices into results.Columns.
const (
	colID = iota
	colAge
	colEducation
	colImmediate
	colWorking
	colVisual
	colReaction
	colAccuracy
	colAttention
	colFatigue
	colDate
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	Records []results.TestResult
	Rows    int // data rows read, excluding the header
	Skipped int
	Errors  []string
}

// Import reads a dataset file.
func Import(path string) (*ImportResult, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if format == FormatXLSX {
		return ReadXLSX(f)
	}
	return ReadCSV(f)
}

// Export writes records to path in the format of its extension.
func Export(path string, recs []results.TestResult) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	if format == FormatXLSX {
		err = WriteXLSX(f, recs)
	} else {
		err = WriteCSV(f, recs)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// parseRows converts raw rows, header first, into records. Rows with the
// wrong number of cells, whose visual, working-memory or attention cells
// are not numbers, or whose integer cells are out of range are skipped.
// Any other unparsable cell reads as 0.
func parseRows(rows [][]string) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	res := &ImportResult{}
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		res.Rows++
		rec, err := parseRow(row)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func checkHeader(row []string) error {
	if len(row) != len(results.Columns) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrHeaderMismatch, len(row), len(results.Columns))
	}
	for i, want := range results.Columns {
		got := strings.TrimSpace(strings.TrimPrefix(row[i], "\ufeff"))
		if !strings.EqualFold(got, want) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrHeaderMismatch, i+1, got, want)
		}
	}
	return nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Integer cells outside these bounds drop the row instead of wrapping
// during the int conversion. A blank or unparsable cell still reads as 0.
var intBounds = map[int][2]float64{
	colAge:       {0, 150},
	colEducation: {0, float64(results.EducationHigher)},
	colReaction:  {0, float64(time.Hour / time.Millisecond)},
	colFatigue:   {0, results.MaxFatigue},
}

func parseRow(row []string) (results.TestResult, error) {
	if len(row) != len(results.Columns) {
		return results.TestResult{}, fmt.Errorf("got %d cells, want %d", len(row), len(results.Columns))
	}
	for _, idx := range []int{colVisual, colWorking, colAttention} {
		if _, ok := number(row[idx]); !ok {
			return results.TestResult{}, fmt.Errorf("%s is not a number: %q", results.Columns[idx], row[idx])
		}
	}
	ints := make(map[int]int, len(intBounds))
	for idx, b := range intBounds {
		v := math.Round(cellFloat(row[idx]))
		if v < b[0] || v > b[1] {
			return results.TestResult{}, fmt.Errorf("%s %s outside %g-%g", results.Columns[idx], strings.TrimSpace(row[idx]), b[0], b[1])
		}
		ints[idx] = int(v)
	}
	return results.TestResult{
		ParticipantID:      strings.TrimSpace(row[colID]),
		Age:                ints[colAge],
		Education:          results.Education(ints[colEducation]),
		ImmediateMemory:    cellFloat(row[colImmediate]),
		WorkingMemory:      cellFloat(row[colWorking]),
		VisualMemory:       cellFloat(row[colVisual]),
		ReactionTimeMs:     ints[colReaction],
		AccuracyPct:        cellFloat(row[colAccuracy]),
		SustainedAttention: cellFloat(row[colAttention]),
		Fatigue:            ints[colFatigue],
		Timestamp:          parseTime(row[colDate]),
	}, nil
}

func number(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func cellFloat(s string) float64 {
	v, _ := number(s)
	return v
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// timeFormat is RFC 3339 with milliseconds.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

func formatRow(r results.TestResult) []string {
	date := ""
	if !r.Timestamp.IsZero() {
		date = r.Timestamp.UTC().Format(timeFormat)
	}
	return []string{
		r.ParticipantID,
		strconv.Itoa(r.Age),
		strconv.Itoa(int(r.Education)),
		formatScore(r.ImmediateMemory),
		formatScore(r.WorkingMemory),
		formatScore(r.VisualMemory),
		strconv.Itoa(r.ReactionTimeMs),
		formatScore(r.AccuracyPct),
		formatScore(r.SustainedAttention),
		strconv.Itoa(r.Fatigue),
		date,
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
