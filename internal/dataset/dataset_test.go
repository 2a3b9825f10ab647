package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoriz/internal/results"
)

const header = "participante_id,edad,nivel_educacion,memoria_inmediata,memoria_trabajo,memoria_visual,tiempo_reaccion,precision_respuestas,atencion_sostenida,fatiga_cognitiva,fecha\n"

func TestReadCSVRules(t *testing.T) {
	input := header +
		"P1,34,3,7.2,8,9,1200,85,8.5,2,2025-03-01T10:00:00.000Z\n" +
		"P2,n/a,2,x,6,7,,70,6,1,garbage\n" + // soft failures read as 0
		"P3,40,2,5,abc,7,900,60,6,2,2025-03-01\n" + // working memory not numeric
		"P4,40,2,5,6\n" + // short row
		",,,,,,,,,,\n" + // blank row ignored
		"P5,29,1,4,5,6,1000,50,7,3,2025-03-02T08:30:00Z,extra\n" // long row

	res, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, 3, res.Skipped)
	require.Len(t, res.Records, 2)

	p1 := res.Records[0]
	assert.Equal(t, "P1", p1.ParticipantID)
	assert.Equal(t, 34, p1.Age)
	assert.Equal(t, results.EducationHigher, p1.Education)
	assert.Equal(t, 9.0, p1.VisualMemory)
	assert.Equal(t, 1200, p1.ReactionTimeMs)
	assert.True(t, p1.Timestamp.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))

	p2 := res.Records[1]
	assert.Equal(t, 0, p2.Age)
	assert.Equal(t, 0.0, p2.ImmediateMemory)
	assert.Equal(t, 0, p2.ReactionTimeMs)
	assert.True(t, p2.Timestamp.IsZero())
	assert.Equal(t, 6.0, p2.WorkingMemory)
}

func TestReadCSVDropsOutOfRangeIntegers(t *testing.T) {
	input := header +
		"P1,1e30,3,7,8,9,1200,85,8.5,2,2025-03-01\n" +
		"P2,34,3,7,8,9,1e30,85,8.5,2,2025-03-01\n" +
		"P3,34,3,7,8,9,1200,85,8.5,-1e30,2025-03-01\n" +
		"P4,34,9,7,8,9,1200,85,8.5,2,2025-03-01\n" +
		"P5,34,3,7,8,9,1200,85,8.5,2,2025-03-01\n"

	res, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, 4, res.Skipped)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "P5", res.Records[0].ParticipantID)

	require.Len(t, res.Errors, 4)
	assert.Contains(t, res.Errors[0], "row 2: edad 1e30 outside 0-150")
	assert.Contains(t, res.Errors[1], "tiempo_reaccion")
	assert.Contains(t, res.Errors[2], "fatiga_cognitiva")
	assert.Contains(t, res.Errors[3], "nivel_educacion")
}

func TestReadCSVHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,age\nP1,30\n"))
	assert.True(t, errors.Is(err, ErrHeaderMismatch), "err = %v", err)

	_, err = ReadCSV(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmpty), "err = %v", err)

	// Header case and a leading byte-order mark are tolerated.
	res, err := ReadCSV(strings.NewReader("\ufeff" + strings.ToUpper(header)))
	require.NoError(t, err)
	assert.Empty(t, res.Records)
}

func sample() []results.TestResult {
	return []results.TestResult{
		{
			ParticipantID: "EVAL_1", Age: 30, Education: results.EducationSecondary,
			ImmediateMemory: 5.4, WorkingMemory: 6, VisualMemory: 8, ReactionTimeMs: 950,
			AccuracyPct: 75, SustainedAttention: 7.5, Fatigue: 2,
			Timestamp: time.Date(2025, 4, 2, 9, 30, 0, 123e6, time.UTC),
		},
		{
			ParticipantID: "WM_2", Age: 61, Education: results.EducationBasic,
			ImmediateMemory: 2.7, WorkingMemory: 3, VisualMemory: 7.5, ReactionTimeMs: 1500,
			AccuracyPct: 30, SustainedAttention: 7.5, Fatigue: 2,
			Timestamp: time.Date(2025, 4, 3, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestCSVExportImport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))
	assert.True(t, strings.HasPrefix(buf.String(), header))
	assert.Contains(t, buf.String(), "2025-04-02T09:30:00.123Z")

	res, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	assert.Equal(t, sample(), res.Records)
}

func TestXLSXExportImport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample()))

	res, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	got := res.Records[1]
	assert.Equal(t, "WM_2", got.ParticipantID)
	assert.Equal(t, 61, got.Age)
	assert.Equal(t, results.EducationBasic, got.Education)
	assert.InDelta(t, 7.5, got.VisualMemory, 1e-9)
	assert.InDelta(t, 3.0, got.WorkingMemory, 1e-9)
	assert.Equal(t, 1500, got.ReactionTimeMs)
	assert.True(t, got.Timestamp.Equal(sample()[1].Timestamp))
}

func TestImportExportFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.csv", "out.xlsx"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Export(path, sample()), name)
		res, err := Import(path)
		require.NoError(t, err, name)
		assert.Len(t, res.Records, 2, name)
	}

	_, err := Import(filepath.Join(dir, "data.json"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
