package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/results"
)

const (
	terminalWidthBackup = 80
	minBarWidth         = 10
	maxBarWidth         = 40
)

// RenderSummary writes the population summary.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Valid == 0 {
		_, err := fmt.Fprintln(w, "No valid results found.")
		return err
	}

	width := barWidth()
	var b strings.Builder
	fmt.Fprintf(&b, "Records: %d (%d valid)\n\n", s.Total, s.Valid)

	b.WriteString("Average scores\n")
	scores := []struct {
		name string
		v    float64
	}{
		{"Visual memory", s.Averages.Visual},
		{"Working memory", s.Averages.Working},
		{"Sustained attention", s.Averages.Attention},
		{"Immediate memory", s.Averages.Immediate},
	}
	rows := make([][]string, 0, len(scores))
	for _, sc := range scores {
		rows = append(rows, []string{sc.name, fmt.Sprintf("%.1f", sc.v), bar(sc.v, results.MaxScore, width)})
	}
	rows = append(rows,
		[]string{"Accuracy", fmt.Sprintf("%.1f%%", s.Averages.AccuracyPct), bar(s.Averages.AccuracyPct, 100, width)},
		[]string{"Reaction time", fmt.Sprintf("%.0f ms", s.Averages.ReactionMs), ""},
	)
	writeLines(&b, formatTable(nil, rows, map[int]bool{1: true}))

	b.WriteString("\nEducation\n")
	rows = rows[:0]
	for _, e := range []results.Education{results.EducationBasic, results.EducationSecondary, results.EducationHigher} {
		rows = append(rows, []string{e.DisplayName(), strconv.Itoa(s.Education[e]), fmt.Sprintf("%.1f%%", s.EducationShare(e))})
	}
	writeLines(&b, formatTable(nil, rows, map[int]bool{1: true, 2: true}))

	b.WriteString("\nPerformance level\n")
	rows = rows[:0]
	for _, l := range classify.Labels {
		rows = append(rows, []string{l.String(), strconv.Itoa(s.Labels[l])})
	}
	writeLines(&b, formatTable(nil, rows, map[int]bool{1: true}))

	if len(s.Timeline) > 1 {
		b.WriteString("\nTrend (oldest first)\n")
		vals := make([]float64, len(s.Timeline))
		for i, p := range s.Timeline {
			vals[i] = p.MemoryAvg
		}
		fmt.Fprintf(&b, "memory avg  %s\n", Sparkline(vals))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderResults writes one row per record, newest last.
func RenderResults(w io.Writer, recs []results.TestResult) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	headers := []string{"ID", "Date", "Age", "Edu", "Visual", "WM", "Attn", "Avg", "Level"}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		date := "-"
		if !r.Timestamp.IsZero() {
			date = r.Timestamp.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			r.ParticipantID,
			date,
			strconv.Itoa(r.Age),
			strconv.Itoa(int(r.Education)),
			fmt.Sprintf("%.1f", r.VisualMemory),
			fmt.Sprintf("%.1f", r.WorkingMemory),
			fmt.Sprintf("%.1f", r.SustainedAttention),
			fmt.Sprintf("%.2f", r.CoreAverage()),
			classify.TrueLabel(r).String(),
		})
	}
	var b strings.Builder
	writeLines(&b, formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true}))
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMetrics writes a confusion matrix and per-label metrics.
func RenderMetrics(w io.Writer, m classify.Metrics) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Accuracy: %.1f%% (%d/%d)\n\n", m.Accuracy*100, m.Correct, m.Total)

	headers := []string{"true \\ pred"}
	for _, l := range classify.Labels {
		headers = append(headers, l.String())
	}
	rows := make([][]string, 0, len(classify.Labels))
	for _, t := range classify.Labels {
		row := []string{t.String()}
		for _, p := range classify.Labels {
			row = append(row, strconv.Itoa(m.Matrix[t][p]))
		}
		rows = append(rows, row)
	}
	writeLines(&b, formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true}))

	b.WriteString("\n")
	rows = rows[:0]
	for _, c := range m.PerClass {
		rows = append(rows, []string{
			c.Label.String(),
			fmt.Sprintf("%.2f", c.Precision),
			fmt.Sprintf("%.2f", c.Recall),
			fmt.Sprintf("%.2f", c.F1),
			strconv.Itoa(c.Support),
		})
	}
	writeLines(&b, formatTable([]string{"Label", "Precision", "Recall", "F1", "Support"}, rows, map[int]bool{1: true, 2: true, 3: true, 4: true}))
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderImportance writes the feature importance ranking.
func RenderImportance(w io.Writer, fs []classify.Feature) error {
	width := barWidth()
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		rows = append(rows, []string{f.Name, fmt.Sprintf("%.0f%%", f.Weight*100), bar(f.Weight, fs[0].Weight, width)})
	}
	var b strings.Builder
	writeLines(&b, formatTable(nil, rows, map[int]bool{1: true}))
	_, err := io.WriteString(w, b.String())
	return err
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
}

const sparkChars = " .:-=+*#%@"

// Sparkline renders values as a single line of ASCII density glyphs.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi-lo < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
		b.WriteByte(sparkChars[min(len(sparkChars)-1, max(0, idx))])
	}
	return b.String()
}

func barWidth() int {
	return min(maxBarWidth, max(minBarWidth, terminalWidth()/3))
}

func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
