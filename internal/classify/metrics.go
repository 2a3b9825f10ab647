package classify

// ConfusionMatrix counts predictions: [true][predicted], in Labels order.
type ConfusionMatrix [3][3]int

// Add records one prediction.
func (m *ConfusionMatrix) Add(truth, pred Label) {
	m[truth][pred]++
}

// Total is the sum of all cells.
func (m ConfusionMatrix) Total() int {
	n := 0
	for i := range m {
		for j := range m[i] {
			n += m[i][j]
		}
	}
	return n
}

// Trace is the number of correct predictions.
func (m ConfusionMatrix) Trace() int {
	return m[0][0] + m[1][1] + m[2][2]
}

// ClassMetrics holds per-label precision, recall and F1.
type ClassMetrics struct {
	Label     Label
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Metrics summarizes a labelled evaluation.
type Metrics struct {
	Matrix   ConfusionMatrix
	Total    int
	Correct  int
	Accuracy float64
	PerClass []ClassMetrics
}

// MacroF1 averages F1 over the labels.
func (m Metrics) MacroF1() float64 {
	if len(m.PerClass) == 0 {
		return 0
	}
	var sum float64
	for _, c := range m.PerClass {
		sum += c.F1
	}
	return sum / float64(len(m.PerClass))
}

// Class returns the metrics for l.
func (m Metrics) Class(l Label) ClassMetrics {
	for _, c := range m.PerClass {
		if c.Label == l {
			return c
		}
	}
	return ClassMetrics{Label: l}
}

// Evaluate builds metrics from paired true and predicted labels. Pairs
// beyond the shorter slice are ignored. A zero denominator yields 0.
func Evaluate(truth, pred []Label) Metrics {
	var m ConfusionMatrix
	for i := 0; i < len(truth) && i < len(pred); i++ {
		m.Add(truth[i], pred[i])
	}
	return MetricsFromMatrix(m)
}

// MetricsFromMatrix derives metrics from a confusion matrix.
func MetricsFromMatrix(m ConfusionMatrix) Metrics {
	out := Metrics{
		Matrix:  m,
		Total:   m.Total(),
		Correct: m.Trace(),
	}
	out.Accuracy = ratio(out.Correct, out.Total)

	for _, l := range Labels {
		tp := m[l][l]
		predicted, actual := 0, 0
		for _, o := range Labels {
			predicted += m[o][l]
			actual += m[l][o]
		}
		c := ClassMetrics{
			Label:     l,
			Precision: ratio(tp, predicted),
			Recall:    ratio(tp, actual),
			Support:   actual,
		}
		if c.Precision+c.Recall > 0 {
			c.F1 = 2 * c.Precision * c.Recall / (c.Precision + c.Recall)
		}
		out.PerClass = append(out.PerClass, c)
	}
	return out
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
