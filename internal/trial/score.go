package trial

import "github.com/abhisek/memoriz/internal/sequence"

// PerfectScore is awarded for an exact match.
const PerfectScore = 10.0

// mismatchPenalty is deducted per wrong position in the visual test.
const mismatchPenalty = 2.0

// Expected returns the answer expected for seq under variant v.
func Expected(v Variant, seq []int) []int {
	if v == VariantBackward {
		return sequence.Reverse(seq)
	}
	out := make([]int, len(seq))
	copy(out, seq)
	return out
}

// MatchedPositions counts indices where response equals expected.
func MatchedPositions(expected, response []int) int {
	n := 0
	for i := range expected {
		if i < len(response) && response[i] == expected[i] {
			n++
		}
	}
	return n
}

// ScoreBackward reports whether response is exactly the reverse of seq.
func ScoreBackward(seq, response []int) bool {
	expected := sequence.Reverse(seq)
	if len(response) != len(expected) {
		return false
	}
	return MatchedPositions(expected, response) == len(expected)
}

// ScoreVisual returns the visual-recall score for a completed response:
// 10 for a perfect match, otherwise 10 minus 2 per mismatched position,
// floored at 0.
func ScoreVisual(seq, response []int) float64 {
	matched := MatchedPositions(seq, response)
	if matched == len(seq) && len(response) == len(seq) {
		return PerfectScore
	}
	return max(0, PerfectScore-mismatchPenalty*float64(len(seq)-matched))
}

// Evaluate fills the scoring fields of t from its sequence and response.
func Evaluate(t *Trial) {
	expected := t.Expected()
	t.Matched = MatchedPositions(expected, t.Response)
	switch t.Variant {
	case VariantBackward:
		t.Correct = ScoreBackward(t.Sequence, t.Response)
		if t.Correct {
			t.Score = PerfectScore
		} else {
			t.Score = 0
		}
	default:
		t.Score = ScoreVisual(t.Sequence, t.Response)
		t.Correct = t.Score == PerfectScore
	}
}
