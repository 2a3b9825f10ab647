package sequence

import (
	"errors"
	"testing"
)

func TestGenerateLengthAndRange(t *testing.T) {
	g := New(NewSource(42))
	for _, n := range []int{1, 3, 5, 7, 50} {
		seq, err := g.Generate(n)
		if err != nil {
			t.Fatalf("Generate(%d): %v", n, err)
		}
		if len(seq) != n {
			t.Fatalf("Generate(%d) len = %d", n, len(seq))
		}
		for _, d := range seq {
			if d < 0 || d > 8 {
				t.Fatalf("digit %d out of range", d)
			}
		}
	}
}

func TestGenerateNeverEmitsNine(t *testing.T) {
	g := New(NewSource(7))
	seen := make(map[int]bool)
	seq, _ := g.Generate(5000)
	for _, d := range seq {
		seen[d] = true
	}
	if seen[9] {
		t.Fatal("digit 9 generated")
	}
	for d := 0; d < DigitCount; d++ {
		if !seen[d] {
			t.Errorf("digit %d never generated in 5000 draws", d)
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	g := New(NewSource(1))
	for _, n := range []int{0, -3} {
		if _, err := g.Generate(n); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("Generate(%d) err = %v, want ErrInvalidLength", n, err)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a, _ := New(NewSource(99)).Generate(10)
	b, _ := New(NewSource(99)).Generate(10)
	if Format(a) != Format(b) {
		t.Fatalf("same seed produced %s and %s", Format(a), Format(b))
	}
}

func TestLetterExcludes(t *testing.T) {
	g := New(NewSource(3))
	for i := 0; i < 500; i++ {
		r := g.Letter('X')
		if r == 'X' || r < 'A' || r > 'Z' {
			t.Fatalf("Letter = %q", r)
		}
	}
}

func TestReverseAndFormat(t *testing.T) {
	if got := Format(Reverse([]int{3, 7, 1})); got != "173" {
		t.Errorf("Reverse = %s, want 173", got)
	}
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q", got)
	}
}
