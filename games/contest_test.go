package games

import (
	"math"
	"testing"
)

func TestDrawWinnerUniform(t *testing.T) {
	e := testEngine(7)

	const holders = 5
	const rounds = 50000
	counts := make([]int, holders)
	for i := 0; i < rounds; i++ {
		w := e.DrawWinner(holders)
		if w < 0 || w >= holders {
			t.Fatalf("winner index %d out of range", w)
		}
		counts[w]++
	}

	want := 1.0 / holders
	for i, c := range counts {
		ratio := float64(c) / rounds
		if math.Abs(ratio-want) > 0.015 {
			t.Errorf("holder %d won %.4f of draws, want ~%.4f", i, ratio, want)
		}
	}
}

func TestDrawWinnerSingleHolder(t *testing.T) {
	e := testEngine(8)
	for i := 0; i < 100; i++ {
		if w := e.DrawWinner(1); w != 0 {
			t.Fatalf("sole holder must always win, got index %d", w)
		}
	}
}
