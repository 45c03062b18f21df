package games

import (
	"math"
	"math/rand"
	"testing"
)

func testEngine(seed int64) *Engine {
	return NewEngine(rand.NewSource(seed))
}

func TestCoinflipDistribution(t *testing.T) {
	e := testEngine(1)

	const rounds = 20000
	heads := 0
	for i := 0; i < rounds; i++ {
		result, win := e.Coinflip(CoinHeads)
		if result != CoinHeads && result != CoinTails {
			t.Fatalf("unexpected result %q", result)
		}
		if win != (result == CoinHeads) {
			t.Fatalf("win flag disagrees with result %q", result)
		}
		if result == CoinHeads {
			heads++
		}
	}

	ratio := float64(heads) / rounds
	if math.Abs(ratio-0.5) > 0.02 {
		t.Errorf("heads ratio = %.4f, want ~0.5", ratio)
	}
}

func TestCoinflipPayout(t *testing.T) {
	if got := CoinflipPayout(100, true); got != 200 {
		t.Errorf("win payout = %d, want 200", got)
	}
	if got := CoinflipPayout(100, false); got != 0 {
		t.Errorf("loss payout = %d, want 0", got)
	}
}

func TestRPSOutcomes(t *testing.T) {
	e := testEngine(2)

	for i := 0; i < 1000; i++ {
		computer, outcome := e.RPS(RPSRock)
		switch computer {
		case RPSRock:
			if outcome != OutcomeTie {
				t.Fatalf("rock vs rock = %q, want tie", outcome)
			}
		case RPSScissors:
			if outcome != OutcomeWin {
				t.Fatalf("rock vs scissors = %q, want win", outcome)
			}
		case RPSPaper:
			if outcome != OutcomeLose {
				t.Fatalf("rock vs paper = %q, want lose", outcome)
			}
		default:
			t.Fatalf("unexpected computer choice %q", computer)
		}
	}
}

func TestRPSPayout(t *testing.T) {
	cases := []struct {
		outcome string
		want    int64
	}{
		{OutcomeWin, 200},
		{OutcomeTie, 100},
		{OutcomeLose, 0},
	}
	for _, tc := range cases {
		if got := RPSPayout(100, tc.outcome); got != tc.want {
			t.Errorf("RPSPayout(100, %s) = %d, want %d", tc.outcome, got, tc.want)
		}
	}
}

func TestSlotsMultiplier(t *testing.T) {
	cases := []struct {
		reels [3]string
		want  int64
	}{
		{[3]string{"seven", "seven", "seven"}, 5},
		{[3]string{"lemon", "lemon", "cherry"}, 2},
		{[3]string{"lemon", "cherry", "cherry"}, 2},
		{[3]string{"lemon", "cherry", "lemon"}, 0},
		{[3]string{"lemon", "cherry", "seven"}, 0},
	}
	for _, tc := range cases {
		if got := SlotsMultiplier(tc.reels); got != tc.want {
			t.Errorf("SlotsMultiplier(%v) = %d, want %d", tc.reels, got, tc.want)
		}
	}
}

func TestSpinSlotsSymbols(t *testing.T) {
	e := testEngine(3)

	valid := map[string]bool{}
	for _, s := range SlotSymbols {
		valid[s] = true
	}

	for i := 0; i < 100; i++ {
		reels := e.SpinSlots()
		for _, symbol := range reels {
			if !valid[symbol] {
				t.Fatalf("unknown symbol %q", symbol)
			}
		}
	}
}

func TestDrawCase(t *testing.T) {
	e := testEngine(4)

	picks := e.DrawCase(6, 50)
	if len(picks) != 50 {
		t.Fatalf("got %d picks, want 50", len(picks))
	}
	for _, p := range picks {
		if p < 0 || p >= 6 {
			t.Fatalf("pick %d out of range", p)
		}
	}
}
