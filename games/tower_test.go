package games

import (
	"testing"
)

func TestTowerPayoutsRounding(t *testing.T) {
	// The documented scenario: bet 15 against [1.5, 2.5, 4, 8, 16].
	got := TowerPayouts(15)
	want := []int64{23, 38, 60, 120, 240}
	if len(got) != len(want) {
		t.Fatalf("got %d tiers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("payout[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTowerPayoutsTopTier(t *testing.T) {
	for _, bet := range []int64{15, 100, 333} {
		payouts := TowerPayouts(bet)
		if payouts[TowerLevels-1] != bet*16 {
			t.Errorf("top tier for bet %d = %d, want %d", bet, payouts[TowerLevels-1], bet*16)
		}
	}
}

func TestNewTowerState(t *testing.T) {
	e := testEngine(7)

	for i := 0; i < 200; i++ {
		state := e.NewTowerState(15)
		if len(state.Bombs) != TowerLevels {
			t.Fatalf("got %d rows, want %d", len(state.Bombs), TowerLevels)
		}
		for row, col := range state.Bombs {
			if col < 0 || col >= TowerCols {
				t.Fatalf("row %d bomb column %d out of range", row, col)
			}
		}
		if state.Level != 0 {
			t.Fatal("fresh tower should start at level 0")
		}
	}
}

func TestNewTowerStateBombColumnsUniform(t *testing.T) {
	e := testEngine(8)

	left := 0
	const rounds = 5000
	for i := 0; i < rounds; i++ {
		state := e.NewTowerState(TowerMinBet)
		for _, col := range state.Bombs {
			if col == 0 {
				left++
			}
		}
	}

	total := rounds * TowerLevels
	ratio := float64(left) / float64(total)
	if ratio < 0.47 || ratio > 0.53 {
		t.Errorf("left-column bomb ratio = %.4f, want ~0.5", ratio)
	}
}
