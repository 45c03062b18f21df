package games

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMinerStateLayout(t *testing.T) {
	e := testEngine(6)

	for i := 0; i < 200; i++ {
		state := e.NewMinerState()
		if len(state.Cells) != MinerCells {
			t.Fatalf("grid has %d cells, want %d", len(state.Cells), MinerCells)
		}

		bombs := 0
		for _, cell := range state.Cells {
			if cell.Opened {
				t.Fatal("fresh grid has opened cells")
			}
			if cell.Bomb {
				bombs++
			}
		}
		if bombs != MinerBombs {
			t.Fatalf("grid has %d bombs, want %d", bombs, MinerBombs)
		}
	}
}

func TestMinerWinCurve(t *testing.T) {
	cases := []struct {
		bet    int64
		opened int
		want   string
	}{
		{100, 0, "100"},
		{100, 1, "140"},
		{100, 2, "196"},
		{100, 3, "274.4"},
		{50, 2, "98"},
	}
	for _, tc := range cases {
		got := MinerWin(tc.bet, tc.opened)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("MinerWin(%d, %d) = %s, want %s", tc.bet, tc.opened, got, tc.want)
		}
	}
}

func TestMinerWinMonotonic(t *testing.T) {
	prev := MinerWin(100, 0)
	for n := 1; n <= MinerCells-MinerBombs; n++ {
		win := MinerWin(100, n)
		if !win.GreaterThan(prev) {
			t.Fatalf("win at %d opened (%s) not greater than at %d (%s)", n, win, n-1, prev)
		}
		prev = win
	}
}

func TestMinerCleared(t *testing.T) {
	state := &MinerState{Opened: MinerCells - MinerBombs}
	if !state.Cleared() {
		t.Error("state with all safe cells open should be cleared")
	}
	state.Opened--
	if state.Cleared() {
		t.Error("state with a safe cell left should not be cleared")
	}
}
