package games

import (
	"github.com/shopspring/decimal"
)

const (
	MinerCells = 12
	MinerBombs = 6
)

// minerMultiplier is the base of the exponential payout curve.
var minerMultiplier = decimal.NewFromFloat(1.4)

type MinerCell struct {
	Bomb   bool `json:"bomb"`
	Opened bool `json:"opened"`
}

type MinerState struct {
	Cells  []MinerCell `json:"cells"`
	Opened int         `json:"opened"`
}

// NewMinerState lays out a fresh grid with exactly MinerBombs bombs
// placed uniformly without replacement.
func (e *Engine) NewMinerState() *MinerState {
	bombs := make(map[int]struct{}, MinerBombs)
	for len(bombs) < MinerBombs {
		bombs[e.Intn(MinerCells)] = struct{}{}
	}

	cells := make([]MinerCell, MinerCells)
	for i := range cells {
		_, isBomb := bombs[i]
		cells[i] = MinerCell{Bomb: isBomb}
	}
	return &MinerState{Cells: cells}
}

// MinerWin is the total win after opened safe cells: bet * 1.4^opened.
func MinerWin(bet int64, opened int) decimal.Decimal {
	return decimal.NewFromInt(bet).Mul(minerMultiplier.Pow(decimal.NewFromInt(int64(opened))))
}

// Cleared reports whether every safe cell has been opened, which is an
// automatic full win.
func (s *MinerState) Cleared() bool {
	return s.Opened == MinerCells-MinerBombs
}
