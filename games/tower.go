package games

import (
	"github.com/shopspring/decimal"
)

const (
	TowerLevels = 5
	TowerCols   = 2
	TowerMinBet = 15
)

// TowerMultipliers index the payout tier by cleared row.
var TowerMultipliers = []float64{1.5, 2.5, 4, 8, 16}

type TowerState struct {
	// Bombs[i] is the losing column on row i, drawn at start.
	Bombs []int `json:"bombs"`
	// Level is the number of rows already cleared.
	Level int `json:"level"`
	// Payouts are precomputed as round(bet * multiplier) per row.
	Payouts []int64 `json:"payouts"`
}

// NewTowerState rolls one bomb column per row and fixes the payout table
// for the given bet.
func (e *Engine) NewTowerState(bet int64) *TowerState {
	bombs := make([]int, TowerLevels)
	for i := range bombs {
		bombs[i] = e.Intn(TowerCols)
	}
	return &TowerState{Bombs: bombs, Payouts: TowerPayouts(bet)}
}

func TowerPayouts(bet int64) []int64 {
	payouts := make([]int64, len(TowerMultipliers))
	b := decimal.NewFromInt(bet)
	for i, m := range TowerMultipliers {
		payouts[i] = b.Mul(decimal.NewFromFloat(m)).Round(0).IntPart()
	}
	return payouts
}
