package games

import (
	"github.com/shopspring/decimal"
)

// UpgradeMaxChance caps the success probability in percent.
const UpgradeMaxChance = 95.0

// UpgradeChance returns the success probability in percent for trading
// an owned item for a more valuable one. When the desired value is less
// than or equal to the owned value the chance is exactly the cap; the
// boundary is <=, not <.
func UpgradeChance(ownedValue, desiredValue int64) float64 {
	if desiredValue <= ownedValue {
		return UpgradeMaxChance
	}
	chance := decimal.NewFromInt(ownedValue).
		Div(decimal.NewFromInt(desiredValue)).
		Mul(decimal.NewFromFloat(UpgradeMaxChance))
	f, _ := chance.Float64()
	if f > UpgradeMaxChance {
		return UpgradeMaxChance
	}
	return f
}

// RollUpgrade decides one attempt with a single uniform draw in [0,100).
func (e *Engine) RollUpgrade(chance float64) bool {
	return e.Float64()*100 < chance
}
