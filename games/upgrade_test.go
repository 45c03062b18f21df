package games

import (
	"math"
	"testing"
)

func TestUpgradeChanceFormula(t *testing.T) {
	cases := []struct {
		owned, desired int64
		want           float64
	}{
		{100, 50, 95},   // downgrade in value still capped
		{100, 100, 95},  // equal values sit on the <= boundary
		{50, 100, 47.5}, // owned/desired * 95
		{100, 3170, 100.0 / 3170.0 * 95},
		{440, 777, 440.0 / 777.0 * 95},
	}
	for _, tc := range cases {
		got := UpgradeChance(tc.owned, tc.desired)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("UpgradeChance(%d, %d) = %v, want %v", tc.owned, tc.desired, got, tc.want)
		}
	}
}

func TestUpgradeChanceNeverExceedsCap(t *testing.T) {
	values := []int64{1, 50, 100, 200, 440, 777, 3170}
	for _, owned := range values {
		for _, desired := range values {
			if got := UpgradeChance(owned, desired); got > UpgradeMaxChance {
				t.Errorf("UpgradeChance(%d, %d) = %v exceeds cap", owned, desired, got)
			}
		}
	}
}

func TestRollUpgradeConverges(t *testing.T) {
	e := testEngine(5)

	const rounds = 50000
	chance := 30.0
	wins := 0
	for i := 0; i < rounds; i++ {
		if e.RollUpgrade(chance) {
			wins++
		}
	}

	ratio := float64(wins) / rounds * 100
	if math.Abs(ratio-chance) > 1.5 {
		t.Errorf("success rate = %.2f%%, want ~%.0f%%", ratio, chance)
	}
}
