package games

// SlotSymbols is the fixed reel strip.
var SlotSymbols = []string{"lemon", "cherry", "seven"}

// SpinSlots draws three independent uniform symbols.
func (e *Engine) SpinSlots() [3]string {
	var reels [3]string
	for i := range reels {
		reels[i] = SlotSymbols[e.Intn(len(SlotSymbols))]
	}
	return reels
}

// SlotsMultiplier: three of a kind pays 5x, a pair on the left or right
// pays 2x, anything else pays nothing.
func SlotsMultiplier(reels [3]string) int64 {
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		return 5
	case reels[0] == reels[1] || reels[1] == reels[2]:
		return 2
	default:
		return 0
	}
}
