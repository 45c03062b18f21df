package games

// CasePrice is the fixed cost of opening one case.
const CasePrice int64 = 100

// DrawCase picks quantity indices into the loadout, uniformly and with
// replacement. The caller resolves indices against the current loadout
// (or the full catalog when the loadout is empty).
func (e *Engine) DrawCase(poolSize, quantity int) []int {
	picks := make([]int, quantity)
	for i := range picks {
		picks[i] = e.Intn(poolSize)
	}
	return picks
}
