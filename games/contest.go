package games

// DrawWinner picks the winning index uniformly over n distinct
// ticket-holders. Holding more tickets never changes a holder's odds.
func (e *Engine) DrawWinner(n int) int {
	return e.Intn(n)
}
