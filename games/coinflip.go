package games

const (
	CoinHeads = "heads"
	CoinTails = "tails"
)

func ValidCoinChoice(choice string) bool {
	return choice == CoinHeads || choice == CoinTails
}

// Coinflip resolves one flip: a uniform 50/50 outcome against the
// player's choice.
func (e *Engine) Coinflip(choice string) (result string, win bool) {
	if e.Intn(2) == 0 {
		result = CoinHeads
	} else {
		result = CoinTails
	}
	return result, result == choice
}

// CoinflipPayout is the gross amount returned to the player: 2x the bet
// on a win (net +bet), nothing on a loss (net -bet).
func CoinflipPayout(bet int64, win bool) int64 {
	if win {
		return bet * 2
	}
	return 0
}
