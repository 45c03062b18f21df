package games

const (
	RPSRock     = "rock"
	RPSPaper    = "paper"
	RPSScissors = "scissors"

	OutcomeWin  = "win"
	OutcomeLose = "lose"
	OutcomeTie  = "tie"
)

var rpsChoices = []string{RPSRock, RPSPaper, RPSScissors}

// beats[a] is the choice a defeats.
var beats = map[string]string{
	RPSRock:     RPSScissors,
	RPSPaper:    RPSRock,
	RPSScissors: RPSPaper,
}

func ValidRPSChoice(choice string) bool {
	_, ok := beats[choice]
	return ok
}

// RPS plays one round against a uniformly random computer choice.
func (e *Engine) RPS(player string) (computer, outcome string) {
	computer = rpsChoices[e.Intn(len(rpsChoices))]
	switch {
	case player == computer:
		outcome = OutcomeTie
	case beats[player] == computer:
		outcome = OutcomeWin
	default:
		outcome = OutcomeLose
	}
	return computer, outcome
}

// RPSPayout: win returns 2x the bet, a tie returns the stake, a loss
// returns nothing.
func RPSPayout(bet int64, outcome string) int64 {
	switch outcome {
	case OutcomeWin:
		return bet * 2
	case OutcomeTie:
		return bet
	default:
		return 0
	}
}
