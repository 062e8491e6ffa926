package entity

// GameState is derived from the board grid and never stored alongside it.
type GameState string

const (
	StateOngoing GameState = "ongoing"
	StateDraw    GameState = "draw"
	StateXWins   GameState = "x_wins"
	StateOWins   GameState = "o_wins"
)

func (that GameState) IsFinished() bool {
	return that == StateDraw || that == StateXWins || that == StateOWins
}

func (that GameState) IsOngoing() bool {
	return that == StateOngoing
}

// Winner returns the winning mark, or EmptyCell for ongoing and drawn games.
func (that GameState) Winner() Mark {
	switch that {
	case StateXWins:
		return PlayerX
	case StateOWins:
		return PlayerO
	default:
		return EmptyCell
	}
}

// Describe returns the text shown to players at the end of a game.
func (that GameState) Describe() string {
	switch that {
	case StateXWins:
		return "Player X wins"
	case StateOWins:
		return "Player O wins"
	case StateDraw:
		return "Draw"
	default:
		return "Ongoing"
	}
}

func winState(mark Mark) GameState {
	if mark == PlayerX {
		return StateXWins
	}
	return StateOWins
}
