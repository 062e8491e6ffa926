package usecase

import "github.com/rocketscienceinc/tictactoe-4x4/internal/entity"

// RoundResult is the outcome of one finished round.
type RoundResult struct {
	Round      int              `json:"round"`
	FirstMover entity.Mark      `json:"first_mover"`
	State      entity.GameState `json:"state"`
	Winner     *entity.Player   `json:"winner,omitempty"`
	Moves      int              `json:"moves"`
}

// Tally aggregates round outcomes per player mark.
type Tally struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

func (that *Tally) record(state entity.GameState) {
	switch state {
	case entity.StateXWins:
		that.XWins++
	case entity.StateOWins:
		that.OWins++
	case entity.StateDraw:
		that.Draws++
	}
}

// Wins returns the number of rounds won by the given mark.
func (that Tally) Wins(mark entity.Mark) int {
	switch mark {
	case entity.PlayerX:
		return that.XWins
	case entity.PlayerO:
		return that.OWins
	default:
		return 0
	}
}

func (that Tally) Total() int {
	return that.XWins + that.OWins + that.Draws
}
