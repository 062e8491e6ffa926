package entity

import "github.com/rocketscienceinc/tictactoe-4x4/internal/pkg"

const botName = "AI"

// Player describes one seat of a game: who plays which mark and whether moves come from a person.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mark Mark   `json:"mark,omitempty"`
	Bot  bool   `json:"bot,omitempty"`
}

func NewHumanPlayer(name string, mark Mark) *Player {
	return &Player{
		ID:   pkg.GeneratePlayerID(),
		Name: name,
		Mark: mark,
	}
}

func NewBotPlayer(mark Mark) *Player {
	return &Player{
		ID:   pkg.GeneratePlayerID(),
		Name: botName,
		Mark: mark,
		Bot:  true,
	}
}

func (that *Player) IsBot() bool {
	return that.Bot
}

// IsInteractive reports whether invalid moves from this player should be re-requested.
func (that *Player) IsInteractive() bool {
	return !that.Bot
}
