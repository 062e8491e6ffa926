package console

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/service"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/usecase"
)

// printer renders session progress on the console.
type printer struct {
	prompter *service.Prompter
}

func (that *printer) OnRoundStart(round, rounds int, board entity.BoardView) {
	if rounds > 1 {
		that.prompter.Say("\n========== Game %d of %d ==========", round, rounds)
	}

	that.prompter.Say("Welcome to %dx%d Tic-Tac-Toe!", board.Size(), board.Size())
	that.prompter.Say("\n%s\n", board)
}

func (that *printer) OnMove(player *entity.Player, move entity.Move, board entity.BoardView) {
	if player.IsBot() {
		that.prompter.Say("%s (%s) chose: %s", player.Name, player.Mark, move)
	}

	that.prompter.Say("\n%s\n", board)
}

func (that *printer) OnRoundEnd(result usecase.RoundResult, _ entity.BoardView) {
	that.prompter.Say("Game over! Result: %s", result.State.Describe())
}

// announcingSource tells the player the AI is about to move.
type announcingSource struct {
	prompter *service.Prompter
	source   usecase.MoveSource
}

func (that *announcingSource) NextMove(ctx context.Context, view entity.BoardView, mark entity.Mark) (entity.Move, error) {
	that.prompter.Say("AI is thinking...")

	return that.source.NextMove(ctx, view, mark)
}
