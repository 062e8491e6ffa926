package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
)

type HumanService interface {
	NextMove(ctx context.Context, view entity.BoardView, mark entity.Mark) (entity.Move, error)
}

type humanService struct {
	logger   *slog.Logger
	prompter *Prompter
}

// NewHumanService returns a move source that asks a person at the console for row and column.
// Bad input is reported and asked again; only a closed input or a cancelled context ends the loop.
func NewHumanService(logger *slog.Logger, prompter *Prompter) HumanService {
	return &humanService{
		logger:   logger.With("component", "human"),
		prompter: prompter,
	}
}

func (that *humanService) NextMove(ctx context.Context, view entity.BoardView, mark entity.Mark) (entity.Move, error) {
	log := that.logger.With("method", "NextMove", "mark", mark)

	maxIndex := view.Size() - 1

	for {
		if err := ctx.Err(); err != nil {
			return entity.Move{}, fmt.Errorf("input interrupted: %w", err)
		}

		that.prompter.Say("Player %s's turn", mark)

		row, err := that.prompter.AskInt(fmt.Sprintf("Enter row (0-%d): ", maxIndex))
		if errors.Is(err, ErrNotANumber) {
			that.prompter.Say("Invalid input. Please enter numbers.")
			continue
		}
		if err != nil {
			return entity.Move{}, err
		}

		col, err := that.prompter.AskInt(fmt.Sprintf("Enter column (0-%d): ", maxIndex))
		if errors.Is(err, ErrNotANumber) {
			that.prompter.Say("Invalid input. Please enter numbers.")
			continue
		}
		if err != nil {
			return entity.Move{}, err
		}

		if row < 0 || row > maxIndex || col < 0 || col > maxIndex {
			that.prompter.Say("Invalid input. Please enter numbers between 0 and %d.", maxIndex)
			continue
		}

		if !view.IsValidMove(row, col) {
			that.prompter.Say("That position is already occupied. Try again.")
			continue
		}

		log.Debug("human chose cell", "row", row, "col", col)

		return entity.Move{Row: row, Col: col}, nil
	}
}
