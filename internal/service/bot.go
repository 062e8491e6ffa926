package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
)

type BotService interface {
	NextMove(ctx context.Context, view entity.BoardView, mark entity.Mark) (entity.Move, error)
}

type botService struct {
	logger *slog.Logger

	rnd        *rand.Rand
	thinkDelay time.Duration
}

// NewBotService returns an opponent that plays a uniformly random empty cell. A zero seed seeds
// from the clock; thinkDelay pauses before every move so the console stays readable.
func NewBotService(logger *slog.Logger, seed int64, thinkDelay time.Duration) BotService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &botService{
		logger:     logger.With("component", "bot"),
		rnd:        rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
		thinkDelay: thinkDelay,
	}
}

func (that *botService) NextMove(ctx context.Context, view entity.BoardView, mark entity.Mark) (entity.Move, error) {
	availableCells := view.ValidMoves()
	if len(availableCells) == 0 {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	if err := that.think(ctx); err != nil {
		return entity.Move{}, err
	}

	chosenCell := availableCells[that.rnd.Intn(len(availableCells))]
	that.logger.Debug("bot chose cell", "mark", mark, "row", chosenCell.Row, "col", chosenCell.Col)

	return chosenCell, nil
}

func (that *botService) think(ctx context.Context) error {
	if that.thinkDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("bot interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
