package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger
}

// New returns a context bounded by maxWaitDuration and a logger for the test.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
	}
}

// ScriptedSource is a move source that replays a fixed list of moves.
type ScriptedSource struct {
	Moves []entity.Move
	Calls int
}

func NewScriptedSource(moves ...entity.Move) *ScriptedSource {
	return &ScriptedSource{Moves: moves}
}

func (that *ScriptedSource) NextMove(_ context.Context, _ entity.BoardView, _ entity.Mark) (entity.Move, error) {
	if that.Calls >= len(that.Moves) {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	move := that.Moves[that.Calls]
	that.Calls++

	return move, nil
}

// FirstFreeSource always plays the first empty cell in row-major order.
type FirstFreeSource struct{}

func (FirstFreeSource) NextMove(_ context.Context, view entity.BoardView, _ entity.Mark) (entity.Move, error) {
	moves := view.ValidMoves()
	if len(moves) == 0 {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	return moves[0], nil
}
