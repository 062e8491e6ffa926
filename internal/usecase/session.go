package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/pkg"
)

// MoveSource supplies the next move for a mark. Implementations may block, e.g. on console input.
type MoveSource interface {
	NextMove(ctx context.Context, view entity.BoardView, mark entity.Mark) (entity.Move, error)
}

// Observer is notified about session progress. The console uses it to render the game.
type Observer interface {
	OnRoundStart(round, rounds int, board entity.BoardView)
	OnMove(player *entity.Player, move entity.Move, board entity.BoardView)
	OnRoundEnd(result RoundResult, board entity.BoardView)
}

// Seat binds a player to the source of its moves.
type Seat struct {
	Player *entity.Player
	Source MoveSource
}

type Settings struct {
	BoardSize int
	// FirstMover opens round one.
	FirstMover entity.Mark
	// AlternateFirstMover hands the opening move to the other player every round.
	AlternateFirstMover bool
	// ConsistencyCheck compares the incremental win check with a full scan after every move.
	ConsistencyCheck bool
}

// GameSession owns the board of the current round, whose turn it is and the tournament tally.
// It has no win detection of its own and asks the board after every move.
type GameSession struct {
	logger *slog.Logger

	id       string
	settings Settings
	seats    map[entity.Mark]Seat
	observer Observer

	board   *entity.Board
	turn    entity.Mark
	round   int
	rounds  int
	tally   Tally
	results []RoundResult
}

func NewGameSession(logger *slog.Logger, settings Settings, first, second Seat) (*GameSession, error) {
	if first.Player == nil || second.Player == nil || first.Source == nil || second.Source == nil {
		return nil, fmt.Errorf("%w: both seats need a player and a move source", apperror.ErrInvalidPlayerSetup)
	}

	if !first.Player.Mark.IsPlayer() || first.Player.Mark.Opponent() != second.Player.Mark {
		return nil, fmt.Errorf("%w: marks %q and %q", apperror.ErrInvalidPlayerSetup,
			first.Player.Mark, second.Player.Mark)
	}

	if settings.FirstMover == entity.EmptyCell {
		settings.FirstMover = entity.PlayerX
	}

	// validates the size and first mover before any round starts
	if _, err := entity.NewBoard(settings.BoardSize, entity.WithFirstMover(settings.FirstMover)); err != nil {
		return nil, fmt.Errorf("invalid session settings: %w", err)
	}

	id := pkg.GenerateSessionID()

	return &GameSession{
		logger:   logger.With("component", "session", "session_id", id),
		id:       id,
		settings: settings,
		seats: map[entity.Mark]Seat{
			first.Player.Mark:  first,
			second.Player.Mark: second,
		},
		observer: nopObserver{},
		rounds:   1,
	}, nil
}

func (that *GameSession) SetObserver(observer Observer) {
	if observer == nil {
		observer = nopObserver{}
	}

	that.observer = observer
}

func (that *GameSession) ID() string {
	return that.id
}

// Board returns a read-only view of the current round's board, or nil before the first round.
func (that *GameSession) Board() entity.BoardView {
	if that.board == nil {
		return nil
	}

	return that.board.Clone()
}

func (that *GameSession) CurrentTurn() entity.Mark {
	return that.turn
}

func (that *GameSession) Round() int {
	return that.round
}

func (that *GameSession) Tally() Tally {
	return that.tally
}

func (that *GameSession) Results() []RoundResult {
	results := make([]RoundResult, len(that.results))
	copy(results, that.results)

	return results
}

func (that *GameSession) Player(mark entity.Mark) *entity.Player {
	return that.seats[mark].Player
}

// StartRound begins a new round on a fresh board, or on a copy of seed when one is given. The
// turn goes to the round's first mover, or to whoever is to move on the seeded board.
func (that *GameSession) StartRound(seed *entity.Board) error {
	log := that.logger.With("method", "StartRound")

	round := that.round + 1

	if seed != nil {
		that.board = seed.Clone()
	} else {
		board, err := entity.NewBoard(that.settings.BoardSize, entity.WithFirstMover(that.firstMoverFor(round)))
		if err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}

		that.board = board
	}

	that.round = round
	that.turn = that.board.CurrentTurn()

	log.Info("round started", "round", that.round, "first_mover", that.board.FirstMover(), "turn", that.turn)
	that.observer.OnRoundStart(that.round, that.rounds, that.board.Clone())

	return nil
}

// PlayTurn asks the current player's source for a move, applies it and returns the resulting
// state. An invalid move from a person is returned as is so the caller can ask again; from a bot
// it is wrapped in ErrFatalMove.
func (that *GameSession) PlayTurn(ctx context.Context) (entity.GameState, error) {
	log := that.logger.With("method", "PlayTurn", "round", that.round)

	if that.board == nil {
		return entity.StateOngoing, apperror.ErrGameIsNotStarted
	}

	if state := that.board.GameState(); state.IsFinished() {
		return state, apperror.ErrGameFinished
	}

	mark := that.turn
	seat := that.seats[mark]

	move, err := seat.Source.NextMove(ctx, that.board.Clone(), mark)
	if err != nil {
		if seat.Player.IsBot() && !isContextError(err) {
			return entity.StateOngoing, fmt.Errorf("%w: %s could not choose a move: %w", apperror.ErrFatalMove, seat.Player.Name, err)
		}

		return entity.StateOngoing, fmt.Errorf("failed to get move for %s: %w", mark, err)
	}

	winning := that.board.IsWinningMove(move.Row, move.Col, mark)

	if err = that.board.ApplyMove(move.Row, move.Col, mark); err != nil {
		log.Warn("move rejected", "mark", mark, "row", move.Row, "col", move.Col, "error", err)

		if !seat.Player.IsInteractive() {
			return entity.StateOngoing, fmt.Errorf("%w: %s played %s: %w", apperror.ErrFatalMove, seat.Player.Name, move, err)
		}

		return entity.StateOngoing, fmt.Errorf("invalid move %s: %w", move, err)
	}

	log.Debug("move applied", "mark", mark, "row", move.Row, "col", move.Col)
	that.observer.OnMove(seat.Player, move, that.board.Clone())

	that.turn = mark.Opponent()
	state := that.board.GameState()

	if that.settings.ConsistencyCheck && winning != (state.Winner() == mark) {
		return state, fmt.Errorf("%w: move %s by %s, incremental %t, state %s",
			apperror.ErrInconsistentState, move, mark, winning, state)
	}

	return state, nil
}

// RunRound plays the current round to a terminal state, starting a new one if none is in
// progress, and records the outcome. Invalid moves from people are asked for again.
func (that *GameSession) RunRound(ctx context.Context) (RoundResult, error) {
	log := that.logger.With("method", "RunRound")

	if that.board == nil || that.board.GameState().IsFinished() {
		if err := that.StartRound(nil); err != nil {
			return RoundResult{}, err
		}
	}

	for {
		state, err := that.PlayTurn(ctx)
		if err != nil {
			if isMoveError(err) && !errors.Is(err, apperror.ErrFatalMove) {
				log.Info("asking the same player again", "mark", that.turn, "error", err)
				continue
			}

			return RoundResult{}, fmt.Errorf("round %d: %w", that.round, err)
		}

		if state.IsFinished() {
			return that.finishRound(state), nil
		}
	}
}

// RunTournament plays rounds from a clean tally and returns it. The tally always sums to rounds.
func (that *GameSession) RunTournament(ctx context.Context, rounds int) (Tally, error) {
	log := that.logger.With("method", "RunTournament")

	if rounds < 1 {
		return Tally{}, fmt.Errorf("%w: %d", apperror.ErrInvalidRounds, rounds)
	}

	that.rounds = rounds
	that.round = 0
	that.board = nil
	that.tally = Tally{}
	that.results = nil

	for i := 0; i < rounds; i++ {
		if _, err := that.RunRound(ctx); err != nil {
			return that.tally, fmt.Errorf("tournament stopped: %w", err)
		}
	}

	log.Info("tournament finished", "rounds", rounds,
		"x_wins", that.tally.XWins, "o_wins", that.tally.OWins, "draws", that.tally.Draws)

	return that.tally, nil
}

func (that *GameSession) finishRound(state entity.GameState) RoundResult {
	result := RoundResult{
		Round:      that.round,
		FirstMover: that.board.FirstMover(),
		State:      state,
		Moves:      that.board.MoveCount(entity.PlayerX) + that.board.MoveCount(entity.PlayerO),
	}

	if winner := state.Winner(); winner != entity.EmptyCell {
		result.Winner = that.seats[winner].Player
	}

	that.tally.record(state)
	that.results = append(that.results, result)

	that.logger.Info("round finished", "round", result.Round, "state", state, "moves", result.Moves)
	that.observer.OnRoundEnd(result, that.board.Clone())

	return result
}

func (that *GameSession) firstMoverFor(round int) entity.Mark {
	if that.settings.AlternateFirstMover && round%2 == 0 {
		return that.settings.FirstMover.Opponent()
	}

	return that.settings.FirstMover
}

func isMoveError(err error) bool {
	return errors.Is(err, apperror.ErrOutOfBounds) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrWrongTurn)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

type nopObserver struct{}

func (nopObserver) OnRoundStart(int, int, entity.BoardView) {}

func (nopObserver) OnMove(*entity.Player, entity.Move, entity.BoardView) {}

func (nopObserver) OnRoundEnd(RoundResult, entity.BoardView) {}
