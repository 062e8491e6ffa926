package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/service"
	"github.com/rocketscienceinc/tictactoe-4x4/testing/suite"
)

type mockMoveSource struct {
	mock.Mock
}

func (that *mockMoveSource) NextMove(ctx context.Context, view entity.BoardView, mark entity.Mark) (entity.Move, error) {
	args := that.Called(ctx, view, mark)
	return args.Get(0).(entity.Move), args.Error(1)
}

type recordingObserver struct {
	starts []int
	moves  []entity.Move
	ends   []RoundResult
}

func (that *recordingObserver) OnRoundStart(round, _ int, _ entity.BoardView) {
	that.starts = append(that.starts, round)
}

func (that *recordingObserver) OnMove(_ *entity.Player, move entity.Move, _ entity.BoardView) {
	that.moves = append(that.moves, move)
}

func (that *recordingObserver) OnRoundEnd(result RoundResult, _ entity.BoardView) {
	that.ends = append(that.ends, result)
}

func defaultSettings() Settings {
	return Settings{
		BoardSize:        entity.DefaultBoardSize,
		FirstMover:       entity.PlayerX,
		ConsistencyCheck: true,
	}
}

func newSession(t *testing.T, st *suite.Suite, settings Settings, x, o Seat) *GameSession {
	t.Helper()

	session, err := NewGameSession(st.Logger, settings, x, o)
	require.NoError(t, err)

	return session
}

func moves(cells ...[2]int) []entity.Move {
	result := make([]entity.Move, 0, len(cells))
	for _, cell := range cells {
		result = append(result, entity.Move{Row: cell[0], Col: cell[1]})
	}

	return result
}

func TestNewGameSession(t *testing.T) {
	_, st := suite.New(t)
	source := suite.FirstFreeSource{}

	t.Run("Rejects duplicate marks", func(t *testing.T) {
		_, err := NewGameSession(st.Logger, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("a", entity.PlayerX), Source: source},
			Seat{Player: entity.NewHumanPlayer("b", entity.PlayerX), Source: source},
		)

		require.ErrorIs(t, err, apperror.ErrInvalidPlayerSetup)
	})

	t.Run("Rejects missing sources", func(t *testing.T) {
		_, err := NewGameSession(st.Logger, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("a", entity.PlayerX)},
			Seat{Player: entity.NewHumanPlayer("b", entity.PlayerO), Source: source},
		)

		require.ErrorIs(t, err, apperror.ErrInvalidPlayerSetup)
	})

	t.Run("Rejects small boards", func(t *testing.T) {
		settings := defaultSettings()
		settings.BoardSize = 2

		_, err := NewGameSession(st.Logger, settings,
			Seat{Player: entity.NewHumanPlayer("a", entity.PlayerX), Source: source},
			Seat{Player: entity.NewHumanPlayer("b", entity.PlayerO), Source: source},
		)

		require.ErrorIs(t, err, apperror.ErrInvalidSize)
	})

	t.Run("Assigns an identifier", func(t *testing.T) {
		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("a", entity.PlayerX), Source: source},
			Seat{Player: entity.NewHumanPlayer("b", entity.PlayerO), Source: source},
		)

		assert.NotEmpty(t, session.ID())
		assert.Nil(t, session.Board())
	})
}

func TestGameSession_PlayTurn(t *testing.T) {
	t.Run("Applies the move and passes the turn", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: X moves from a mocked source
		sourceX := &mockMoveSource{}
		sourceX.On("NextMove", mock.Anything, mock.Anything, entity.PlayerX).
			Return(entity.Move{Row: 1, Col: 2}, nil).
			Once()
		sourceO := &mockMoveSource{}

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: sourceX},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: sourceO},
		)
		require.NoError(t, session.StartRound(nil))

		// When: one turn is played
		state, err := session.PlayTurn(ctx)

		// Then: the board holds X at (1, 2) and it is O's turn
		require.NoError(t, err)
		assert.Equal(t, entity.StateOngoing, state)
		assert.Equal(t, entity.PlayerO, session.CurrentTurn())

		cell, err := session.Board().Cell(1, 2)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, cell)

		sourceX.AssertExpectations(t)
		sourceO.AssertNotCalled(t, "NextMove", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error before a round is started", func(t *testing.T) {
		ctx, st := suite.New(t)

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.FirstFreeSource{}},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.FirstFreeSource{}},
		)

		_, err := session.PlayTurn(ctx)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns board errors for people", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a human source that answers out of bounds
		sourceX := &mockMoveSource{}
		sourceX.On("NextMove", mock.Anything, mock.Anything, entity.PlayerX).
			Return(entity.Move{Row: 7, Col: 0}, nil).
			Once()

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: sourceX},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.FirstFreeSource{}},
		)
		require.NoError(t, session.StartRound(nil))

		// When: the turn is played
		_, err := session.PlayTurn(ctx)

		// Then: the board error is returned, not a fatal one, and X still has the turn
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
		assert.NotErrorIs(t, err, apperror.ErrFatalMove)
		assert.Equal(t, entity.PlayerX, session.CurrentTurn())
	})

	t.Run("Invalid bot moves are fatal", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: O is a bot that picks an occupied cell
		sourceO := &mockMoveSource{}
		sourceO.On("NextMove", mock.Anything, mock.Anything, entity.PlayerO).
			Return(entity.Move{Row: 0, Col: 0}, nil).
			Once()

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.NewScriptedSource(moves([2]int{0, 0})...)},
			Seat{Player: entity.NewBotPlayer(entity.PlayerO), Source: sourceO},
		)
		require.NoError(t, session.StartRound(nil))

		_, err := session.PlayTurn(ctx)
		require.NoError(t, err)

		// When: the bot plays
		_, err = session.PlayTurn(ctx)

		// Then: the error is fatal and keeps the board cause
		require.ErrorIs(t, err, apperror.ErrFatalMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Refuses to play on a finished board", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a seeded board where X already won
		seed, err := entity.FromGrid([][]entity.Mark{
			{entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerX},
			{entity.PlayerO, entity.PlayerO, entity.PlayerO, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
		})
		require.NoError(t, err)

		sourceO := &mockMoveSource{}
		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.FirstFreeSource{}},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: sourceO},
		)
		require.NoError(t, session.StartRound(seed))

		// When: a turn is requested
		state, err := session.PlayTurn(ctx)

		// Then: ErrGameFinished is returned and no source is asked
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, entity.StateXWins, state)
		sourceO.AssertNotCalled(t, "NextMove", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGameSession_RunRound(t *testing.T) {
	t.Run("X wins with the top row", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: scripted players where X fills row 0 and O plays row 3
		observer := &recordingObserver{}
		playerX := entity.NewHumanPlayer("x", entity.PlayerX)
		session := newSession(t, st, defaultSettings(),
			Seat{Player: playerX, Source: suite.NewScriptedSource(moves([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})...)},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.NewScriptedSource(moves([2]int{3, 0}, [2]int{3, 2}, [2]int{2, 1})...)},
		)
		session.SetObserver(observer)

		// When: the round runs
		result, err := session.RunRound(ctx)

		// Then: X wins after seven moves and the tally records it
		require.NoError(t, err)
		assert.Equal(t, entity.StateXWins, result.State)
		assert.Equal(t, playerX, result.Winner)
		assert.Equal(t, 7, result.Moves)
		assert.Equal(t, Tally{XWins: 1}, session.Tally())
		assert.Equal(t, []int{1}, observer.starts)
		assert.Len(t, observer.moves, 7)
		assert.Equal(t, []RoundResult{result}, observer.ends)
	})

	t.Run("Re-asks a person after an invalid move", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: O first answers an occupied cell, then a free one
		sourceO := &mockMoveSource{}
		sourceO.On("NextMove", mock.Anything, mock.Anything, entity.PlayerO).
			Return(entity.Move{Row: 0, Col: 0}, nil).
			Once()
		sourceO.On("NextMove", mock.Anything, mock.Anything, entity.PlayerO).
			Return(entity.Move{Row: 3, Col: 0}, nil).
			Once()
		sourceO.On("NextMove", mock.Anything, mock.Anything, entity.PlayerO).
			Return(entity.Move{Row: 3, Col: 1}, nil).
			Once()
		sourceO.On("NextMove", mock.Anything, mock.Anything, entity.PlayerO).
			Return(entity.Move{Row: 2, Col: 3}, nil).
			Once()

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.NewScriptedSource(moves([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})...)},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: sourceO},
		)

		// When: the round runs
		result, err := session.RunRound(ctx)

		// Then: the round completes with X winning and O was asked four times
		require.NoError(t, err)
		assert.Equal(t, entity.StateXWins, result.State)
		sourceO.AssertNumberOfCalls(t, "NextMove", 4)
	})

	t.Run("Source failure ends the round", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: X's input is closed
		sourceX := &mockMoveSource{}
		sourceX.On("NextMove", mock.Anything, mock.Anything, entity.PlayerX).
			Return(entity.Move{}, apperror.ErrInputClosed).
			Once()

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: sourceX},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.FirstFreeSource{}},
		)

		// When: the round runs
		_, err := session.RunRound(ctx)

		// Then: the error is returned and nothing is tallied
		require.ErrorIs(t, err, apperror.ErrInputClosed)
		assert.Equal(t, 0, session.Tally().Total())
	})

	t.Run("Continues from a seeded board", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a position where O is to move and X threatens the 2x2 square
		seed, err := entity.FromGrid([][]entity.Mark{
			{entity.PlayerO, entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
			{entity.EmptyCell, entity.PlayerX, entity.PlayerX, entity.EmptyCell},
			{entity.EmptyCell, entity.PlayerX, entity.EmptyCell, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell, entity.PlayerO},
		})
		require.NoError(t, err)

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.NewScriptedSource(moves([2]int{2, 2})...)},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.NewScriptedSource(moves([2]int{0, 3})...)},
		)
		require.NoError(t, session.StartRound(seed))
		require.Equal(t, entity.PlayerO, session.CurrentTurn())

		// When: the round runs
		result, err := session.RunRound(ctx)

		// Then: X completes the square and the seed itself is untouched
		require.NoError(t, err)
		assert.Equal(t, entity.StateXWins, result.State)
		assert.True(t, seed.IsValidMove(2, 2))
	})
}

func TestGameSession_RunTournament(t *testing.T) {
	t.Run("Tallies sum to the number of rounds", func(t *testing.T) {
		ctx, st := suite.New(t)

		for _, rounds := range []int{1, 2, 5, 12} {
			// Given: two random bots
			settings := defaultSettings()
			settings.AlternateFirstMover = true
			session := newSession(t, st, settings,
				Seat{Player: entity.NewBotPlayer(entity.PlayerX), Source: service.NewBotService(st.Logger, int64(rounds), 0)},
				Seat{Player: entity.NewBotPlayer(entity.PlayerO), Source: service.NewBotService(st.Logger, int64(rounds+100), 0)},
			)

			// When: a tournament is played
			tally, err := session.RunTournament(ctx, rounds)

			// Then: every round is counted exactly once
			require.NoError(t, err)
			assert.Equal(t, rounds, tally.Total())
			assert.Len(t, session.Results(), rounds)
		}
	})

	t.Run("Alternates the first mover", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: first-free players and alternation enabled
		settings := defaultSettings()
		settings.AlternateFirstMover = true
		session := newSession(t, st, settings,
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.FirstFreeSource{}},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.FirstFreeSource{}},
		)

		// When: three rounds are played
		_, err := session.RunTournament(ctx, 3)
		require.NoError(t, err)

		// Then: X, O, X open the rounds
		results := session.Results()
		require.Len(t, results, 3)
		assert.Equal(t, entity.PlayerX, results[0].FirstMover)
		assert.Equal(t, entity.PlayerO, results[1].FirstMover)
		assert.Equal(t, entity.PlayerX, results[2].FirstMover)
	})

	t.Run("Keeps the first mover when fixed", func(t *testing.T) {
		ctx, st := suite.New(t)

		settings := defaultSettings()
		settings.FirstMover = entity.PlayerO
		session := newSession(t, st, settings,
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.FirstFreeSource{}},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.FirstFreeSource{}},
		)

		_, err := session.RunTournament(ctx, 2)
		require.NoError(t, err)

		for _, result := range session.Results() {
			assert.Equal(t, entity.PlayerO, result.FirstMover)
		}
	})

	t.Run("Starts from a clean tally", func(t *testing.T) {
		ctx, st := suite.New(t)

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.FirstFreeSource{}},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.FirstFreeSource{}},
		)

		_, err := session.RunTournament(ctx, 2)
		require.NoError(t, err)

		tally, err := session.RunTournament(ctx, 3)
		require.NoError(t, err)

		assert.Equal(t, 3, tally.Total())
		assert.Equal(t, 3, session.Round())
	})

	t.Run("Rejects non-positive rounds", func(t *testing.T) {
		ctx, st := suite.New(t)

		session := newSession(t, st, defaultSettings(),
			Seat{Player: entity.NewHumanPlayer("x", entity.PlayerX), Source: suite.FirstFreeSource{}},
			Seat{Player: entity.NewHumanPlayer("o", entity.PlayerO), Source: suite.FirstFreeSource{}},
		)

		_, err := session.RunTournament(ctx, 0)

		require.ErrorIs(t, err, apperror.ErrInvalidRounds)
	})
}

func TestTally(t *testing.T) {
	tally := Tally{}
	tally.record(entity.StateXWins)
	tally.record(entity.StateDraw)
	tally.record(entity.StateOWins)
	tally.record(entity.StateXWins)
	tally.record(entity.StateOngoing)

	assert.Equal(t, 2, tally.Wins(entity.PlayerX))
	assert.Equal(t, 1, tally.Wins(entity.PlayerO))
	assert.Equal(t, 1, tally.Draws)
	assert.Equal(t, 4, tally.Total())
}
