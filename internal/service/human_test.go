package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-4x4/internal/entity"
	"github.com/rocketscienceinc/tictactoe-4x4/testing/suite"
)

func TestHumanService_NextMove(t *testing.T) {
	t.Run("Reads row and column", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: the player types 2 then 3
		var out bytes.Buffer
		human := NewHumanService(st.Logger, NewPrompter(strings.NewReader("2\n3\n"), &out))
		board, err := entity.NewBoard(entity.DefaultBoardSize)
		require.NoError(t, err)

		// When: a move is requested for X
		move, err := human.NextMove(ctx, board, entity.PlayerX)

		// Then: the move is (2, 3) and the prompts name the player and range
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 3}, move)
		assert.Contains(t, out.String(), "Player X's turn")
		assert.Contains(t, out.String(), "Enter row (0-3): ")
		assert.Contains(t, out.String(), "Enter column (0-3): ")
	})

	t.Run("Asks again after bad input", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a board with (0, 0) taken and input that is non-numeric, out of range, occupied,
		// then valid
		board, err := entity.NewBoard(entity.DefaultBoardSize)
		require.NoError(t, err)
		require.NoError(t, board.ApplyMove(0, 0, entity.PlayerX))

		var out bytes.Buffer
		input := "a\n9\n0\n0\n0\n1\n2\n"
		human := NewHumanService(st.Logger, NewPrompter(strings.NewReader(input), &out))

		// When: a move is requested for O
		move, err := human.NextMove(ctx, board, entity.PlayerO)

		// Then: each problem is reported and the last answer is used
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, move)
		assert.Contains(t, out.String(), "Invalid input. Please enter numbers.")
		assert.Contains(t, out.String(), "Invalid input. Please enter numbers between 0 and 3.")
		assert.Contains(t, out.String(), "That position is already occupied. Try again.")
	})

	t.Run("Closed input ends the prompt", func(t *testing.T) {
		ctx, st := suite.New(t)

		human := NewHumanService(st.Logger, NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{}))
		board, err := entity.NewBoard(entity.DefaultBoardSize)
		require.NoError(t, err)

		_, err = human.NextMove(ctx, board, entity.PlayerX)

		require.ErrorIs(t, err, apperror.ErrInputClosed)
	})
}

func TestPrompter(t *testing.T) {
	t.Run("Accepts a last line without newline", func(t *testing.T) {
		prompter := NewPrompter(strings.NewReader(" 5 "), &bytes.Buffer{})

		value, err := prompter.AskInt("? ")

		require.NoError(t, err)
		assert.Equal(t, 5, value)
	})

	t.Run("Yes and no answers", func(t *testing.T) {
		prompter := NewPrompter(strings.NewReader("Yes\nn\n"), &bytes.Buffer{})

		yes, err := prompter.AskYesNo("? ")
		require.NoError(t, err)
		no, err := prompter.AskYesNo("? ")
		require.NoError(t, err)

		assert.True(t, yes)
		assert.False(t, no)
	})

	t.Run("Non-numeric answer", func(t *testing.T) {
		prompter := NewPrompter(strings.NewReader("abc\n"), &bytes.Buffer{})

		_, err := prompter.AskInt("? ")

		require.ErrorIs(t, err, ErrNotANumber)
	})
}
