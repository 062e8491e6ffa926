package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-4x4/internal/apperror"
)

const (
	DefaultBoardSize = 4

	// MinBoardSize is the smallest side on which the corner and 2x2 square rules are distinct.
	MinBoardSize = 3
)

// BoardView is the read-only surface handed to move sources.
type BoardView interface {
	Size() int
	Cell(row, col int) (Mark, error)
	IsValidMove(row, col int) bool
	ValidMoves() []Move
	String() string
}

// Board is the physical state of one game: an N×N grid stored row-major and the number of moves
// each player has made. Game state is always computed from the grid.
//
// ApplyMove does not refuse moves on a finished board; stopping at a terminal state is the
// caller's job (see usecase.GameSession).
type Board struct {
	size       int
	cells      []Mark
	firstMover Mark
	xCount     int
	oCount     int
	catalog    *winCatalog
}

type BoardOption func(*Board)

// WithFirstMover selects the player who opens the game. X opens by default.
func WithFirstMover(mark Mark) BoardOption {
	return func(board *Board) {
		board.firstMover = mark
	}
}

// NewBoard creates an empty board of the given side.
func NewBoard(size int, opts ...BoardOption) (*Board, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("%w: %d, must be at least %d", apperror.ErrInvalidSize, size, MinBoardSize)
	}

	board := &Board{
		size:       size,
		cells:      make([]Mark, size*size),
		firstMover: PlayerX,
		catalog:    newWinCatalog(size),
	}

	for _, opt := range opts {
		opt(board)
	}

	if !board.firstMover.IsPlayer() {
		return nil, fmt.Errorf("%w: unknown first mover %q", apperror.ErrInvalidBoardState, board.firstMover)
	}

	return board, nil
}

// FromGrid creates a board from an existing position. The grid must be square, contain only known
// marks, have move counts consistent with alternating play from the first mover, and have at most
// one winner, who must also be the player that moved last.
func FromGrid(grid [][]Mark, opts ...BoardOption) (*Board, error) {
	board, err := NewBoard(len(grid), opts...)
	if err != nil {
		return nil, err
	}

	for row, cells := range grid {
		if len(cells) != board.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				apperror.ErrInvalidBoardState, row, len(cells), board.size)
		}

		for col, mark := range cells {
			switch mark {
			case PlayerX:
				board.xCount++
			case PlayerO:
				board.oCount++
			case EmptyCell:
			default:
				return nil, fmt.Errorf("%w: unknown mark %q at (%d, %d)",
					apperror.ErrInvalidBoardState, mark, row, col)
			}

			board.cells[board.index(row, col)] = mark
		}
	}

	lead := board.MoveCount(board.firstMover) - board.MoveCount(board.firstMover.Opponent())
	if lead != 0 && lead != 1 {
		return nil, fmt.Errorf("%w: X has %d moves, O has %d moves, %s moves first",
			apperror.ErrInvalidBoardState, board.xCount, board.oCount, board.firstMover)
	}

	xWins, oWins := board.lineOwners()
	switch {
	case xWins && oWins:
		return nil, fmt.Errorf("%w: both players have a winning line", apperror.ErrInvalidBoardState)
	case xWins || oWins:
		winner := PlayerX
		if oWins {
			winner = PlayerO
		}

		if lastMover := board.CurrentTurn().Opponent(); winner != lastMover {
			return nil, fmt.Errorf("%w: %s has a winning line but %s moved last",
				apperror.ErrInvalidBoardState, winner, lastMover)
		}
	}

	return board, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) FirstMover() Mark {
	return that.firstMover
}

// MoveCount returns the number of moves made by the given player.
func (that *Board) MoveCount(mark Mark) int {
	switch mark {
	case PlayerX:
		return that.xCount
	case PlayerO:
		return that.oCount
	default:
		return 0
	}
}

// CurrentTurn derives whose turn it is from the move counters.
func (that *Board) CurrentTurn() Mark {
	second := that.firstMover.Opponent()
	if that.MoveCount(that.firstMover) > that.MoveCount(second) {
		return second
	}

	return that.firstMover
}

func (that *Board) Cell(row, col int) (Mark, error) {
	if !that.inBounds(row, col) {
		return EmptyCell, fmt.Errorf("%w: row %d col %d", apperror.ErrOutOfBounds, row, col)
	}

	return that.cells[that.index(row, col)], nil
}

// IsValidMove reports whether (row, col) is on the board and empty. It does not look at whether
// the game is already over.
func (that *Board) IsValidMove(row, col int) bool {
	return that.inBounds(row, col) && that.cells[that.index(row, col)] == EmptyCell
}

// ApplyMove places mark at (row, col) and counts the move.
func (that *Board) ApplyMove(row, col int, mark Mark) error {
	if !that.inBounds(row, col) {
		return fmt.Errorf("%w: row %d col %d, board size %d", apperror.ErrOutOfBounds, row, col, that.size)
	}

	idx := that.index(row, col)
	if that.cells[idx] != EmptyCell {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	if turn := that.CurrentTurn(); mark != turn {
		return fmt.Errorf("%w: %s to move, got %q", apperror.ErrWrongTurn, turn, mark)
	}

	that.cells[idx] = mark
	if mark == PlayerX {
		that.xCount++
	} else {
		that.oCount++
	}

	return nil
}

// IsWinningMove reports whether placing mark at (row, col) would complete a win line. The board
// is not modified and only the lines through that cell are inspected.
func (that *Board) IsWinningMove(row, col int, mark Mark) bool {
	if !that.inBounds(row, col) || !mark.IsPlayer() {
		return false
	}

	idx := that.index(row, col)
	for _, lineIdx := range that.catalog.through[idx] {
		if that.catalog.lines[lineIdx].completedBy(that.cells, idx, mark) {
			return true
		}
	}

	return false
}

// CheckWinner scans every win line and returns the mark owning one, or EmptyCell.
func (that *Board) CheckWinner() Mark {
	for _, line := range that.catalog.lines {
		if owner := line.owner(that.cells); owner != EmptyCell {
			return owner
		}
	}

	return EmptyCell
}

// GameState returns exactly one of the four states for the current grid.
func (that *Board) GameState() GameState {
	if winner := that.CheckWinner(); winner != EmptyCell {
		return winState(winner)
	}

	if that.IsFull() {
		return StateDraw
	}

	return StateOngoing
}

func (that *Board) IsFull() bool {
	return that.xCount+that.oCount == len(that.cells)
}

// ValidMoves lists the empty cells in row-major order.
func (that *Board) ValidMoves() []Move {
	moves := make([]Move, 0, len(that.cells)-that.xCount-that.oCount)
	for idx, cell := range that.cells {
		if cell == EmptyCell {
			moves = append(moves, Move{Row: idx / that.size, Col: idx % that.size})
		}
	}

	return moves
}

// Grid returns a copy of the cells as rows.
func (that *Board) Grid() [][]Mark {
	grid := make([][]Mark, that.size)
	for row := range grid {
		grid[row] = make([]Mark, that.size)
		copy(grid[row], that.cells[row*that.size:(row+1)*that.size])
	}

	return grid
}

func (that *Board) Clone() *Board {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		size:       that.size,
		cells:      cells,
		firstMover: that.firstMover,
		xCount:     that.xCount,
		oCount:     that.oCount,
		catalog:    that.catalog,
	}
}

// String renders the board one row per line, e.g. "|X|_|O|_|".
func (that *Board) String() string {
	var builder strings.Builder

	for row := 0; row < that.size; row++ {
		if row > 0 {
			builder.WriteByte('\n')
		}

		builder.WriteByte('|')
		for col := 0; col < that.size; col++ {
			cell := that.cells[that.index(row, col)]
			if cell == EmptyCell {
				builder.WriteByte('_')
			} else {
				builder.WriteString(string(cell))
			}
			builder.WriteByte('|')
		}
	}

	return builder.String()
}

// lineOwners reports, for each player, whether any win line is complete.
func (that *Board) lineOwners() (bool, bool) {
	var xWins, oWins bool

	for _, line := range that.catalog.lines {
		switch line.owner(that.cells) {
		case PlayerX:
			xWins = true
		case PlayerO:
			oWins = true
		}
	}

	return xWins, oWins
}

func (that *Board) inBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *Board) index(row, col int) int {
	return row*that.size + col
}
