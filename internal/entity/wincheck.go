package entity

// Family groups the win lines by the rule that produced them.
type Family string

const (
	FamilyRow      Family = "row"
	FamilyColumn   Family = "column"
	FamilyDiagonal Family = "diagonal"
	FamilyCorners  Family = "corners"
	FamilySquare   Family = "square"
)

type winLine struct {
	family Family
	cells  []int
}

// winCatalog holds every win line of a board size and, per cell, the lines passing through it.
// It is immutable once built and shared between clones.
type winCatalog struct {
	lines   []winLine
	through [][]int
}

func newWinCatalog(size int) *winCatalog {
	catalog := &winCatalog{
		through: make([][]int, size*size),
	}

	index := func(row, col int) int {
		return row*size + col
	}

	for row := 0; row < size; row++ {
		cells := make([]int, 0, size)
		for col := 0; col < size; col++ {
			cells = append(cells, index(row, col))
		}
		catalog.add(FamilyRow, cells)
	}

	for col := 0; col < size; col++ {
		cells := make([]int, 0, size)
		for row := 0; row < size; row++ {
			cells = append(cells, index(row, col))
		}
		catalog.add(FamilyColumn, cells)
	}

	diagonal := make([]int, 0, size)
	antiDiagonal := make([]int, 0, size)
	for i := 0; i < size; i++ {
		diagonal = append(diagonal, index(i, i))
		antiDiagonal = append(antiDiagonal, index(i, size-1-i))
	}
	catalog.add(FamilyDiagonal, diagonal)
	catalog.add(FamilyDiagonal, antiDiagonal)

	last := size - 1
	catalog.add(FamilyCorners, []int{index(0, 0), index(0, last), index(last, 0), index(last, last)})

	for row := 0; row < last; row++ {
		for col := 0; col < last; col++ {
			catalog.add(FamilySquare, []int{
				index(row, col), index(row, col+1),
				index(row+1, col), index(row+1, col+1),
			})
		}
	}

	return catalog
}

func (that *winCatalog) add(family Family, cells []int) {
	lineIdx := len(that.lines)
	that.lines = append(that.lines, winLine{family: family, cells: cells})

	for _, cell := range cells {
		that.through[cell] = append(that.through[cell], lineIdx)
	}
}

// owner returns the mark filling every cell of the line, or EmptyCell.
func (that winLine) owner(cells []Mark) Mark {
	first := cells[that.cells[0]]
	if first == EmptyCell {
		return EmptyCell
	}

	for _, cell := range that.cells[1:] {
		if cells[cell] != first {
			return EmptyCell
		}
	}

	return first
}

// completedBy reports whether placing mark at cell fills the line, whatever cell currently holds.
func (that winLine) completedBy(cells []Mark, cell int, mark Mark) bool {
	for _, other := range that.cells {
		if other == cell {
			continue
		}

		if cells[other] != mark {
			return false
		}
	}

	return true
}
