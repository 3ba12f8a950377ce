package game

// Status classifies the board after a move.
type Status int

const (
	StatusOngoing Status = iota
	StatusWon
	StatusTied
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusTied:
		return "tied"
	default:
		return "ongoing"
	}
}

// Outcome is the result of evaluating a move. It is computed fresh on every call and
// never cached on the board.
type Outcome struct {
	Status Status
	Winner PlayerMark
	// Line holds the winning cells when Status is StatusWon.
	Line []Cell
}

// IsOver reports whether the game has ended.
func (o Outcome) IsOver() bool {
	return o.Status != StatusOngoing
}

// Evaluate classifies the board after mark was played on last.
//
// Only lines through last are inspected, in the order row, column, main diagonal,
// anti-diagonal. When a move completes more than one line, Line holds the first one
// found in that order. The tie check covers the whole board.
func Evaluate(b *Board, last Cell, mark PlayerMark) Outcome {
	if line, ok := CompletesLine(b, last, mark); ok {
		return Outcome{Status: StatusWon, Winner: mark, Line: line}
	}
	if b.IsFull() {
		return Outcome{Status: StatusTied}
	}
	return Outcome{Status: StatusOngoing}
}

// CompletesLine reports whether some line through last carries mark in every cell, and
// returns the first such line.
func CompletesLine(b *Board, last Cell, mark PlayerMark) ([]Cell, bool) {
	if !mark.Valid() || !b.Contains(last) {
		return nil, false
	}
	for _, line := range linesThrough(b.size, last) {
		if lineFilledWith(b, line, mark) {
			return line, true
		}
	}
	return nil, false
}

func linesThrough(size int, cell Cell) [][]Cell {
	lines := make([][]Cell, 0, 4)

	// Row
	row := make([]Cell, size)
	for c := range size {
		row[c] = Cell{Row: cell.Row, Col: c}
	}
	lines = append(lines, row)

	// Column
	col := make([]Cell, size)
	for r := range size {
		col[r] = Cell{Row: r, Col: cell.Col}
	}
	lines = append(lines, col)

	// Top-left to bottom-right
	if cell.Row == cell.Col {
		diag := make([]Cell, size)
		for i := range size {
			diag[i] = Cell{Row: i, Col: i}
		}
		lines = append(lines, diag)
	}

	// Top-right to bottom-left
	if cell.Row+cell.Col == size-1 {
		anti := make([]Cell, size)
		for i := range size {
			anti[i] = Cell{Row: i, Col: size - 1 - i}
		}
		lines = append(lines, anti)
	}

	return lines
}

func lineFilledWith(b *Board, line []Cell, mark PlayerMark) bool {
	for _, cell := range line {
		if b.Mark(cell) != mark {
			return false
		}
	}
	return true
}
