package game

import (
	"ctchen222/tictactoe-minimax/internal/validator"
	"errors"
	"fmt"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// DefaultSize is the only board size the game supports.
	DefaultSize = 3
)

var (
	ErrCellOccupied = errors.New("cell already occupied")
	ErrInvalidCell  = errors.New("invalid cell")
	ErrInvalidMark  = errors.New("invalid mark")
)

// Valid reports whether m is a mark a player can place.
func (m PlayerMark) Valid() bool {
	return m == PlayerX || m == PlayerO
}

// Opponent returns the other player's mark.
func Opponent(mark PlayerMark) PlayerMark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Cell addresses one position on the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// BoardConfig describes the board layout. Only 3x3 boards are supported.
type BoardConfig struct {
	Size int `yaml:"size" env:"BOARD_SIZE" env-default:"3" validate:"eq=3"`
}

func DefaultBoardConfig() BoardConfig {
	return BoardConfig{Size: DefaultSize}
}

// Board owns the grid of cell marks. It is mutated in place for the length of one game.
type Board struct {
	size  int
	cells []PlayerMark
}

// NewBoard returns an empty 3x3 board.
func NewBoard() *Board {
	return newBoard(DefaultSize)
}

// NewBoardWithConfig returns an empty board laid out as cfg describes.
func NewBoardWithConfig(cfg BoardConfig) (*Board, error) {
	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid board config: %w", err)
	}
	return newBoard(cfg.Size), nil
}

// BoardFromRows builds a board from a row-major snapshot such as the one returned by Rows.
func BoardFromRows(rows [][]PlayerMark) (*Board, error) {
	b := newBoard(DefaultSize)
	if len(rows) != b.size {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidCell, b.size, len(rows))
	}
	for r, row := range rows {
		if len(row) != b.size {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidCell, r, len(row))
		}
		for c, mark := range row {
			if mark != None && !mark.Valid() {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrInvalidMark, mark, r, c)
			}
			b.cells[r*b.size+c] = mark
		}
	}
	return b, nil
}

func newBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]PlayerMark, size*size),
	}
}

// Size returns the number of rows (and columns) of the board.
func (b *Board) Size() int {
	return b.size
}

// Contains reports whether cell lies on the board.
func (b *Board) Contains(cell Cell) bool {
	return cell.Row >= 0 && cell.Row < b.size && cell.Col >= 0 && cell.Col < b.size
}

// Mark returns the mark at cell, or None for an empty or off-board cell.
func (b *Board) Mark(cell Cell) PlayerMark {
	if !b.Contains(cell) {
		return None
	}
	return b.cells[b.index(cell)]
}

// Apply places mark on cell if and only if the cell is empty.
// An occupied cell yields ErrCellOccupied and leaves the board untouched.
func (b *Board) Apply(cell Cell, mark PlayerMark) (Cell, error) {
	if !mark.Valid() {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}
	if !b.Contains(cell) {
		return Cell{}, fmt.Errorf("%w: %s", ErrInvalidCell, cell)
	}
	i := b.index(cell)
	if b.cells[i] != None {
		return Cell{}, fmt.Errorf("%w: %s", ErrCellOccupied, cell)
	}
	b.cells[i] = mark
	return cell, nil
}

// Undo clears cell unconditionally. It exists for search backtracking: callers must only
// undo cells they set themselves.
func (b *Board) Undo(cell Cell) {
	if !b.Contains(cell) {
		return
	}
	b.cells[b.index(cell)] = None
}

// Cells returns every cell in row-major order.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, 0, len(b.cells))
	for i := range b.cells {
		cells = append(cells, b.cell(i))
	}
	return cells
}

// AvailableCells returns the empty cells in row-major order.
func (b *Board) AvailableCells() []Cell {
	var available []Cell
	for i, mark := range b.cells {
		if mark == None {
			available = append(available, b.cell(i))
		}
	}
	return available
}

// IsFull reports whether no empty cell remains.
func (b *Board) IsFull() bool {
	for _, mark := range b.cells {
		if mark == None {
			return false
		}
	}
	return true
}

// Rows converts the board to a freshly allocated slice of rows for rendering.
func (b *Board) Rows() [][]PlayerMark {
	rows := make([][]PlayerMark, b.size)
	for r := range rows {
		rows[r] = make([]PlayerMark, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := newBoard(b.size)
	copy(clone.cells, b.cells)
	return clone
}

// Equal reports whether both boards hold the same marks cell for cell.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b *Board) index(cell Cell) int {
	return cell.Row*b.size + cell.Col
}

func (b *Board) cell(i int) Cell {
	return Cell{Row: i / b.size, Col: i % b.size}
}
