package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrGameFinished = errors.New("game already finished")

// Game tracks one game from an empty board to a win or a tie.
type Game struct {
	Board       *Board
	CurrentTurn PlayerMark
	Outcome     Outcome
}

// NewGame starts a game on an empty 3x3 board with first to move.
func NewGame(first PlayerMark) *Game {
	return &Game{
		Board:       NewBoard(),
		CurrentTurn: first,
	}
}

// NewGameWithConfig starts a game on an empty board laid out as cfg describes.
func NewGameWithConfig(cfg BoardConfig, first PlayerMark) (*Game, error) {
	if !first.Valid() {
		return nil, fmt.Errorf("%w: first turn %q", ErrInvalidMark, first)
	}
	board, err := NewBoardWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Game{Board: board, CurrentTurn: first}, nil
}

// Move plays the current turn's mark on cell, evaluates the result and passes the turn
// when the game goes on. A rejected move leaves the game untouched.
func (g *Game) Move(cell Cell) (Outcome, error) {
	if g.IsFinished() {
		return g.Outcome, ErrGameFinished
	}
	if _, err := g.Board.Apply(cell, g.CurrentTurn); err != nil {
		return g.Outcome, err
	}
	return g.settle(cell), nil
}

// Record does the turn bookkeeping for a cell the current player has already marked on
// the board, as an agent does when it commits its own move.
func (g *Game) Record(cell Cell) (Outcome, error) {
	if g.IsFinished() {
		return g.Outcome, ErrGameFinished
	}
	if got := g.Board.Mark(cell); got != g.CurrentTurn {
		return g.Outcome, fmt.Errorf("%w: %s holds %q, want %q", ErrInvalidCell, cell, got, g.CurrentTurn)
	}
	return g.settle(cell), nil
}

func (g *Game) settle(cell Cell) Outcome {
	g.Outcome = Evaluate(g.Board, cell, g.CurrentTurn)
	if !g.Outcome.IsOver() {
		g.CurrentTurn = Opponent(g.CurrentTurn)
	}
	return g.Outcome
}

// IsFinished reports whether the game was won or tied.
func (g *Game) IsFinished() bool {
	return g.Outcome.IsOver()
}

// WinningCells returns the cells to highlight, empty unless the game was won.
func (g *Game) WinningCells() []Cell {
	if g.Outcome.Status != StatusWon {
		return nil
	}
	line := make([]Cell, len(g.Outcome.Line))
	copy(line, g.Outcome.Line)
	return line
}

// HumanMove places mark on cell for a human player. It returns false when the cell is
// taken or off the board; the caller must then keep the turn where it is.
func HumanMove(b *Board, mark PlayerMark, cell Cell) (Cell, bool) {
	applied, err := b.Apply(cell, mark)
	if err != nil {
		return Cell{}, false
	}
	return applied, true
}

// RandomlyChooseFirstPlayer picks X or O with equal probability.
func RandomlyChooseFirstPlayer(rng *rand.Rand) PlayerMark {
	if rng.IntN(2) == 0 {
		return PlayerX
	}
	return PlayerO
}
