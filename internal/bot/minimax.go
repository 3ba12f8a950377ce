package bot

import (
	"ctchen222/tictactoe-minimax/internal/game"
)

// Searcher scores moves by exhaustive minimax over the whole remaining game tree.
// It explores on the live board with apply/undo and leaves it as it found it.
type Searcher struct {
	agent    game.PlayerMark
	opponent game.PlayerMark
	nodes    int64
}

// NewSearcher returns a searcher playing for agent.
func NewSearcher(agent game.PlayerMark) *Searcher {
	return &Searcher{
		agent:    agent,
		opponent: game.Opponent(agent),
	}
}

// Nodes returns how many positions the searcher has visited so far.
func (s *Searcher) Nodes() int64 {
	return s.nodes
}

// ChooseMove picks the optimal cell for the agent, commits it on the board and returns
// it. It returns false when the board has no empty cell.
func (s *Searcher) ChooseMove(b *game.Board) (game.Cell, bool) {
	best, ok := s.bestMove(b)
	if !ok {
		return game.Cell{}, false
	}
	if _, err := b.Apply(best.cell, s.agent); err != nil {
		return game.Cell{}, false
	}
	return best.cell, true
}

type scoredCell struct {
	cell  game.Cell
	score int
}

// bestMove returns the highest scoring cell. Ties keep the first cell seen in row-major
// order.
func (s *Searcher) bestMove(b *game.Board) (scoredCell, bool) {
	var (
		best  scoredCell
		found bool
	)
	for _, sc := range s.scoreMoves(b) {
		if !found || sc.score > best.score {
			best = sc
			found = true
		}
	}
	return best, found
}

// scoreMoves scores every available cell for the agent, in row-major order.
func (s *Searcher) scoreMoves(b *game.Board) []scoredCell {
	available := b.AvailableCells()
	scores := make([]scoredCell, 0, len(available))
	for _, cell := range available {
		if _, err := b.Apply(cell, s.agent); err != nil {
			continue
		}
		scores = append(scores, scoredCell{cell: cell, score: s.minimax(b, cell, false)})
		b.Undo(cell)
	}
	return scores
}

// minimax scores the position reached by the move on last. It returns 1 when the agent
// has won, -1 when the opponent has won and 0 for a tie; otherwise it takes the max
// (agent to move) or min (opponent to move) over every continuation.
func (s *Searcher) minimax(b *game.Board, last game.Cell, maximizing bool) int {
	s.nodes++

	if _, won := game.CompletesLine(b, last, s.agent); won {
		return 1
	}
	if _, won := game.CompletesLine(b, last, s.opponent); won {
		return -1
	}
	if b.IsFull() {
		return 0
	}

	mark := s.opponent
	if maximizing {
		mark = s.agent
	}

	var (
		bestScore int
		scored    bool
	)
	for _, cell := range b.AvailableCells() {
		if _, err := b.Apply(cell, mark); err != nil {
			continue
		}
		score := s.minimax(b, cell, !maximizing)
		b.Undo(cell)

		switch {
		case !scored:
			bestScore = score
			scored = true
		case maximizing && score > bestScore:
			bestScore = score
		case !maximizing && score < bestScore:
			bestScore = score
		}
	}
	return bestScore
}

// ChooseMove runs a fresh minimax search for agent on b and commits the chosen cell.
func ChooseMove(b *game.Board, agent game.PlayerMark) (game.Cell, bool) {
	return NewSearcher(agent).ChooseMove(b)
}
