package room

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/player"
)

// current returns the player holding the current turn. Callers hold r.mu.
func (r *Room) current() *player.Player {
	for _, p := range r.Players {
		if p.Mark == r.game.CurrentTurn {
			return p
		}
	}
	return r.Players[0]
}

// Current returns the player whose turn it is.
func (r *Room) Current() *player.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current()
}

// AgentToMove reports whether the game is on and an agent holds the turn.
func (r *Room) AgentToMove() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.game.IsFinished() && r.current().IsBot()
}

// Outcome returns the outcome of the last move.
func (r *Room) Outcome() game.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Outcome
}
