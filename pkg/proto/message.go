package proto

import "ctchen222/tictactoe-minimax/internal/game"

// Message types
const (
	TypeMove    = "move"
	TypeRematch = "rematch"
	TypeUpdate  = "update"
)

// ClientToServerMessage is a request from the presentation layer.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move rematch"`
	Position []int  `json:"position,omitempty" validate:"omitempty,len=2,dive,min=0,max=2"`
}

// Cell returns the requested cell of a move message.
func (m *ClientToServerMessage) Cell() game.Cell {
	if len(m.Position) != 2 {
		return game.Cell{Row: -1, Col: -1}
	}
	return game.Cell{Row: m.Position[0], Col: m.Position[1]}
}

// ServerToClientMessage is the read-only view handed back for rendering.
type ServerToClientMessage struct {
	Type         string              `json:"type" validate:"required"`
	RoomID       string              `json:"roomId,omitempty"`
	Board        [][]game.PlayerMark `json:"board,omitempty"`
	Next         game.PlayerMark     `json:"next,omitempty"`
	Status       string              `json:"status"`
	Winner       game.PlayerMark     `json:"winner,omitempty"`
	WinningCells []game.Cell         `json:"winningCells,omitempty"`
}

// PlayerAssignmentMessage informs a player of their assigned mark.
type PlayerAssignmentMessage struct {
	Type       string          `json:"type"`
	PlayerID   string          `json:"playerId,omitempty"`
	Mark       game.PlayerMark `json:"mark"`
	Controller string          `json:"controller"`
}
