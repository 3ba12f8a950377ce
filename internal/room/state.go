package room

import (
	"context"
	"ctchen222/tictactoe-minimax/pkg/proto"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Rematch replaces the finished game with a fresh board. Seats keep their marks; the
// first turn is drawn again unless the config fixes it.
func (r *Room) Rematch(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "room.Rematch", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.game.IsFinished() {
		slog.WarnContext(ctx, "Rematch requested, but game is not over", "room.id", r.ID)
		span.SetStatus(codes.Error, "Rematch requested before game over")
		return ErrGameInProgress
	}

	if err := r.newGame(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to reset game for rematch")
		return err
	}

	slog.InfoContext(ctx, "Game reset for rematch", "room.id", r.ID, "first", r.game.CurrentTurn)
	return nil
}

// State returns a read-only view of the table for rendering.
func (r *Room) State() proto.ServerToClientMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := proto.ServerToClientMessage{
		Type:         proto.TypeUpdate,
		RoomID:       r.ID,
		Board:        r.game.Board.Rows(),
		Status:       r.game.Outcome.Status.String(),
		WinningCells: r.game.WinningCells(),
	}
	if r.game.IsFinished() {
		msg.Winner = r.game.Outcome.Winner
	} else {
		msg.Next = r.game.CurrentTurn
	}
	return msg
}

// Assignments describes every seat, for the presentation layer to announce.
func (r *Room) Assignments() []proto.PlayerAssignmentMessage {
	assignments := make([]proto.PlayerAssignmentMessage, 0, len(r.Players))
	for _, p := range r.Players {
		assignments = append(assignments, proto.PlayerAssignmentMessage{
			Type:       "assignment",
			PlayerID:   p.ID,
			Mark:       p.Mark,
			Controller: p.Controller.String(),
		})
	}
	return assignments
}
