package room

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/validator"
	"ctchen222/tictactoe-minimax/pkg/proto"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrInvalidMessage = errors.New("invalid message")

// HandleMessage decodes a raw request from the presentation layer and dispatches it.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) (proto.ServerToClientMessage, error) {
	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "error", err)
		return r.State(), fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return r.Dispatch(ctx, &message)
}

// Dispatch validates a request and routes it to the matching operation. It always
// returns the resulting view, also when the request was rejected.
func (r *Room) Dispatch(ctx context.Context, message *proto.ClientToServerMessage) (proto.ServerToClientMessage, error) {
	ctx, span := tracer.Start(ctx, "room.Dispatch", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return r.State(), fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	var err error
	switch message.Type {
	case proto.TypeMove:
		if len(message.Position) != 2 {
			err = fmt.Errorf("%w: move without a position", ErrInvalidMessage)
			break
		}
		_, err = r.HumanMove(ctx, message.Cell())
	case proto.TypeRematch:
		err = r.Rematch(ctx)
	}
	if err != nil {
		span.RecordError(err)
	}
	return r.State(), err
}
