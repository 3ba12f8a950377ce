package room

//go:generate mockgen -source=room.go -destination=mocks/mock_room.go -package=mocks

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/player"
	"ctchen222/tictactoe-minimax/internal/validator"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("room")

var (
	ErrNotYourTurn      = errors.New("it's not a human player's turn")
	ErrNotAgentTurn     = errors.New("it's not an agent's turn")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrGameInProgress   = errors.New("game is still in progress")
)

// MoveCalculator defines an interface for an agent that can calculate and commit a move.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board *game.Board, mark game.PlayerMark, strategy bot.Strategy) (game.Cell, bool)
}

// Config describes who sits at the table.
type Config struct {
	// HumanMark is the mark of the seat driven by the presentation layer.
	HumanMark game.PlayerMark `validate:"mark"`
	// Opponent controls the other mark.
	Opponent player.Controller
	// FirstTurn fixes who moves first. Empty draws it at random for every game.
	FirstTurn game.PlayerMark `validate:"omitempty,mark"`
	Board     game.BoardConfig
}

// Room represents a local game table: two seats and the game being played.
type Room struct {
	ID             string
	Players        []*player.Player
	cfg            Config
	game           *game.Game
	moveCalculator MoveCalculator
	rng            *rand.Rand
	mu             sync.Mutex
}

// NewRoom seats the human and the opponent and starts the first game.
func NewRoom(cfg Config, calculator MoveCalculator, rng *rand.Rand) (*Room, error) {
	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid room config: %w", err)
	}
	if calculator == nil && cfg.Opponent.Kind() == player.KindAgent {
		return nil, errors.New("an agent opponent needs a move calculator")
	}
	if rng == nil && cfg.FirstTurn == game.None {
		return nil, errors.New("a random first turn needs a randomness source")
	}

	r := &Room{
		ID: uuid.New().String(),
		Players: []*player.Player{
			player.NewPlayer(cfg.HumanMark, player.Human()),
			player.NewPlayer(game.Opponent(cfg.HumanMark), cfg.Opponent),
		},
		cfg:            cfg,
		moveCalculator: calculator,
		rng:            rng,
	}
	if err := r.newGame(); err != nil {
		return nil, err
	}

	slog.Info("Room created", "room.id", r.ID,
		"human.mark", cfg.HumanMark, "opponent", cfg.Opponent.String(), "first", r.game.CurrentTurn)
	return r, nil
}

func (r *Room) newGame() error {
	first := r.cfg.FirstTurn
	if first == game.None {
		first = game.RandomlyChooseFirstPlayer(r.rng)
	}
	g, err := game.NewGameWithConfig(r.cfg.Board, first)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	r.game = g
	return nil
}

// HumanMove plays the current human player's mark on cell. game.ErrCellOccupied is
// recoverable: the turn stays where it was and the caller keeps asking for input.
func (r *Room) HumanMove(ctx context.Context, cell game.Cell) (game.Outcome, error) {
	ctx, span := tracer.Start(ctx, "room.HumanMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("move.row", cell.Row),
		attribute.Int("move.col", cell.Col),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game.IsFinished() {
		return r.game.Outcome, game.ErrGameFinished
	}

	current := r.current()
	if current.Controller.Kind() != player.KindHuman {
		span.SetStatus(codes.Error, "Human move on an agent's turn")
		return r.game.Outcome, ErrNotYourTurn
	}

	outcome, err := r.game.Move(cell)
	if err != nil {
		slog.WarnContext(ctx, "invalid move from player", "player.id", current.ID, "cell", cell, "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid move")
		return outcome, err
	}
	span.SetAttributes(attribute.Bool("move.valid", true))

	r.logOutcome(ctx, current, cell, outcome)
	return outcome, nil
}

// AgentMove lets the agent whose turn it is pick and commit a cell.
func (r *Room) AgentMove(ctx context.Context) (game.Cell, game.Outcome, error) {
	ctx, span := tracer.Start(ctx, "room.AgentMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game.IsFinished() {
		return game.Cell{}, r.game.Outcome, game.ErrGameFinished
	}

	current := r.current()
	switch current.Controller.Kind() {
	case player.KindAgent:
		cell, ok := r.moveCalculator.CalculateNextMove(ctx, r.game.Board, current.Mark, current.Controller.Strategy())
		if !ok {
			slog.WarnContext(ctx, "agent found no move", "player.id", current.ID, "room.id", r.ID)
			span.SetStatus(codes.Error, "No available moves")
			return game.Cell{}, r.game.Outcome, ErrNoAvailableMoves
		}

		outcome, err := r.game.Record(cell)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Agent move could not be recorded")
			return game.Cell{}, outcome, fmt.Errorf("agent move %s: %w", cell, err)
		}
		span.SetAttributes(attribute.Int("move.row", cell.Row), attribute.Int("move.col", cell.Col))

		r.logOutcome(ctx, current, cell, outcome)
		return cell, outcome, nil
	default:
		span.SetStatus(codes.Error, "Agent move on a human's turn")
		return game.Cell{}, r.game.Outcome, ErrNotAgentTurn
	}
}

func (r *Room) logOutcome(ctx context.Context, p *player.Player, cell game.Cell, outcome game.Outcome) {
	slog.InfoContext(ctx, "Move played", "room.id", r.ID, "player.id", p.ID,
		"mark", p.Mark, "cell", cell, "status", outcome.Status)

	switch outcome.Status {
	case game.StatusWon:
		slog.InfoContext(ctx, "Game won", "room.id", r.ID, "winner", outcome.Winner, "line", outcome.Line)
	case game.StatusTied:
		slog.InfoContext(ctx, "Game tied", "room.id", r.ID)
	}
}
