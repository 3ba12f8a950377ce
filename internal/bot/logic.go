package bot

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Strategy selects how the agent picks its cell.
type Strategy int

const (
	StrategyRandom Strategy = iota
	StrategyOptimal
)

func (s Strategy) String() string {
	switch s {
	case StrategyRandom:
		return "random"
	case StrategyOptimal:
		return "optimal"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a configured strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random", "easy":
		return StrategyRandom, nil
	case "optimal", "smart", "hard", "minimax":
		return StrategyOptimal, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", name)
	}
}

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")

	moveCounter, _ = meter.Int64Counter("bot.moves",
		metric.WithDescription("Moves committed by the agent"))
	searchNodes, _ = meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Positions visited by one minimax search"))
)

// Calculator implements the room's MoveCalculator with an injected randomness source.
type Calculator struct {
	rng *rand.Rand
}

// NewCalculator returns a Calculator drawing random moves from rng.
func NewCalculator(rng *rand.Rand) *Calculator {
	return &Calculator{rng: rng}
}

// CalculateNextMove calls the package-level function to satisfy the interface.
func (c *Calculator) CalculateNextMove(ctx context.Context, board *game.Board, mark game.PlayerMark, strategy Strategy) (game.Cell, bool) {
	return AgentMove(ctx, board, mark, strategy, c.rng)
}

// AgentMove picks a cell for mark with the given strategy, commits it and returns it.
// It returns false when no cell is available.
func AgentMove(ctx context.Context, board *game.Board, mark game.PlayerMark, strategy Strategy, rng *rand.Rand) (game.Cell, bool) {
	ctx, span := tracer.Start(ctx, "bot.AgentMove", trace.WithAttributes(
		attribute.String("bot.strategy", strategy.String()),
		attribute.String("bot.mark", string(mark)),
		attribute.Int("board.available", len(board.AvailableCells())),
	))
	defer span.End()

	var (
		cell game.Cell
		ok   bool
	)
	switch strategy {
	case StrategyRandom:
		cell, ok = RandomMove(board, mark, rng)
	default:
		start := time.Now()
		searcher := NewSearcher(mark)
		cell, ok = searcher.ChooseMove(board)
		searchNodes.Record(ctx, searcher.Nodes())
		span.SetAttributes(attribute.Int64("bot.search.nodes", searcher.Nodes()))
		slog.DebugContext(ctx, "minimax search finished",
			"mark", mark, "nodes", searcher.Nodes(), "elapsed", time.Since(start))
	}

	if !ok {
		span.SetAttributes(attribute.Bool("bot.moved", false))
		return game.Cell{}, false
	}

	moveCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("bot.strategy", strategy.String())))
	span.SetAttributes(
		attribute.Bool("bot.moved", true),
		attribute.Int("move.row", cell.Row),
		attribute.Int("move.col", cell.Col),
	)
	return cell, true
}

// RandomMove marks a uniformly chosen empty cell. It returns false on a full board.
func RandomMove(board *game.Board, mark game.PlayerMark, rng *rand.Rand) (game.Cell, bool) {
	availableMoves := board.AvailableCells()
	if len(availableMoves) == 0 {
		return game.Cell{}, false
	}

	cell := availableMoves[rng.IntN(len(availableMoves))]
	if _, err := board.Apply(cell, mark); err != nil {
		return game.Cell{}, false
	}
	return cell, true
}
