package bot

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// moveIn is a helper function to check if a move is in a list of expected moves.
func moveIn(move game.Cell, list []game.Cell) bool {
	for _, item := range list {
		if item == move {
			return true
		}
	}
	return false
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{name: "random", input: "random", want: StrategyRandom},
		{name: "easy alias", input: "easy", want: StrategyRandom},
		{name: "optimal", input: "optimal", want: StrategyOptimal},
		{name: "smart alias, mixed case", input: " Smart ", want: StrategyOptimal},
		{name: "hard alias", input: "hard", want: StrategyOptimal},
		{name: "unknown", input: "medium", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRandomMove(t *testing.T) {
	x, o, e := game.PlayerX, game.PlayerO, game.None

	t.Run("Only one spot left", func(t *testing.T) {
		for seed := range uint64(50) {
			b := boardFrom(t, [][]game.PlayerMark{{x, o, x}, {o, x, o}, {x, e, o}})
			rng := rand.New(rand.NewPCG(seed, seed))

			cell, ok := RandomMove(b, o, rng)

			require.True(t, ok)
			assert.Equal(t, game.Cell{Row: 2, Col: 1}, cell)
			assert.True(t, b.IsFull())
		}
	})

	t.Run("Multiple spots left - picks an available cell", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 11))
		seen := map[game.Cell]bool{}
		for range 200 {
			b := game.NewBoard()
			_, err := b.Apply(game.Cell{Row: 1, Col: 1}, x)
			require.NoError(t, err)
			available := b.AvailableCells()

			cell, ok := RandomMove(b, o, rng)

			require.True(t, ok)
			assert.True(t, moveIn(cell, available), "invalid move %v", cell)
			assert.Equal(t, o, b.Mark(cell))
			seen[cell] = true
		}
		assert.Len(t, seen, 8, "200 draws should reach every empty cell")
	})

	t.Run("Same seed, same move", func(t *testing.T) {
		first, _ := RandomMove(game.NewBoard(), x, rand.New(rand.NewPCG(42, 42)))
		second, _ := RandomMove(game.NewBoard(), x, rand.New(rand.NewPCG(42, 42)))
		assert.Equal(t, first, second)
	})

	t.Run("Full board", func(t *testing.T) {
		b := boardFrom(t, [][]game.PlayerMark{{x, o, x}, {x, o, o}, {o, x, x}})
		_, ok := RandomMove(b, o, rand.New(rand.NewPCG(1, 1)))
		assert.False(t, ok)
	})
}

func TestCalculator_CalculateNextMove(t *testing.T) {
	ctx := context.Background()
	calc := NewCalculator(rand.New(rand.NewPCG(3, 5)))

	t.Run("Optimal", func(t *testing.T) {
		b := game.NewBoard()
		_, err := b.Apply(game.Cell{Row: 0, Col: 0}, game.PlayerX)
		require.NoError(t, err)

		cell, ok := calc.CalculateNextMove(ctx, b, game.PlayerO, StrategyOptimal)

		require.True(t, ok)
		assert.Equal(t, game.Cell{Row: 1, Col: 1}, cell)
	})

	t.Run("Random", func(t *testing.T) {
		b := game.NewBoard()

		cell, ok := calc.CalculateNextMove(ctx, b, game.PlayerX, StrategyRandom)

		require.True(t, ok)
		assert.Equal(t, game.PlayerX, b.Mark(cell))
		assert.Len(t, b.AvailableCells(), 8)
	})

	t.Run("No available moves", func(t *testing.T) {
		x, o := game.PlayerX, game.PlayerO
		for _, strategy := range []Strategy{StrategyRandom, StrategyOptimal} {
			b := boardFrom(t, [][]game.PlayerMark{{x, o, x}, {x, o, o}, {o, x, x}})
			_, ok := calc.CalculateNextMove(ctx, b, o, strategy)
			assert.False(t, ok, strategy.String())
		}
	})
}

func TestAgentMove_Telemetry(t *testing.T) {
	// Given: recording trace and metric providers
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	// When: the agent searches a position
	b := game.NewBoard()
	_, err := b.Apply(game.Cell{Row: 1, Col: 1}, game.PlayerX)
	require.NoError(t, err)
	_, ok := AgentMove(context.Background(), b, game.PlayerO, StrategyOptimal, nil)
	require.True(t, ok)

	// Then: a span describes the move
	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Contains(t, names, "bot.AgentMove")

	// Then: move and search metrics were recorded
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	metrics := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			metrics[m.Name] = true
		}
	}
	assert.True(t, metrics["bot.moves"])
	assert.True(t, metrics["bot.search.nodes"])
}
