package main

import (
	"bufio"
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/config"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/logger"
	"ctchen222/tictactoe-minimax/internal/player"
	"ctchen222/tictactoe-minimax/internal/room"
	"ctchen222/tictactoe-minimax/internal/telemetry"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf := config.MustLoad(configPath())
	logger.Init(os.Stderr, conf.LogLevel)

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, conf.Telemetry, os.Stderr)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	r, err := newRoom(conf)
	if err != nil {
		slog.Error("failed to set up the table", "error", err)
		os.Exit(1)
	}

	s := &session{
		room:  r,
		in:    bufio.NewScanner(os.Stdin),
		out:   &renderer{out: termenv.NewOutput(os.Stdout)},
		delay: conf.AgentDelay,
	}
	if err := s.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("game aborted", "error", err)
	}
}

// configPath prefers $CONFIG_PATH, then ./config.yml. An empty result means env only.
func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	if _, err := os.Stat("config.yml"); err == nil {
		return "config.yml"
	}
	return ""
}

func newRoom(conf *config.Config) (*room.Room, error) {
	opponent, err := player.ParseController(conf.Opponent.Kind, conf.Opponent.Strategy)
	if err != nil {
		return nil, fmt.Errorf("invalid opponent: %w", err)
	}

	rng := newRand(conf.Seed)
	return room.NewRoom(room.Config{
		HumanMark: conf.HumanPlayerMark(),
		Opponent:  opponent,
		FirstTurn: conf.FirstPlayerMark(),
		Board:     conf.Board,
	}, bot.NewCalculator(rng), rng)
}

// newRand returns a PCG source. A zero seed draws one from the clock.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>32|1))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// session runs the terminal loop over one room until the player quits or input ends.
type session struct {
	room  *room.Room
	in    *bufio.Scanner
	out   *renderer
	delay time.Duration
}

func (s *session) run(ctx context.Context) error {
	for _, a := range s.room.Assignments() {
		s.out.Printf("Player %s: %s\n", a.Mark, a.Controller)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		state := s.room.State()
		if state.Status != game.StatusOngoing.String() {
			s.out.Board(state)
			s.out.Result(state)
			s.out.Printf("Play again? [y/N] ")
			line, ok := s.readLine()
			if !ok {
				return nil
			}
			cmd := parseAnswer(line)
			if cmd.quit {
				return nil
			}
			if _, err := s.room.Dispatch(ctx, cmd.message); err != nil {
				return err
			}
			continue
		}

		if s.room.AgentToMove() {
			if err := s.agentTurn(ctx); err != nil {
				return err
			}
			continue
		}

		s.out.Board(state)
		s.out.Printf("Player %s, enter row and column (0-2): ", state.Next)
		line, ok := s.readLine()
		if !ok {
			return nil
		}
		cmd, err := parseMove(line)
		if err != nil {
			s.out.Println(err)
			continue
		}
		if cmd.quit {
			return nil
		}
		if _, err := s.room.Dispatch(ctx, cmd.message); err != nil {
			s.out.Println(describe(err))
		}
	}
}

func (s *session) agentTurn(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.delay):
		}
	}

	mark := s.room.Current().Mark
	cell, _, err := s.room.AgentMove(ctx)
	if err != nil {
		return fmt.Errorf("agent move: %w", err)
	}
	s.out.Printf("Agent %s plays %s\n", mark, cell)
	return nil
}

func (s *session) readLine() (string, bool) {
	if !s.in.Scan() {
		s.out.Println()
		return "", false
	}
	return s.in.Text(), true
}

// describe turns a rejected move into a hint for the player.
func describe(err error) string {
	switch {
	case errors.Is(err, game.ErrCellOccupied):
		return "That cell is already taken, pick another one."
	case errors.Is(err, room.ErrInvalidMessage):
		return "Enter a row and a column between 0 and 2."
	case errors.Is(err, room.ErrNotYourTurn):
		return "Wait for your turn."
	default:
		return err.Error()
	}
}
