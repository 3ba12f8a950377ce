package main

import (
	"bufio"
	"bytes"
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/config"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/player"
	"ctchen222/tictactoe-minimax/internal/room"
	"ctchen222/tictactoe-minimax/pkg/proto"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, opponent player.Controller, input string) (*session, *bytes.Buffer) {
	t.Helper()
	rng := rand.New(rand.NewPCG(7, 7))
	r, err := room.NewRoom(room.Config{
		HumanMark: game.PlayerX,
		Opponent:  opponent,
		FirstTurn: game.PlayerX,
		Board:     game.DefaultBoardConfig(),
	}, bot.NewCalculator(rng), rng)
	require.NoError(t, err)

	var buf bytes.Buffer
	return &session{
		room: r,
		in:   bufio.NewScanner(strings.NewReader(input)),
		out:  &renderer{out: termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))},
	}, &buf
}

func TestSession_TwoHumansTopRow(t *testing.T) {
	// Given: X takes the top row while O plays the middle row, then declines a rematch
	input := "0 0\n1 0\n0,1\n1 1\n0 2\nn\n"
	s, out := newTestSession(t, player.Human(), input)

	// When: the session runs to the end of input
	require.NoError(t, s.run(context.Background()))

	// Then: X is announced as the winner
	assert.Contains(t, out.String(), "Player X wins!")
	assert.Equal(t, game.PlayerX, s.room.Outcome().Winner)
}

func TestSession_RecoversFromBadInput(t *testing.T) {
	input := "1 1\n1 1\nfoo bar\n3 0\n1\nquit\n"
	s, out := newTestSession(t, player.Human(), input)

	require.NoError(t, s.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "That cell is already taken")
	assert.Contains(t, text, `"foo" is not a number`)
	assert.Contains(t, text, "Enter a row and a column between 0 and 2.")
	assert.Contains(t, text, "expected a row and a column")
	assert.Equal(t, game.PlayerO, s.room.Current().Mark)
}

func TestSession_OptimalAgentAnswersCorner(t *testing.T) {
	s, out := newTestSession(t, player.Agent(bot.StrategyOptimal), "0 0\n")

	require.NoError(t, s.run(context.Background()))

	assert.Contains(t, out.String(), "Player O: agent(optimal)")
	assert.Contains(t, out.String(), "Agent O plays (1,1)")
	assert.Equal(t, game.PlayerO, s.room.State().Board[1][1])
}

func TestSession_Rematch(t *testing.T) {
	// X O X / X O O / O X X, then one more game that ends at EOF
	input := "0 0\n0 1\n0 2\n1 1\n1 0\n1 2\n2 1\n2 0\n2 2\ny\n"
	s, out := newTestSession(t, player.Human(), input)

	require.NoError(t, s.run(context.Background()))

	assert.Contains(t, out.String(), "It's a Tie!")
	assert.Equal(t, game.StatusOngoing, s.room.Outcome().Status)
	assert.Equal(t, game.None, s.room.State().Board[0][0])
}

func TestSession_StopsOnCancel(t *testing.T) {
	s, _ := newTestSession(t, player.Human(), "0 0\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.run(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Board(t *testing.T) {
	var buf bytes.Buffer
	r := &renderer{out: termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))}

	r.Board(proto.ServerToClientMessage{
		Board: [][]game.PlayerMark{
			{game.PlayerX, game.PlayerX, game.PlayerX},
			{game.PlayerO, game.PlayerO, game.None},
			{game.None, game.None, game.None},
		},
		WinningCells: []game.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	})

	assert.Contains(t, buf.String(), " 0  X | X | X ")
	assert.Contains(t, buf.String(), " 1  O | O | . ")
	assert.Contains(t, buf.String(), "---+---+---")
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantPos  []int
		wantQuit bool
		wantErr  bool
	}{
		{name: "space separated", line: "1 2", wantPos: []int{1, 2}},
		{name: "comma separated", line: " 2,0 ", wantPos: []int{2, 0}},
		{name: "quit", line: "q", wantQuit: true},
		{name: "out of range is left to the room", line: "5 5", wantPos: []int{5, 5}},
		{name: "one number", line: "1", wantErr: true},
		{name: "not a number", line: "a b", wantErr: true},
		{name: "empty", line: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parseMove(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuit, cmd.quit)
			if tt.wantPos != nil {
				assert.Equal(t, proto.TypeMove, cmd.message.Type)
				assert.Equal(t, tt.wantPos, cmd.message.Position)
			}
		})
	}
}

func TestNewRoom_FromConfig(t *testing.T) {
	conf := &config.Config{
		HumanMark: "O",
		FirstTurn: "X",
		Board:     game.DefaultBoardConfig(),
		Opponent:  config.Opponent{Kind: "agent", Strategy: "smart"},
		Seed:      3,
	}

	r, err := newRoom(conf)

	require.NoError(t, err)
	assert.True(t, r.AgentToMove())
	assert.Equal(t, "agent(optimal)", r.Players[1].Controller.String())

	conf.Opponent.Strategy = "genius"
	_, err = newRoom(conf)
	require.Error(t, err)
}
