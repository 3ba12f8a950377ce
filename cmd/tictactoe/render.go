package main

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/pkg/proto"
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// renderer draws the table with termenv, degrading to plain text on dumb terminals.
type renderer struct {
	out *termenv.Output
}

func (r *renderer) mark(m game.PlayerMark, winning bool) string {
	if m == game.None {
		return r.out.String(".").Faint().String()
	}
	style := r.out.String(string(m)).Bold()
	switch m {
	case game.PlayerX:
		style = style.Foreground(r.out.Color("1"))
	case game.PlayerO:
		style = style.Foreground(r.out.Color("4"))
	}
	if winning {
		style = style.Reverse()
	}
	return style.String()
}

// Board prints the grid with row and column indices. Cells of the winning line are
// highlighted.
func (r *renderer) Board(state proto.ServerToClientMessage) {
	winning := make(map[game.Cell]bool, len(state.WinningCells))
	for _, c := range state.WinningCells {
		winning[c] = true
	}

	var sb strings.Builder
	sb.WriteString("\n   ")
	for col := range state.Board {
		fmt.Fprintf(&sb, " %d  ", col)
	}
	sb.WriteString("\n")
	for row, marks := range state.Board {
		fmt.Fprintf(&sb, " %d ", row)
		for col, m := range marks {
			if col > 0 {
				sb.WriteString("|")
			}
			fmt.Fprintf(&sb, " %s ", r.mark(m, winning[game.Cell{Row: row, Col: col}]))
		}
		sb.WriteString("\n")
		if row < len(state.Board)-1 {
			sb.WriteString("   " + strings.Repeat("---+", len(marks)-1) + "---\n")
		}
	}
	fmt.Fprint(r.out, sb.String())
}

// Result announces a finished game.
func (r *renderer) Result(state proto.ServerToClientMessage) {
	switch state.Status {
	case game.StatusWon.String():
		fmt.Fprintln(r.out, r.out.String(fmt.Sprintf("Player %s wins!", state.Winner)).Bold())
	case game.StatusTied.String():
		fmt.Fprintln(r.out, r.out.String("It's a Tie!").Bold())
	}
}

func (r *renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

func (r *renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// command is one parsed line of player input.
type command struct {
	quit    bool
	message *proto.ClientToServerMessage
}

// parseMove reads "row col" (commas allowed) into a move request. Range checks are
// left to the room.
func parseMove(line string) (command, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) == 1 && isQuit(fields[0]) {
		return command{quit: true}, nil
	}
	if len(fields) != 2 {
		return command{}, fmt.Errorf("expected a row and a column, got %q", strings.TrimSpace(line))
	}

	position := make([]int, 2)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return command{}, fmt.Errorf("%q is not a number", f)
		}
		position[i] = n
	}
	return command{message: &proto.ClientToServerMessage{Type: proto.TypeMove, Position: position}}, nil
}

// parseAnswer reads the play-again prompt. Anything but yes ends the session.
func parseAnswer(line string) command {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "again":
		return command{message: &proto.ClientToServerMessage{Type: proto.TypeRematch}}
	default:
		return command{quit: true}
	}
}

func isQuit(s string) bool {
	switch strings.ToLower(s) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
