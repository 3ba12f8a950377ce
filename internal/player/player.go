package player

import (
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/game"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ControllerKind tells who decides a player's moves.
type ControllerKind int

const (
	KindHuman ControllerKind = iota
	KindAgent
)

func (k ControllerKind) String() string {
	if k == KindAgent {
		return "agent"
	}
	return "human"
}

// Controller is either Human or Agent(strategy). Callers dispatch on Kind.
type Controller struct {
	kind     ControllerKind
	strategy bot.Strategy
}

// Human returns a controller fed by the presentation layer.
func Human() Controller {
	return Controller{kind: KindHuman}
}

// Agent returns a computer controller using strategy.
func Agent(strategy bot.Strategy) Controller {
	return Controller{kind: KindAgent, strategy: strategy}
}

// ParseController builds a controller from configuration values. The strategy is only
// read for agents.
func ParseController(kind, strategy string) (Controller, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "human", "":
		return Human(), nil
	case "agent", "bot", "ai":
		s, err := bot.ParseStrategy(strategy)
		if err != nil {
			return Controller{}, err
		}
		return Agent(s), nil
	default:
		return Controller{}, fmt.Errorf("unknown controller kind %q", kind)
	}
}

func (c Controller) Kind() ControllerKind {
	return c.kind
}

// Strategy returns the agent strategy. It is meaningless for humans.
func (c Controller) Strategy() bot.Strategy {
	return c.strategy
}

func (c Controller) String() string {
	if c.kind == KindAgent {
		return fmt.Sprintf("agent(%s)", c.strategy)
	}
	return "human"
}

// Player represents a player seated in a room.
type Player struct {
	ID         string
	Mark       game.PlayerMark
	Controller Controller
}

// NewPlayer seats a player with a fresh ID. Agents get a short "bot-" ID.
func NewPlayer(mark game.PlayerMark, controller Controller) *Player {
	id := uuid.New().String()
	if controller.Kind() == KindAgent {
		id = "bot-" + id[:8]
	}
	return &Player{
		ID:         id,
		Mark:       mark,
		Controller: controller,
	}
}

// IsBot reports whether the player's moves come from an agent.
func (p *Player) IsBot() bool {
	return p.Controller.Kind() == KindAgent
}
