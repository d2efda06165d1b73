package game

import (
	"slices"

	"DartTableApi/internal/board"
)

// Player is the engines' view of one roster entry. The roster itself lives
// outside the engines; scoring state references players by ID only.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type TurnPhase int

const (
	WaitingForThrow TurnPhase = iota
	TurnActive
	TurnResolving
	TurnEnded
)

func (p TurnPhase) String() string {
	switch p {
	case WaitingForThrow:
		return "waiting"
	case TurnActive:
		return "active"
	case TurnResolving:
		return "resolving"
	case TurnEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Turn is the generic per-turn state machine shared by every variant: it
// tracks the darts of the current turn, enforces the three-dart cap before
// any event reaches a rule engine, and rotates round-robin over active
// players when a turn ends.
type Turn struct {
	Phase       TurnPhase     `json:"phase"`
	Darts       []board.Throw `json:"darts"`
	ActiveIndex int           `json:"active_index"`
}

func NewTurn() Turn {
	return Turn{Phase: WaitingForThrow}
}

// DartsLeft returns how many darts the active player still has this turn.
func (t Turn) DartsLeft() int {
	return board.MaxThrowsPerTurn - len(t.Darts)
}

// AddThrow records a dart. It returns false when the throw must be dropped,
// either because the turn already holds three darts or because the turn is
// mid-resolve; dropped throws never reach a rule engine.
func (t Turn) AddThrow(throw board.Throw) (Turn, bool) {
	if t.Phase == TurnResolving {
		return t, false
	}
	if len(t.Darts) >= board.MaxThrowsPerTurn {
		return t, false
	}

	t.Darts = append(slices.Clone(t.Darts), throw)
	t.Phase = TurnActive
	return t, true
}

// RemoveThrow undoes the tail dart. It returns false when there is nothing
// to undo.
func (t Turn) RemoveThrow() (Turn, bool) {
	if len(t.Darts) == 0 {
		return t, false
	}

	t.Darts = slices.Clone(t.Darts[:len(t.Darts)-1])
	if len(t.Darts) == 0 {
		t.Phase = WaitingForThrow
	}
	return t, true
}

// Resolve marks the turn as being scored. Engines call it when a TurnEnded
// event arrives, apply their scoring, then Advance.
func (t Turn) Resolve() Turn {
	t.Phase = TurnResolving
	return t
}

// Advance closes the resolved turn and hands play to the next active player,
// wrapping round-robin and skipping inactive roster entries. With no active
// players the index stays put.
func (t Turn) Advance(players []Player) Turn {
	t.Phase = TurnEnded
	t.Darts = nil

	if len(players) == 0 {
		return t
	}

	next := t.ActiveIndex
	for i := 1; i <= len(players); i++ {
		candidate := (t.ActiveIndex + i) % len(players)
		if players[candidate].IsActive {
			next = candidate
			break
		}
	}
	t.ActiveIndex = next

	return t
}
