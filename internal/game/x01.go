package game

import (
	"slices"

	"DartTableApi/internal/board"
	"DartTableApi/internal/checkout"
)

// X01Player carries one player's progress through a leg. Remaining only
// changes when a turn resolves; during a turn the provisional score lives in
// X01State.TurnScore so a bust can revert cleanly.
type X01Player struct {
	Player
	Remaining          int  `json:"remaining"`
	TurnStartRemaining int  `json:"-"`
	Opened             bool `json:"-"`
	Darts              int  `json:"darts"`
	Scored             int  `json:"-"`
	HighTurn           int  `json:"high_turn"`
	Tons180            int  `json:"tons_180"`
}

// X01State is the full state of one X01 leg. Apply is a pure transition;
// callers keep the returned value and discard the old one.
type X01State struct {
	Settings  X01Settings `json:"settings"`
	Players   []X01Player `json:"players"`
	Turn      Turn        `json:"turn"`
	TurnScore int         `json:"turn_score"`
	Bust      bool        `json:"bust"`
	WinnerID  string      `json:"winner_id,omitempty"`
}

func NewX01(settings X01Settings, roster []Player) X01State {
	players := make([]X01Player, 0, len(roster))
	for _, p := range roster {
		players = append(players, X01Player{
			Player:             p,
			Remaining:          settings.BaseScore,
			TurnStartRemaining: settings.BaseScore,
			Opened:             settings.InMode == "" || settings.InMode == FinishSingle,
		})
	}

	turn := NewTurn()
	for i, p := range roster {
		if p.IsActive {
			turn.ActiveIndex = i
			break
		}
	}

	return X01State{
		Settings: settings,
		Players:  players,
		Turn:     turn,
	}
}

// Apply folds one reconciled event into the leg and reports any triggers the
// lighting collaborators should fire.
func (s X01State) Apply(ev board.Event) (X01State, []Trigger) {
	switch ev.Kind {
	case board.ThrowAdded:
		return s.applyThrow(ev.Throw)
	case board.ThrowRemoved:
		return s.removeThrow(ev.Throw)
	case board.TurnEnded:
		return s.endTurn()
	default:
		return s, nil
	}
}

func (s X01State) applyThrow(throw board.Throw) (X01State, []Trigger) {
	if s.WinnerID != "" {
		return s, nil
	}

	turn, ok := s.Turn.AddThrow(throw)
	if !ok {
		return s, nil
	}
	s.Turn = turn
	s.Players = slices.Clone(s.Players)

	p := &s.Players[s.Turn.ActiveIndex]

	points := throw.Segment.Points()
	if !p.Opened {
		if finishQualifies(throw.Segment, s.Settings.InMode) {
			p.Opened = true
		} else {
			// Until the leg is opened the dart is recorded but scores
			// nothing.
			points = 0
		}
	}

	projected := p.Remaining - (s.TurnScore + points)
	s.TurnScore += points

	var triggers []Trigger
	switch {
	case projected < 0 || projected == 1:
		if !s.Bust {
			triggers = append(triggers, TriggerBust)
		}
		s.Bust = true

	case projected == 0 && !s.Bust:
		if points > 0 && finishQualifies(throw.Segment, s.Settings.OutMode) {
			s.WinnerID = p.ID
			triggers = append(triggers, TriggerWin)
		} else {
			triggers = append(triggers, TriggerBust)
			s.Bust = true
		}

	default:
		if !s.Bust {
			if _, ok := checkout.Suggest(projected, s.Turn.DartsLeft()); ok {
				triggers = append(triggers, TriggerCheckout)
			}
		}
	}

	if !s.Bust && s.TurnScore == 180 && len(s.Turn.Darts) == board.MaxThrowsPerTurn {
		triggers = append(triggers, TriggerOneEighty)
	}

	return s, triggers
}

func (s X01State) removeThrow(throw board.Throw) (X01State, []Trigger) {
	turn, ok := s.Turn.RemoveThrow()
	if !ok {
		return s, nil
	}
	s.Turn = turn

	s.TurnScore = max(0, s.TurnScore-throw.Segment.Points())

	// Any undo clears the bust, not only the undo of the dart that caused
	// it.
	s.Bust = false

	if s.WinnerID != "" && s.WinnerID == s.Players[s.Turn.ActiveIndex].ID {
		s.WinnerID = ""
	}

	return s, nil
}

func (s X01State) endTurn() (X01State, []Trigger) {
	s.Turn = s.Turn.Resolve()
	s.Players = slices.Clone(s.Players)

	p := &s.Players[s.Turn.ActiveIndex]
	p.Darts += len(s.Turn.Darts)

	if s.Bust {
		p.Remaining = p.TurnStartRemaining
	} else {
		p.Remaining -= s.TurnScore
		p.Scored += s.TurnScore
		if s.TurnScore > p.HighTurn {
			p.HighTurn = s.TurnScore
		}
		if s.TurnScore == 180 {
			p.Tons180++
		}
	}
	p.TurnStartRemaining = p.Remaining

	s.TurnScore = 0
	s.Bust = false
	s.Turn = s.Turn.Advance(s.roster())

	next := &s.Players[s.Turn.ActiveIndex]
	next.TurnStartRemaining = next.Remaining

	return s, nil
}

// CheckoutSuggestion computes, never stores, the finish for the active
// player's projected score with the darts still in hand.
func (s X01State) CheckoutSuggestion() ([]board.Segment, bool) {
	if s.Bust || s.WinnerID != "" {
		return nil, false
	}
	dartsLeft := s.Turn.DartsLeft()
	if dartsLeft == 0 {
		return nil, false
	}

	p := s.Players[s.Turn.ActiveIndex]
	return checkout.Suggest(p.Remaining-s.TurnScore, dartsLeft)
}

func (s X01State) Finished() bool {
	return s.WinnerID != ""
}

func (s X01State) roster() []Player {
	roster := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		roster = append(roster, p.Player)
	}
	return roster
}

func finishQualifies(seg board.Segment, mode FinishMode) bool {
	switch mode {
	case FinishDouble:
		return seg.IsDouble()
	case FinishMaster:
		return seg.IsDouble() || seg.IsTriple()
	default:
		return seg.Points() > 0
	}
}
