package game

import (
	"slices"

	"DartTableApi/internal/board"
)

// X01Standing tracks legs and sets won across an X01 match, plus the scoring
// totals of completed legs.
type X01Standing struct {
	ID       string `json:"id"`
	LegsWon  int    `json:"legs_won"`
	SetsWon  int    `json:"sets_won"`
	Darts    int    `json:"darts"`
	Scored   int    `json:"scored"`
	HighTurn int    `json:"high_turn"`
	Tons180  int    `json:"tons_180"`
}

// X01Match layers legs and sets over the single-leg engine. It is pure
// orchestration: each leg is a fresh X01State, the starting thrower rotates
// between legs, and standings accumulate until someone reaches the configured
// legs or sets target.
type X01Match struct {
	Settings   X01Settings   `json:"settings"`
	Roster     []Player      `json:"roster"`
	Leg        X01State      `json:"leg"`
	LegNumber  int           `json:"leg_number"`
	SetNumber  int           `json:"set_number"`
	Standings  []X01Standing `json:"standings"`
	StartIndex int           `json:"-"`
	WinnerID   string        `json:"winner_id,omitempty"`
}

func NewX01Match(settings X01Settings, roster []Player) X01Match {
	standings := make([]X01Standing, 0, len(roster))
	for _, p := range roster {
		standings = append(standings, X01Standing{ID: p.ID})
	}

	leg := NewX01(settings, roster)

	return X01Match{
		Settings:   settings,
		Roster:     roster,
		Leg:        leg,
		LegNumber:  1,
		SetNumber:  1,
		Standings:  standings,
		StartIndex: leg.Turn.ActiveIndex,
	}
}

func (m X01Match) Apply(ev board.Event) (X01Match, []Trigger) {
	if m.WinnerID != "" {
		return m, nil
	}

	var triggers []Trigger
	m.Leg, triggers = m.Leg.Apply(ev)

	// A leg is complete once its closing turn has resolved, not on the
	// winning dart itself; the board still reports the takeout.
	if m.Leg.WinnerID == "" || ev.Kind != board.TurnEnded {
		return m, triggers
	}

	m.Standings = slices.Clone(m.Standings)
	for _, p := range m.Leg.Players {
		st := m.standing(p.ID)
		st.Darts += p.Darts
		st.Scored += p.Scored
		st.Tons180 += p.Tons180
		if p.HighTurn > st.HighTurn {
			st.HighTurn = p.HighTurn
		}
	}

	s := m.standing(m.Leg.WinnerID)
	s.LegsWon++

	legsTarget := max(m.Settings.LegsToWin, 1)
	if s.LegsWon >= legsTarget {
		if m.Settings.MatchMode == MatchModeSets {
			s.SetsWon++
			for i := range m.Standings {
				m.Standings[i].LegsWon = 0
			}
			m.SetNumber++
			if s.SetsWon >= max(m.Settings.SetsToWin, 1) {
				m.WinnerID = s.ID
			}
		} else {
			m.WinnerID = s.ID
		}
	}

	if m.WinnerID != "" {
		return m, triggers
	}

	// Next leg: fresh engine, starting thrower rotates round-robin.
	m.LegNumber++
	m.StartIndex = nextActive(m.Roster, m.StartIndex)
	m.Leg = NewX01(m.Settings, m.Roster)
	m.Leg.Turn.ActiveIndex = m.StartIndex

	return m, triggers
}

func (m X01Match) Finished() bool {
	return m.WinnerID != ""
}

func (m *X01Match) standing(id string) *X01Standing {
	for i := range m.Standings {
		if m.Standings[i].ID == id {
			return &m.Standings[i]
		}
	}
	return &X01Standing{ID: id}
}

func nextActive(players []Player, current int) int {
	if len(players) == 0 {
		return current
	}
	for i := 1; i <= len(players); i++ {
		candidate := (current + i) % len(players)
		if players[candidate].IsActive {
			return candidate
		}
	}
	return current
}
