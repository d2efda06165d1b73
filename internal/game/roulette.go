package game

import (
	"math/rand/v2"
	"slices"

	"DartTableApi/internal/board"
)

// RouletteWinningScore ends the game: the first player to reach it wins and
// no further spins happen.
const RouletteWinningScore = 10

type RoulettePhase string

const (
	PhaseLobby  RoulettePhase = "lobby"
	PhaseSpin   RoulettePhase = "spin"
	PhaseAim    RoulettePhase = "aim"
	PhaseResult RoulettePhase = "result"
	PhaseWinner RoulettePhase = "winner"
)

type RouletteResultKind string

const (
	ResultHit       RouletteResultKind = "hit"
	ResultJailbreak RouletteResultKind = "jailbreak"
	ResultBackfire  RouletteResultKind = "backfire"
)

type RoulettePlayer struct {
	ID            string `json:"id"`
	Score         int    `json:"score"`
	TimesTargeted int    `json:"times_targeted"`
}

// RouletteResult describes the outcome of the last judged dart for
// presentation. Who drinks and how much is named here; pouring is the
// presentation layer's problem.
type RouletteResult struct {
	Kind        RouletteResultKind `json:"kind"`
	ShooterID   string             `json:"shooter_id"`
	VictimID    string             `json:"victim_id,omitempty"`
	Target      int                `json:"target"`
	Multiplier  int                `json:"multiplier,omitempty"`
	Sips        int                `json:"sips,omitempty"`
	FinishDrink bool               `json:"finish_drink,omitempty"`
	DrinkerIDs  []string           `json:"drinker_ids"`
}

type RouletteState struct {
	Settings   RouletteSettings `json:"settings"`
	Players    []RoulettePlayer `json:"players"`
	Phase      RoulettePhase    `json:"phase"`
	ShooterID  string           `json:"shooter_id,omitempty"`
	VictimID   string           `json:"victim_id,omitempty"`
	Target     int              `json:"target,omitempty"`
	LastResult *RouletteResult  `json:"last_result,omitempty"`
	WinnerID   string           `json:"winner_id,omitempty"`
}

func NewRoulette(settings RouletteSettings, roster []Player) RouletteState {
	players := make([]RoulettePlayer, 0, len(roster))
	for _, p := range roster {
		players = append(players, RoulettePlayer{ID: p.ID})
	}

	return RouletteState{
		Settings: settings,
		Players:  players,
		Phase:    PhaseLobby,
	}
}

// Start leaves the lobby and arms the first spin.
func (s RouletteState) Start() RouletteState {
	if s.Phase == PhaseLobby {
		s.Phase = PhaseSpin
	}
	return s
}

// Spin picks the next shooter, target and victim. The shooter and target are
// uniform; the victim is fairness-weighted: among everyone except the
// shooter, only those targeted the fewest times so far are eligible, chosen
// uniformly. Spinning outside the spin phase is a no-op.
func (s RouletteState) Spin(rng *rand.Rand) RouletteState {
	if s.Phase != PhaseSpin || len(s.Players) < 2 {
		return s
	}

	shooter := s.Players[rng.IntN(len(s.Players))]
	s.ShooterID = shooter.ID
	s.Target = 1 + rng.IntN(20)

	minTargeted := -1
	for _, p := range s.Players {
		if p.ID == shooter.ID {
			continue
		}
		if minTargeted == -1 || p.TimesTargeted < minTargeted {
			minTargeted = p.TimesTargeted
		}
	}

	eligible := make([]string, 0, len(s.Players)-1)
	for _, p := range s.Players {
		if p.ID != shooter.ID && p.TimesTargeted == minTargeted {
			eligible = append(eligible, p.ID)
		}
	}
	s.VictimID = eligible[rng.IntN(len(eligible))]

	s.Phase = PhaseAim
	return s
}

func (s RouletteState) Apply(ev board.Event) (RouletteState, []Trigger) {
	switch ev.Kind {
	case board.ThrowAdded:
		return s.judge(ev.Throw)
	case board.TurnEnded:
		if s.Phase == PhaseResult {
			s.Phase = PhaseSpin
		}
		return s, nil
	default:
		// A takeout undo cannot unspill a drink; removals are ignored.
		return s, nil
	}
}

// judge scores the aimed dart. Only the first dart of the aim phase counts;
// anything thrown outside it is ignored.
func (s RouletteState) judge(throw board.Throw) (RouletteState, []Trigger) {
	if s.Phase != PhaseAim {
		return s, nil
	}

	s.Players = slices.Clone(s.Players)
	seg := throw.Segment

	switch {
	case seg.IsBull():
		// Jailbreak: nobody scores, everybody drinks.
		s.LastResult = &RouletteResult{
			Kind:       ResultJailbreak,
			ShooterID:  s.ShooterID,
			Target:     s.Target,
			DrinkerIDs: s.playerIDs(),
		}
		s.Phase = PhaseResult
		return s, []Trigger{TriggerJailbreak}

	case seg.Matches(s.Target):
		shooter := s.player(s.ShooterID)
		shooter.Score += seg.Multiplier
		s.player(s.VictimID).TimesTargeted++

		result := &RouletteResult{
			Kind:       ResultHit,
			ShooterID:  s.ShooterID,
			VictimID:   s.VictimID,
			Target:     s.Target,
			Multiplier: seg.Multiplier,
			DrinkerIDs: []string{s.VictimID},
		}
		switch seg.Multiplier {
		case 3:
			if s.Settings.TripleAction == TripleActionFinish {
				result.FinishDrink = true
			} else {
				result.Sips = s.Settings.TripleSips
			}
		case 2:
			result.Sips = s.Settings.DoubleSips
		default:
			result.Sips = s.Settings.SingleSips
		}
		s.LastResult = result

		if shooter.Score >= RouletteWinningScore {
			s.WinnerID = shooter.ID
			s.Phase = PhaseWinner
			return s, []Trigger{TriggerWin}
		}
		s.Phase = PhaseResult
		return s, nil

	default:
		// Backfire: the shooter missed the assigned number and drinks.
		s.LastResult = &RouletteResult{
			Kind:       ResultBackfire,
			ShooterID:  s.ShooterID,
			Target:     s.Target,
			Sips:       s.Settings.BackfireSips,
			DrinkerIDs: []string{s.ShooterID},
		}
		s.Phase = PhaseResult
		return s, []Trigger{TriggerBackfire}
	}
}

func (s RouletteState) Finished() bool {
	return s.Phase == PhaseWinner
}

func (s *RouletteState) player(id string) *RoulettePlayer {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return &RoulettePlayer{ID: id}
}

func (s RouletteState) playerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.ID)
	}
	return ids
}
