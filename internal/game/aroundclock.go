package game

import (
	"math/rand/v2"
	"slices"

	"DartTableApi/internal/board"
)

const bullTarget = 25

// AroundTheClockPlayer holds one player's progress along the target
// sequence. TargetsHit is ordered and defines progress: the current target is
// always the sequence entry just past it.
type AroundTheClockPlayer struct {
	ID         string `json:"id"`
	TargetsHit []int  `json:"targets_hit"`
	TargetHits int    `json:"target_hits"`
	TotalDarts int    `json:"total_darts"`
	Hits       int    `json:"hits"`
	Misses     int    `json:"misses"`
}

// atcDelta journals the effect of one dart within the current turn so an
// undo can revert it exactly.
type atcDelta struct {
	player   int
	appended int
	hitsWere int
	hit      bool
}

type AroundTheClockState struct {
	Settings AroundTheClockSettings `json:"settings"`
	Sequence []int                  `json:"sequence"`
	Players  []AroundTheClockPlayer `json:"players"`
	Roster   []Player               `json:"roster"`
	Turn     Turn                   `json:"turn"`
	WinnerID string                 `json:"winner_id,omitempty"`
	journal  []atcDelta
}

// NewAroundTheClock builds the target sequence once for the whole match. A
// shuffled order draws from rng; ascending and descending ignore it.
func NewAroundTheClock(settings AroundTheClockSettings, roster []Player, rng *rand.Rand) AroundTheClockState {
	sequence := make([]int, 0, 21)
	switch settings.Order {
	case OrderDescending:
		for n := 20; n >= 1; n-- {
			sequence = append(sequence, n)
		}
	case OrderShuffled:
		for n := 1; n <= 20; n++ {
			sequence = append(sequence, n)
		}
		rng.Shuffle(len(sequence), func(i, j int) {
			sequence[i], sequence[j] = sequence[j], sequence[i]
		})
	default:
		for n := 1; n <= 20; n++ {
			sequence = append(sequence, n)
		}
	}
	if settings.BullMode {
		sequence = append(sequence, bullTarget)
	}

	players := make([]AroundTheClockPlayer, 0, len(roster))
	for _, p := range roster {
		players = append(players, AroundTheClockPlayer{ID: p.ID})
	}

	turn := NewTurn()
	for i, p := range roster {
		if p.IsActive {
			turn.ActiveIndex = i
			break
		}
	}

	return AroundTheClockState{
		Settings: settings,
		Sequence: sequence,
		Players:  players,
		Roster:   roster,
		Turn:     turn,
	}
}

// CurrentTarget returns the target the given player must hit next, or 0 once
// the player has finished the sequence.
func (s AroundTheClockState) CurrentTarget(playerIndex int) int {
	p := s.Players[playerIndex]
	if len(p.TargetsHit) >= len(s.Sequence) {
		return 0
	}
	return s.Sequence[len(p.TargetsHit)]
}

func (s AroundTheClockState) Apply(ev board.Event) (AroundTheClockState, []Trigger) {
	switch ev.Kind {
	case board.ThrowAdded:
		return s.applyThrow(ev.Throw)
	case board.ThrowRemoved:
		return s.removeThrow()
	case board.TurnEnded:
		return s.endTurn()
	default:
		return s, nil
	}
}

func (s AroundTheClockState) applyThrow(throw board.Throw) (AroundTheClockState, []Trigger) {
	if s.WinnerID != "" {
		return s, nil
	}

	turn, ok := s.Turn.AddThrow(throw)
	if !ok {
		return s, nil
	}
	s.Turn = turn
	s.Players = slices.Clone(s.Players)
	s.journal = slices.Clone(s.journal)

	idx := s.Turn.ActiveIndex
	p := &s.Players[idx]
	target := s.CurrentTarget(idx)

	strength := hitStrength(throw, target, s.Settings.Mode)

	delta := atcDelta{player: idx, hitsWere: p.TargetHits, hit: strength > 0}
	p.TotalDarts++
	if strength > 0 {
		p.Hits++
	} else {
		p.Misses++
	}

	switch {
	case strength == 0:
		// no progress

	case s.Settings.Mode == HitModeFull && s.Settings.Multiplier && strength > 1:
		// Multiplier skip-ahead: a strength-M hit clears M sequence
		// positions at once, but the terminal bull is never consumed by a
		// skip; it must be hit with its own dart.
		p.TargetsHit = slices.Clone(p.TargetsHit)
		for i := 0; i < strength; i++ {
			pos := len(p.TargetsHit)
			if pos >= len(s.Sequence) {
				break
			}
			if s.Sequence[pos] == bullTarget && i > 0 {
				break
			}
			p.TargetsHit = append(p.TargetsHit, s.Sequence[pos])
			delta.appended++
		}
		p.TargetHits = 0

	default:
		p.TargetHits += 1
		if p.TargetHits >= max(s.Settings.HitsRequired, 1) {
			p.TargetsHit = append(slices.Clone(p.TargetsHit), target)
			delta.appended = 1
			p.TargetHits = 0
		}
	}

	s.journal = append(s.journal, delta)

	var triggers []Trigger
	if len(p.TargetsHit) == len(s.Sequence) {
		s.WinnerID = p.ID
		triggers = append(triggers, TriggerWin)
	}

	return s, triggers
}

func (s AroundTheClockState) removeThrow() (AroundTheClockState, []Trigger) {
	turn, ok := s.Turn.RemoveThrow()
	if !ok || len(s.journal) == 0 {
		return s, nil
	}
	s.Turn = turn
	s.Players = slices.Clone(s.Players)
	s.journal = slices.Clone(s.journal)

	delta := s.journal[len(s.journal)-1]
	s.journal = s.journal[:len(s.journal)-1]

	p := &s.Players[delta.player]
	p.TotalDarts--
	if delta.hit {
		p.Hits--
	} else {
		p.Misses--
	}
	if delta.appended > 0 {
		p.TargetsHit = slices.Clone(p.TargetsHit[:len(p.TargetsHit)-delta.appended])
	}
	p.TargetHits = delta.hitsWere

	if s.WinnerID == p.ID {
		s.WinnerID = ""
	}

	return s, nil
}

func (s AroundTheClockState) endTurn() (AroundTheClockState, []Trigger) {
	s.Turn = s.Turn.Resolve()
	s.journal = nil
	s.Turn = s.Turn.Advance(s.Roster)
	return s, nil
}

func (s AroundTheClockState) Finished() bool {
	return s.WinnerID != ""
}

// hitStrength judges a throw against the current target under the given hit
// mode. Full mode returns the multiplier as strength; the bed modes accept
// only their own bed and always count as one.
func hitStrength(throw board.Throw, target int, mode HitMode) int {
	if target == 0 || !throw.Segment.Matches(target) {
		return 0
	}

	switch mode {
	case HitModeFull:
		return throw.Segment.Multiplier
	case HitModeOuterSingle:
		if throw.Bed == board.BedOuterSingle {
			return 1
		}
	case HitModeSingle:
		if throw.Segment.Multiplier == 1 {
			return 1
		}
	case HitModeDouble:
		if throw.Segment.Multiplier == 2 {
			return 1
		}
	case HitModeTriple:
		if throw.Segment.IsTriple() {
			return 1
		}
	}

	return 0
}
