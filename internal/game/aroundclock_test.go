package game

import (
	"DartTableApi/internal/assert"
	"DartTableApi/internal/board"
	"math/rand/v2"
	"slices"
	"testing"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newTestClock(t *testing.T, settings AroundTheClockSettings) AroundTheClockState {
	t.Helper()
	return NewAroundTheClock(settings, testRoster(), testRng())
}

func clockThrow(t *testing.T, s AroundTheClockState, name string) (AroundTheClockState, []Trigger) {
	t.Helper()
	return s.Apply(board.Event{Kind: board.ThrowAdded, Throw: throwNamed(t, name)})
}

func TestClockSequenceOrders(t *testing.T) {
	asc := newTestClock(t, AroundTheClockSettings{Order: OrderAscending, Mode: HitModeFull,
		HitsRequired: 1})
	assert.Equal(t, asc.Sequence[0], 1)
	assert.Equal(t, asc.Sequence[19], 20)
	assert.Equal(t, len(asc.Sequence), 20)

	desc := newTestClock(t, AroundTheClockSettings{Order: OrderDescending, Mode: HitModeFull,
		HitsRequired: 1})
	assert.Equal(t, desc.Sequence[0], 20)
	assert.Equal(t, desc.Sequence[19], 1)

	bull := newTestClock(t, AroundTheClockSettings{Order: OrderAscending, Mode: HitModeFull,
		HitsRequired: 1, BullMode: true})
	assert.Equal(t, len(bull.Sequence), 21)
	assert.Equal(t, bull.Sequence[20], 25)

	shuffled := newTestClock(t, AroundTheClockSettings{Order: OrderShuffled, Mode: HitModeFull,
		HitsRequired: 1})
	sorted := slices.Clone(shuffled.Sequence)
	slices.Sort(sorted)
	for i, n := range sorted {
		assert.Equal(t, n, i+1)
	}
}

func TestClockMultiplierSkipAdvancesBySkillStrength(t *testing.T) {
	s := newTestClock(t, AroundTheClockSettings{
		Order:        OrderAscending,
		Mode:         HitModeFull,
		Multiplier:   true,
		HitsRequired: 1,
		BullMode:     true,
	})

	s, _ = clockThrow(t, s, "T1")
	assert.SliceEqual(t, s.Players[0].TargetsHit, []int{1, 2, 3})
	assert.Equal(t, s.CurrentTarget(0), 4)
}

func TestClockSkipNeverConsumesTerminalBull(t *testing.T) {
	s := newTestClock(t, AroundTheClockSettings{
		Order:        OrderAscending,
		Mode:         HitModeFull,
		Multiplier:   true,
		HitsRequired: 1,
		BullMode:     true,
	})

	// Park the player on 19 so a treble would overrun the bull.
	s.Players[0].TargetsHit = slices.Clone(s.Sequence[:18])
	assert.Equal(t, s.CurrentTarget(0), 19)

	s, _ = clockThrow(t, s, "T19")
	assert.Equal(t, s.CurrentTarget(0), 25)
	assert.Equal(t, s.WinnerID, "")

	// The bull must then fall to its own dart.
	s, triggers := clockThrow(t, s, "S25")
	assert.Equal(t, s.WinnerID, "p1")
	assert.Equal(t, slices.Contains(triggers, TriggerWin), true)
}

func TestClockSkipDisabledAdvancesOne(t *testing.T) {
	s := newTestClock(t, AroundTheClockSettings{
		Order:        OrderAscending,
		Mode:         HitModeFull,
		Multiplier:   false,
		HitsRequired: 1,
	})

	s, _ = clockThrow(t, s, "T1")
	assert.SliceEqual(t, s.Players[0].TargetsHit, []int{1})
	assert.Equal(t, s.CurrentTarget(0), 2)
}

func TestClockHitsRequired(t *testing.T) {
	s := newTestClock(t, AroundTheClockSettings{
		Order:        OrderAscending,
		Mode:         HitModeSingle,
		HitsRequired: 2,
	})

	s, _ = clockThrow(t, s, "S1")
	assert.Equal(t, s.Players[0].TargetHits, 1)
	assert.Equal(t, s.CurrentTarget(0), 1)

	s, _ = clockThrow(t, s, "S1")
	assert.Equal(t, s.Players[0].TargetHits, 0)
	assert.Equal(t, s.CurrentTarget(0), 2)
}

func TestClockBedModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     HitMode
		throw    board.Throw
		strength int
	}{
		{
			name:     "Triple Mode Accepts Treble",
			mode:     HitModeTriple,
			throw:    board.Throw{Segment: board.Numbered(1, 3)},
			strength: 1,
		},
		{
			name:     "Triple Mode Rejects Single",
			mode:     HitModeTriple,
			throw:    board.Throw{Segment: board.Numbered(1, 1)},
			strength: 0,
		},
		{
			name:     "Double Mode Accepts Double",
			mode:     HitModeDouble,
			throw:    board.Throw{Segment: board.Numbered(1, 2)},
			strength: 1,
		},
		{
			name:     "Single Mode Rejects Treble",
			mode:     HitModeSingle,
			throw:    board.Throw{Segment: board.Numbered(1, 3)},
			strength: 0,
		},
		{
			name: "Outer Single Mode Checks Bed",
			mode: HitModeOuterSingle,
			throw: board.Throw{Segment: board.Numbered(1, 1),
				Bed: board.BedOuterSingle},
			strength: 1,
		},
		{
			name: "Outer Single Mode Rejects Inner Single",
			mode: HitModeOuterSingle,
			throw: board.Throw{Segment: board.Numbered(1, 1),
				Bed: board.BedSingle},
			strength: 0,
		},
		{
			name:     "Wrong Number Never Counts",
			mode:     HitModeFull,
			throw:    board.Throw{Segment: board.Numbered(5, 3)},
			strength: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, hitStrength(tt.throw, 1, tt.mode), tt.strength)
		})
	}
}

func TestClockUndoRevertsProgressAndStats(t *testing.T) {
	s := newTestClock(t, AroundTheClockSettings{
		Order:        OrderAscending,
		Mode:         HitModeFull,
		Multiplier:   true,
		HitsRequired: 1,
	})

	s, _ = clockThrow(t, s, "T1")
	s, _ = clockThrow(t, s, "Miss")
	assert.Equal(t, s.Players[0].TotalDarts, 2)
	assert.Equal(t, s.Players[0].Misses, 1)

	s, _ = s.Apply(board.Event{Kind: board.ThrowRemoved})
	assert.Equal(t, s.Players[0].TotalDarts, 1)
	assert.Equal(t, s.Players[0].Misses, 0)

	s, _ = s.Apply(board.Event{Kind: board.ThrowRemoved})
	assert.Equal(t, s.Players[0].TotalDarts, 0)
	assert.Equal(t, len(s.Players[0].TargetsHit), 0)
	assert.Equal(t, s.CurrentTarget(0), 1)
}

func TestClockTurnEndRotatesAndKeepsProgress(t *testing.T) {
	s := newTestClock(t, AroundTheClockSettings{
		Order:        OrderAscending,
		Mode:         HitModeFull,
		HitsRequired: 1,
	})

	s, _ = clockThrow(t, s, "S1")
	s, _ = s.Apply(board.Event{Kind: board.TurnEnded})
	assert.Equal(t, s.Turn.ActiveIndex, 1)
	assert.SliceEqual(t, s.Players[0].TargetsHit, []int{1})

	// The undo journal does not survive the turn boundary.
	s, _ = s.Apply(board.Event{Kind: board.ThrowRemoved})
	assert.SliceEqual(t, s.Players[0].TargetsHit, []int{1})
}

func TestClockStatsAccumulate(t *testing.T) {
	s := newTestClock(t, AroundTheClockSettings{
		Order:        OrderAscending,
		Mode:         HitModeFull,
		HitsRequired: 1,
	})

	s, _ = clockThrow(t, s, "S1")
	s, _ = clockThrow(t, s, "Miss")
	s, _ = clockThrow(t, s, "S2")

	p := s.Players[0]
	assert.Equal(t, p.TotalDarts, 3)
	assert.Equal(t, p.Hits, 2)
	assert.Equal(t, p.Misses, 1)
}
