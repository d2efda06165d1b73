package game

import (
	"DartTableApi/internal/assert"
	"DartTableApi/internal/board"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

func testRouletteSettings() RouletteSettings {
	return RouletteSettings{
		SingleSips:   1,
		DoubleSips:   2,
		TripleAction: TripleActionSips,
		TripleSips:   5,
		BackfireSips: 2,
	}
}

func spunRoulette(players int, rng *rand.Rand) RouletteState {
	roster := make([]Player, 0, players)
	for i := 0; i < players; i++ {
		roster = append(roster, Player{ID: fmt.Sprintf("p%d", i+1), IsActive: true})
	}
	s := NewRoulette(testRouletteSettings(), roster)
	return s.Start().Spin(rng)
}

func targetThrow(s RouletteState, multiplier int) board.Event {
	return board.Event{
		Kind:  board.ThrowAdded,
		Throw: board.Throw{Segment: board.Numbered(s.Target, multiplier)},
	}
}

func missThrow(s RouletteState) board.Event {
	// Any number other than the assigned target backfires.
	number := s.Target%20 + 1
	return board.Event{
		Kind:  board.ThrowAdded,
		Throw: board.Throw{Segment: board.Numbered(number, 1)},
	}
}

func TestRouletteSpinNeverTargetsTheShooter(t *testing.T) {
	rng := testRng()

	for i := 0; i < 1000; i++ {
		s := spunRoulette(2, rng)
		assert.Equal(t, s.Phase, PhaseAim)
		assert.True(t, s.ShooterID != s.VictimID)
		assert.True(t, s.Target >= 1 && s.Target <= 20)
	}
}

func TestRouletteVictimSelectionIsFairnessWeighted(t *testing.T) {
	rng := testRng()
	roster := []Player{
		{ID: "p1", IsActive: true},
		{ID: "p2", IsActive: true},
		{ID: "p3", IsActive: true},
	}
	s := NewRoulette(testRouletteSettings(), roster).Start()
	s.Players[1].TimesTargeted = 4

	// With p2 far ahead on times targeted, the victim must always be one
	// of the others (unless p1 or p3 shoots, in which case the remaining
	// zero-count player is picked).
	for i := 0; i < 200; i++ {
		spun := s.Spin(rng)
		if spun.ShooterID != "p2" {
			assert.True(t, spun.VictimID != "p2")
		}
	}
}

func TestRouletteHitScoresMultiplier(t *testing.T) {
	rng := testRng()
	s := spunRoulette(3, rng)
	shooter := s.ShooterID
	victim := s.VictimID

	s, triggers := s.Apply(targetThrow(s, 2))
	assert.Equal(t, len(triggers), 0)
	assert.Equal(t, s.player(shooter).Score, 2)
	assert.Equal(t, s.player(victim).TimesTargeted, 1)
	assert.Equal(t, s.Phase, PhaseResult)
	assert.Equal(t, s.LastResult.Kind, ResultHit)
	assert.Equal(t, s.LastResult.Sips, 2)
	assert.SliceEqual(t, s.LastResult.DrinkerIDs, []string{victim})
}

func TestRouletteTripleFinishAction(t *testing.T) {
	rng := testRng()
	settings := testRouletteSettings()
	settings.TripleAction = TripleActionFinish

	roster := []Player{{ID: "p1", IsActive: true}, {ID: "p2", IsActive: true}}
	s := NewRoulette(settings, roster).Start().Spin(rng)

	s, _ = s.Apply(targetThrow(s, 3))
	assert.Equal(t, s.LastResult.FinishDrink, true)
	assert.Equal(t, s.LastResult.Sips, 0)
}

func TestRouletteJailbreak(t *testing.T) {
	rng := testRng()
	s := spunRoulette(3, rng)
	shooter := s.ShooterID
	victim := s.VictimID

	s, triggers := s.Apply(board.Event{
		Kind:  board.ThrowAdded,
		Throw: board.Throw{Segment: board.Bull(2)},
	})
	assert.Equal(t, slices.Contains(triggers, TriggerJailbreak), true)
	assert.Equal(t, s.player(shooter).Score, 0)
	assert.Equal(t, s.player(victim).TimesTargeted, 0)
	assert.Equal(t, s.LastResult.Kind, ResultJailbreak)
	assert.Equal(t, len(s.LastResult.DrinkerIDs), 3)
}

func TestRouletteBackfire(t *testing.T) {
	rng := testRng()
	s := spunRoulette(3, rng)
	shooter := s.ShooterID
	victim := s.VictimID

	s, triggers := s.Apply(missThrow(s))
	assert.Equal(t, slices.Contains(triggers, TriggerBackfire), true)
	assert.Equal(t, s.player(shooter).Score, 0)
	assert.Equal(t, s.player(victim).TimesTargeted, 0)
	assert.Equal(t, s.LastResult.Kind, ResultBackfire)
	assert.SliceEqual(t, s.LastResult.DrinkerIDs, []string{shooter})
	assert.Equal(t, s.LastResult.Sips, 2)
}

func TestRouletteWinIsTerminal(t *testing.T) {
	rng := testRng()
	s := spunRoulette(2, rng)

	var winner string
	for i := 0; i < 100; i++ {
		shooter := s.ShooterID
		var triggers []Trigger
		s, triggers = s.Apply(targetThrow(s, 3))
		if s.WinnerID != "" {
			winner = shooter
			assert.Equal(t, slices.Contains(triggers, TriggerWin), true)
			break
		}
		s, _ = s.Apply(board.Event{Kind: board.TurnEnded})
		s = s.Spin(rng)
	}

	assert.True(t, winner != "")
	assert.Equal(t, s.Phase, PhaseWinner)
	assert.Equal(t, s.WinnerID, winner)

	// The machine never issues another spin once decided.
	after := s.Spin(rng)
	assert.Equal(t, after.Phase, PhaseWinner)
	assert.Equal(t, after.ShooterID, s.ShooterID)

	// And judges nothing further.
	after, _ = after.Apply(targetThrow(after, 3))
	assert.Equal(t, after.player(after.WinnerID).Score, s.player(s.WinnerID).Score)
}

func TestRouletteIgnoresThrowsOutsideAimPhase(t *testing.T) {
	roster := []Player{{ID: "p1", IsActive: true}, {ID: "p2", IsActive: true}}
	s := NewRoulette(testRouletteSettings(), roster)

	// Still in the lobby: nothing to judge.
	s, triggers := s.Apply(board.Event{
		Kind:  board.ThrowAdded,
		Throw: board.Throw{Segment: board.Numbered(10, 3)},
	})
	assert.Equal(t, len(triggers), 0)
	assert.Equal(t, s.LastResult == nil, true)

	// A second dart in the same aim phase is ignored too.
	s = s.Start().Spin(testRng())
	s, _ = s.Apply(targetThrow(s, 1))
	score := s.player(s.ShooterID).Score
	s, _ = s.Apply(targetThrow(s, 3))
	assert.Equal(t, s.player(s.ShooterID).Score, score)
}
