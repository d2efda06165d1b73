package game

import (
	"DartTableApi/internal/assert"
	"DartTableApi/internal/board"
	"testing"
)

func winLeg(t *testing.T, m X01Match, winnerIndex int) X01Match {
	t.Helper()

	// Rig the leg so the thrower on turn is the intended winner with a
	// one-dart finish.
	for m.Leg.Turn.ActiveIndex != winnerIndex {
		m, _ = m.Apply(board.Event{Kind: board.TurnEnded})
	}
	m.Leg.Players[winnerIndex].Remaining = 40
	m.Leg.Players[winnerIndex].TurnStartRemaining = 40

	m, _ = m.Apply(board.Event{Kind: board.ThrowAdded, Throw: throwNamed(t, "D20")})
	m, _ = m.Apply(board.Event{Kind: board.TurnEnded})
	return m
}

func TestX01MatchLegWinStartsNextLeg(t *testing.T) {
	settings := X01Settings{
		BaseScore: 501,
		OutMode:   FinishDouble,
		MatchMode: MatchModeLegs,
		LegsToWin: 2,
	}
	m := NewX01Match(settings, testRoster())
	assert.Equal(t, m.LegNumber, 1)

	m = winLeg(t, m, 0)
	assert.Equal(t, m.Standings[0].LegsWon, 1)
	assert.Equal(t, m.WinnerID, "")
	assert.Equal(t, m.LegNumber, 2)

	// Fresh leg, scores reset, starting thrower rotated.
	assert.Equal(t, m.Leg.Players[0].Remaining, 501)
	assert.Equal(t, m.Leg.Turn.ActiveIndex, 1)
}

func TestX01MatchWinAtLegsTarget(t *testing.T) {
	settings := X01Settings{
		BaseScore: 301,
		OutMode:   FinishDouble,
		MatchMode: MatchModeLegs,
		LegsToWin: 2,
	}
	m := NewX01Match(settings, testRoster())

	m = winLeg(t, m, 0)
	m = winLeg(t, m, 0)
	assert.Equal(t, m.WinnerID, "p1")
	assert.Equal(t, m.Finished(), true)

	// No further events change a decided match.
	after, _ := m.Apply(board.Event{Kind: board.ThrowAdded, Throw: throwNamed(t, "T20")})
	assert.Equal(t, after.Standings[0].LegsWon, m.Standings[0].LegsWon)
}

func TestX01MatchSetsMode(t *testing.T) {
	settings := X01Settings{
		BaseScore: 301,
		OutMode:   FinishDouble,
		MatchMode: MatchModeSets,
		LegsToWin: 1,
		SetsToWin: 2,
	}
	m := NewX01Match(settings, testRoster())

	m = winLeg(t, m, 0)
	assert.Equal(t, m.Standings[0].SetsWon, 1)
	assert.Equal(t, m.Standings[0].LegsWon, 0)
	assert.Equal(t, m.SetNumber, 2)
	assert.Equal(t, m.WinnerID, "")

	m = winLeg(t, m, 0)
	assert.Equal(t, m.Standings[0].SetsWon, 2)
	assert.Equal(t, m.WinnerID, "p1")
}
