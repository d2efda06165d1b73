package game

import (
	"DartTableApi/internal/assert"
	"DartTableApi/internal/board"
	"slices"
	"testing"
)

func newTestX01(t *testing.T, base int, out FinishMode) X01State {
	t.Helper()
	return NewX01(X01Settings{BaseScore: base, OutMode: out}, testRoster())
}

func addThrow(t *testing.T, s X01State, name string) (X01State, []Trigger) {
	t.Helper()
	return s.Apply(board.Event{Kind: board.ThrowAdded, Throw: throwNamed(t, name)})
}

func removeThrow(t *testing.T, s X01State, name string) X01State {
	t.Helper()
	s, _ = s.Apply(board.Event{Kind: board.ThrowRemoved, Throw: throwNamed(t, name)})
	return s
}

func endTurn(s X01State) X01State {
	s, _ = s.Apply(board.Event{Kind: board.TurnEnded})
	return s
}

func TestX01MaximumTurn(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)

	var triggers []Trigger
	for i := 0; i < 3; i++ {
		var trigs []Trigger
		s, trigs = addThrow(t, s, "T20")
		triggers = append(triggers, trigs...)
	}
	assert.Equal(t, s.TurnScore, 180)
	assert.Equal(t, slices.Contains(triggers, TriggerOneEighty), true)

	s = endTurn(s)
	assert.Equal(t, s.Players[0].Remaining, 321)
	assert.Equal(t, s.Bust, false)
	assert.Equal(t, s.Players[0].Tons180, 1)
	assert.Equal(t, s.Turn.ActiveIndex, 1)
	assert.Equal(t, s.Players[1].TurnStartRemaining, 501)
}

func TestX01TurnScoreMatchesAcceptedThrows(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)

	s, _ = addThrow(t, s, "T20")
	s, _ = addThrow(t, s, "S5")
	s = removeThrow(t, s, "S5")
	s, _ = addThrow(t, s, "D16")
	assert.Equal(t, s.TurnScore, 92)

	s = removeThrow(t, s, "D16")
	s = removeThrow(t, s, "T20")
	assert.Equal(t, s.TurnScore, 0)

	// A fourth removal has nothing to undo.
	s = removeThrow(t, s, "T20")
	assert.Equal(t, s.TurnScore, 0)
}

func TestX01BustOnOverThrow(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 2
	s.Players[0].TurnStartRemaining = 2

	s, triggers := addThrow(t, s, "S3")
	assert.Equal(t, s.Bust, true)
	assert.Equal(t, slices.Contains(triggers, TriggerBust), true)
	assert.Equal(t, s.TurnScore, 3)

	s = endTurn(s)
	assert.Equal(t, s.Players[0].Remaining, 2)
	assert.Equal(t, s.Bust, false)
	assert.Equal(t, s.TurnScore, 0)
}

func TestX01BustOnLeavingOne(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 3
	s.Players[0].TurnStartRemaining = 3

	s, _ = addThrow(t, s, "S2")
	assert.Equal(t, s.Bust, true)

	s = endTurn(s)
	assert.Equal(t, s.Players[0].Remaining, 3)
}

func TestX01UndoClearsBust(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 40
	s.Players[0].TurnStartRemaining = 40

	s, _ = addThrow(t, s, "S20")
	s, _ = addThrow(t, s, "T20")
	assert.Equal(t, s.Bust, true)

	s = removeThrow(t, s, "T20")
	assert.Equal(t, s.Bust, false)
	assert.Equal(t, s.TurnScore, 20)
}

func TestX01DoubleOutWin(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 40
	s.Players[0].TurnStartRemaining = 40

	s, triggers := addThrow(t, s, "D20")
	assert.Equal(t, s.WinnerID, "p1")
	assert.Equal(t, slices.Contains(triggers, TriggerWin), true)

	// The winning turn still resolves through the takeout.
	s = endTurn(s)
	assert.Equal(t, s.Players[0].Remaining, 0)

	// Frozen after the win: further throws change nothing.
	after, _ := addThrow(t, s, "T20")
	assert.Equal(t, after.Players[0].Remaining, 0)
	assert.Equal(t, after.WinnerID, "p1")
}

func TestX01NonDoubleFinishBustsUnderDoubleOut(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 40
	s.Players[0].TurnStartRemaining = 40

	s, _ = addThrow(t, s, "S20")
	s, _ = addThrow(t, s, "S20")
	assert.Equal(t, s.WinnerID, "")
	assert.Equal(t, s.Bust, true)
}

func TestX01SingleOutWinOnAnyFinish(t *testing.T) {
	s := newTestX01(t, 501, FinishSingle)
	s.Players[0].Remaining = 20
	s.Players[0].TurnStartRemaining = 20

	s, _ = addThrow(t, s, "S20")
	assert.Equal(t, s.WinnerID, "p1")
}

func TestX01InnerBullFinishesDoubleOut(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 50
	s.Players[0].TurnStartRemaining = 50

	s, _ = addThrow(t, s, "D25")
	assert.Equal(t, s.WinnerID, "p1")
}

func TestX01CheckoutSuggestion(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 170
	s.Players[0].TurnStartRemaining = 170

	seq, ok := s.CheckoutSuggestion()
	assert.Equal(t, ok, true)
	assert.Equal(t, len(seq), 3)
	assert.Equal(t, seq[0].String(), "T20")
	assert.Equal(t, seq[1].String(), "T20")
	assert.Equal(t, seq[2].String(), "D25")

	s.Players[0].Remaining = 169
	s.Players[0].TurnStartRemaining = 169
	_, ok = s.CheckoutSuggestion()
	assert.Equal(t, ok, false)
}

func TestX01CheckoutSuggestionShrinksWithDartsLeft(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 170
	s.Players[0].TurnStartRemaining = 170

	s, _ = addThrow(t, s, "S20")
	// 150 left on two darts: T20 T20 D25 no longer fits.
	seq, ok := s.CheckoutSuggestion()
	assert.Equal(t, ok, false)
	assert.Equal(t, len(seq), 0)
}

func TestX01CheckoutTriggerRespectsDartsLeft(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 210
	s.Players[0].TurnStartRemaining = 210

	// 150 left on two darts is not a finish, so no light.
	_, triggers := addThrow(t, s, "T20")
	assert.Equal(t, slices.Contains(triggers, TriggerCheckout), false)

	s = newTestX01(t, 501, FinishDouble)
	s.Players[0].Remaining = 160
	s.Players[0].TurnStartRemaining = 160

	// 100 left fits the two darts still in hand.
	_, triggers = addThrow(t, s, "T20")
	assert.Equal(t, slices.Contains(triggers, TriggerCheckout), true)
}

func TestX01DoubleInGatesScoring(t *testing.T) {
	s := NewX01(X01Settings{BaseScore: 501, InMode: FinishDouble, OutMode: FinishDouble},
		testRoster())

	s, _ = addThrow(t, s, "T20")
	assert.Equal(t, s.TurnScore, 0)

	s, _ = addThrow(t, s, "D20")
	assert.Equal(t, s.TurnScore, 40)

	s, _ = addThrow(t, s, "T20")
	assert.Equal(t, s.TurnScore, 100)
}

func TestX01FourthThrowIsDropped(t *testing.T) {
	s := newTestX01(t, 501, FinishDouble)

	for i := 0; i < 4; i++ {
		s, _ = addThrow(t, s, "S20")
	}
	assert.Equal(t, s.TurnScore, 60)
	assert.Equal(t, len(s.Turn.Darts), 3)
}
