package game

import (
	"DartTableApi/internal/assert"
	"DartTableApi/internal/board"
	"testing"
)

func testRoster() []Player {
	return []Player{
		{ID: "p1", Name: "Alice", IsActive: true},
		{ID: "p2", Name: "Bob", IsActive: true},
		{ID: "p3", Name: "Carol", IsActive: true},
	}
}

func throwNamed(t *testing.T, name string) board.Throw {
	t.Helper()
	seg, err := board.ParseSegment(name)
	assert.NilError(t, err)
	return board.Throw{Segment: seg}
}

func TestTurnCapsAtThreeDarts(t *testing.T) {
	turn := NewTurn()

	for i := 0; i < 3; i++ {
		var ok bool
		turn, ok = turn.AddThrow(board.Throw{Segment: board.Numbered(20, 1)})
		assert.Equal(t, ok, true)
	}
	assert.Equal(t, turn.Phase, TurnActive)
	assert.Equal(t, turn.DartsLeft(), 0)

	_, ok := turn.AddThrow(board.Throw{Segment: board.Numbered(20, 1)})
	assert.Equal(t, ok, false)
}

func TestTurnRemoveThrow(t *testing.T) {
	turn := NewTurn()

	_, ok := turn.RemoveThrow()
	assert.Equal(t, ok, false)

	turn, _ = turn.AddThrow(board.Throw{Segment: board.Numbered(20, 1)})
	turn, ok = turn.RemoveThrow()
	assert.Equal(t, ok, true)
	assert.Equal(t, len(turn.Darts), 0)
	assert.Equal(t, turn.Phase, WaitingForThrow)
}

func TestTurnRotationSkipsInactivePlayers(t *testing.T) {
	roster := testRoster()
	roster[1].IsActive = false

	turn := NewTurn()
	turn = turn.Resolve().Advance(roster)
	assert.Equal(t, turn.ActiveIndex, 2)
	assert.Equal(t, turn.Phase, TurnEnded)

	turn = turn.Resolve().Advance(roster)
	assert.Equal(t, turn.ActiveIndex, 0)
}

func TestTurnAdvanceClearsDarts(t *testing.T) {
	turn := NewTurn()
	turn, _ = turn.AddThrow(board.Throw{Segment: board.Numbered(20, 3)})
	turn = turn.Resolve().Advance(testRoster())
	assert.Equal(t, len(turn.Darts), 0)
	assert.Equal(t, turn.ActiveIndex, 1)
}
