package board

import (
	"DartTableApi/internal/assert"
	"testing"
)

func throws(names ...string) []Throw {
	ts := make([]Throw, 0, len(names))
	for _, n := range names {
		seg, _ := ParseSegment(n)
		ts = append(ts, Throw{Segment: seg})
	}
	return ts
}

func TestReconcileGrowth(t *testing.T) {
	r := NewReconciler()

	events := r.Reconcile(Snapshot{Throws: throws("T20")})
	assert.Equal(t, len(events), 1)
	assert.Equal(t, events[0].Kind, ThrowAdded)
	assert.Equal(t, events[0].Index, 0)
	assert.Equal(t, events[0].Throw.Segment, Numbered(20, 3))

	events = r.Reconcile(Snapshot{Throws: throws("T20", "S5", "D16")})
	assert.Equal(t, len(events), 2)
	assert.Equal(t, events[0].Index, 1)
	assert.Equal(t, events[1].Index, 2)
}

func TestReconcileCapsTurnAtThreeThrows(t *testing.T) {
	r := NewReconciler()

	events := r.Reconcile(Snapshot{Throws: throws("T20", "S5", "D16", "S1")})
	assert.Equal(t, len(events), 3)
	for i, e := range events {
		assert.Equal(t, e.Index, i)
	}
}

func TestReconcileIdenticalSnapshotIsIdempotent(t *testing.T) {
	r := NewReconciler()

	snap := Snapshot{Throws: throws("T20", "S5")}
	events := r.Reconcile(snap)
	assert.Equal(t, len(events), 2)

	events = r.Reconcile(snap)
	assert.Equal(t, len(events), 0)
}

func TestReconcileUndoEmitsTailRemoval(t *testing.T) {
	r := NewReconciler()

	r.Reconcile(Snapshot{Throws: throws("T20", "S5")})
	events := r.Reconcile(Snapshot{Throws: throws("T20"), Undo: true})
	assert.Equal(t, len(events), 1)
	assert.Equal(t, events[0].Kind, ThrowRemoved)
	assert.Equal(t, events[0].Throw.Segment, Numbered(5, 1))
}

func TestReconcileTakeoutInProgressSuppressesShrink(t *testing.T) {
	r := NewReconciler()

	r.Reconcile(Snapshot{Throws: throws("T20", "S5", "D16")})
	events := r.Reconcile(Snapshot{Throws: throws("T20", "S5"), Takeout: TakeoutInProgress})
	assert.Equal(t, len(events), 0)
	events = r.Reconcile(Snapshot{Throws: throws("T20"), Takeout: TakeoutInProgress})
	assert.Equal(t, len(events), 0)
}

func TestReconcileTakeoutFinishedEndsTurn(t *testing.T) {
	r := NewReconciler()

	r.Reconcile(Snapshot{Throws: throws("T20", "S5", "D16")})
	events := r.Reconcile(Snapshot{Throws: nil, Takeout: TakeoutFinished})
	assert.Equal(t, len(events), 1)
	assert.Equal(t, events[0].Kind, TurnEnded)
}

func TestReconcileUndoWinsOverTakeoutInProgress(t *testing.T) {
	r := NewReconciler()

	r.Reconcile(Snapshot{Throws: throws("T20", "S5")})
	events := r.Reconcile(Snapshot{
		Throws:  throws("T20"),
		Takeout: TakeoutInProgress,
		Undo:    true,
	})
	assert.Equal(t, len(events), 1)
	assert.Equal(t, events[0].Kind, ThrowRemoved)
}

func TestReconcileContradictoryShrinkToEmptyEmitsNothing(t *testing.T) {
	r := NewReconciler()

	r.Reconcile(Snapshot{Throws: throws("T20")})
	events := r.Reconcile(Snapshot{
		Throws:  nil,
		Takeout: TakeoutFinished,
		Undo:    true,
	})
	assert.Equal(t, len(events), 0)
}

func TestReconcileShrinkWithoutMarkersEmitsNothing(t *testing.T) {
	r := NewReconciler()

	r.Reconcile(Snapshot{Throws: throws("T20", "S5")})
	events := r.Reconcile(Snapshot{Throws: throws("T20")})
	assert.Equal(t, len(events), 0)
}

func TestReconcileReset(t *testing.T) {
	r := NewReconciler()

	r.Reconcile(Snapshot{Throws: throws("T20", "S5")})
	r.Reset()

	events := r.Reconcile(Snapshot{Throws: throws("T20", "S5")})
	assert.Equal(t, len(events), 2)
}
