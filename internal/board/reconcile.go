package board

import "slices"

// MaxThrowsPerTurn is the hard cap on darts per turn. Snapshot indices at or
// beyond it are never turned into events, which guards the engines against
// detection glitches reporting a fourth dart.
const MaxThrowsPerTurn = 3

// Reconciler diffs successive full snapshots of the current turn into
// discrete events. It holds the previous snapshot's throws as private memory,
// so two snapshots must never be reconciled concurrently through the same
// instance.
type Reconciler struct {
	prev []Throw
}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile compares the snapshot against the previously seen throws and
// returns the implied events in temporal order. Re-delivering an identical
// snapshot yields no events.
//
// Shrink handling, in priority order:
//   - an explicit undo marker emits a ThrowRemoved for the tail throw, even
//     while a takeout is in progress;
//   - a shrink during a takeout still in progress emits nothing, the board is
//     being cleared dart by dart;
//   - a shrink to empty once the takeout has finished emits TurnEnded.
//
// A shrink to empty carrying both the undo marker and a finished takeout is
// contradictory; it emits nothing, keeping the score state untouched.
func (r *Reconciler) Reconcile(snap Snapshot) []Event {
	cur := snap.Throws
	prev := r.prev
	r.prev = slices.Clone(cur)

	switch {
	case len(cur) > len(prev):
		var events []Event
		for i := len(prev); i < len(cur) && i < MaxThrowsPerTurn; i++ {
			events = append(events, Event{Kind: ThrowAdded, Throw: cur[i], Index: i})
		}
		return events

	case len(cur) < len(prev):
		switch {
		case snap.Undo && snap.Takeout == TakeoutFinished && len(cur) == 0:
			return nil
		case snap.Undo:
			if len(prev) > MaxThrowsPerTurn {
				// The dropped tail throw was beyond the per-turn cap
				// and never reached an engine.
				return nil
			}
			return []Event{{Kind: ThrowRemoved, Throw: prev[len(prev)-1]}}
		case snap.Takeout == TakeoutInProgress:
			return nil
		case snap.Takeout == TakeoutFinished && len(cur) == 0:
			return []Event{{Kind: TurnEnded}}
		default:
			return nil
		}

	default:
		return nil
	}
}

// Reset clears the reconciler's memory. Called on match reset so a stale
// snapshot from the previous game cannot diff against the new one.
func (r *Reconciler) Reset() {
	r.prev = nil
}
