package matchhub

import (
	"DartTableApi/internal/board"
	json2 "encoding/json"
)

// Board bridge status and event strings. They are matched here, once, at the
// edge; past this file the takeout and undo conditions travel as tagged
// fields on board.Snapshot.
const (
	statusThrow             = "Throw"
	statusTakeoutInProgress = "Takeout in progress"
	statusTakeoutFinished   = "Takeout finished"

	eventThrowDetected   = "Throw detected"
	eventTakeoutStarted  = "Takeout started"
	eventTakeoutFinished = "Takeout finished"
	eventUndo            = "Undo"
	eventReset           = "Reset"
)

type wireSegment struct {
	Name       string `json:"name"`
	Number     int    `json:"number"`
	Bed        string `json:"bed"`
	Multiplier int    `json:"multiplier"`
}

type wireCoords struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type wireThrow struct {
	Segment wireSegment `json:"segment"`
	Coords  wireCoords  `json:"coords"`
}

type wireSnapshot struct {
	Connected bool        `json:"connected"`
	Running   bool        `json:"running"`
	Status    string      `json:"status"`
	Event     string      `json:"event"`
	Throws    []wireThrow `json:"throws"`
}

func parseSnapshot(raw []byte) (board.Snapshot, []error, error) {
	var w wireSnapshot
	if err := json2.Unmarshal(raw, &w); err != nil {
		return board.Snapshot{}, nil, err
	}

	snap, parseErrs := mapSnapshot(w)
	return snap, parseErrs, nil
}

// mapSnapshot converts the bridge's stringly snapshot into the tagged model.
// Unparseable segment names come back as zero-point misses together with
// their errors so the hub can log them; they never abort the snapshot.
func mapSnapshot(w wireSnapshot) (board.Snapshot, []error) {
	snap := board.Snapshot{
		Connected: w.Connected,
		Running:   w.Running,
		Undo:      w.Event == eventUndo,
		Takeout:   mapTakeout(w.Status, w.Event),
	}

	var parseErrs []error
	for _, wt := range w.Throws {
		seg, err := board.ParseSegment(wt.Segment.Name)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		snap.Throws = append(snap.Throws, board.Throw{
			Segment: seg,
			Bed:     mapBed(wt.Segment.Bed),
			Coords:  board.Coords{X: wt.Coords.X, Y: wt.Coords.Y},
		})
	}

	return snap, parseErrs
}

func mapTakeout(status, event string) board.Takeout {
	switch {
	case status == statusTakeoutInProgress || event == eventTakeoutStarted:
		if event == eventTakeoutFinished || event == eventReset {
			return board.TakeoutFinished
		}
		return board.TakeoutInProgress
	case status == statusTakeoutFinished || event == eventTakeoutFinished || event == eventReset:
		return board.TakeoutFinished
	default:
		return board.TakeoutNone
	}
}

func mapBed(bed string) board.Bed {
	switch bed {
	case "Single", "SingleInner":
		return board.BedSingle
	case "SingleOuter", "Outer":
		return board.BedOuterSingle
	case "Double":
		return board.BedDouble
	case "Triple":
		return board.BedTriple
	case "Bull":
		return board.BedBull
	case "DBull":
		return board.BedInnerBull
	default:
		return board.BedNone
	}
}
