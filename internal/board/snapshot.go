package board

// Bed names the physical board region a dart landed in. It only matters for
// hit modes that care about the bed rather than the multiplier, such as the
// "outer single" mode in Around-the-Clock; scoring engines otherwise ignore
// it.
type Bed string

const (
	BedNone        Bed = ""
	BedSingle      Bed = "single"
	BedOuterSingle Bed = "outer-single"
	BedDouble      Bed = "double"
	BedTriple      Bed = "triple"
	BedBull        Bed = "bull"
	BedInnerBull   Bed = "inner-bull"
)

// Coords are the detected landing coordinates. They are carried through for
// presentation only and never influence scoring.
type Coords struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Throw struct {
	Segment Segment `json:"segment"`
	Bed     Bed     `json:"bed"`
	Coords  Coords  `json:"coords"`
}

// Takeout tags what the board is physically doing when the throw array
// shrinks. The board bridge derives it from the raw status strings once, at
// the edge, so reconciliation never string-matches.
type Takeout int

const (
	TakeoutNone Takeout = iota

	// TakeoutInProgress means darts are being pulled from the board one by
	// one. The shrinking array is a physical clear, not a logical undo.
	TakeoutInProgress

	// TakeoutFinished means the board has settled empty and the turn is
	// over.
	TakeoutFinished
)

// Snapshot is a full restatement of the current turn as seen by the board
// detection hardware. Within one turn the throw slice only grows, except for
// an explicit undo or the end-of-turn clear.
type Snapshot struct {
	Connected bool
	Running   bool
	Takeout   Takeout
	Undo      bool
	Throws    []Throw
}

// EventKind tags the discrete events a snapshot diff produces. These are the
// sole channel between the reconciler and the rule engines.
type EventKind int

const (
	ThrowAdded EventKind = iota
	ThrowRemoved
	TurnEnded
)

type Event struct {
	Kind  EventKind
	Throw Throw // set for ThrowAdded and ThrowRemoved
	Index int   // position within the turn, ThrowAdded only
}
