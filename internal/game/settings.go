package game

import "errors"

var ErrVariantNotImplemented = errors.New("game variant not implemented")

// Variant names the playable game types. Cricket and Killer are reserved on
// the wire but have no rule engine yet; starting them returns
// ErrVariantNotImplemented.
type Variant string

const (
	VariantX01            Variant = "x01"
	VariantAroundTheClock Variant = "around-the-clock"
	VariantRoulette       Variant = "roulette"
	VariantCricket        Variant = "cricket"
	VariantKiller         Variant = "killer"
)

func (v Variant) Valid() bool {
	switch v {
	case VariantX01, VariantAroundTheClock, VariantRoulette, VariantCricket, VariantKiller:
		return true
	default:
		return false
	}
}

// FinishMode constrains how an X01 leg may be opened or closed.
type FinishMode string

const (
	FinishSingle FinishMode = "single"
	FinishDouble FinishMode = "double"
	FinishMaster FinishMode = "master"
)

type MatchMode string

const (
	MatchModeLegs MatchMode = "legs"
	MatchModeSets MatchMode = "sets"
)

type X01Settings struct {
	BaseScore     int        `json:"base_score"`
	InMode        FinishMode `json:"in_mode"`
	OutMode       FinishMode `json:"out_mode"`
	MatchMode     MatchMode  `json:"match_mode"`
	LegsToWin     int        `json:"legs_to_win"`
	SetsToWin     int        `json:"sets_to_win"`
	StartingOrder string     `json:"starting_order"`
}

// HitMode selects what counts as hitting the current Around-the-Clock
// target. "full" accepts any bed on the right number and scores the
// multiplier as hit strength; the bed modes accept only their bed and always
// count as a single hit.
type HitMode string

const (
	HitModeFull        HitMode = "full"
	HitModeOuterSingle HitMode = "outer-single"
	HitModeSingle      HitMode = "single"
	HitModeDouble      HitMode = "double"
	HitModeTriple      HitMode = "triple"
)

type TargetOrder string

const (
	OrderAscending  TargetOrder = "ascending"
	OrderDescending TargetOrder = "descending"
	OrderShuffled   TargetOrder = "shuffled"
)

type AroundTheClockSettings struct {
	Mode         HitMode     `json:"mode"`
	Order        TargetOrder `json:"order"`
	Multiplier   bool        `json:"multiplier"`
	HitsRequired int         `json:"hits_required"`
	BullMode     bool        `json:"bull_mode"`
}

// TripleAction selects the penalty for a triple hit in Dart Roulette.
type TripleAction string

const (
	TripleActionSips   TripleAction = "sips"
	TripleActionFinish TripleAction = "finish"
)

type RouletteSettings struct {
	SingleSips   int          `json:"single_sips"`
	DoubleSips   int          `json:"double_sips"`
	TripleAction TripleAction `json:"triple_action"`
	TripleSips   int          `json:"triple_sips"`
	BackfireSips int          `json:"backfire_sips"`
}
