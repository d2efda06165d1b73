package board

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidSegment = errors.New("invalid segment name")

var segmentNamePattern = regexp.MustCompile(`^([STD])(\d{1,2})$`)

// SegmentKind closes the set of board regions a dart can score in. Segments
// are parsed once at the feed edge; everything downstream switches on Kind
// instead of re-reading wire strings.
type SegmentKind int

const (
	KindMiss SegmentKind = iota
	KindNumbered
	KindBull
)

type Segment struct {
	Kind       SegmentKind `json:"kind"`
	Number     int         `json:"number,omitempty"`
	Multiplier int         `json:"multiplier,omitempty"`
}

func Miss() Segment {
	return Segment{Kind: KindMiss}
}

func Numbered(number, multiplier int) Segment {
	return Segment{Kind: KindNumbered, Number: number, Multiplier: multiplier}
}

// Bull returns a bullseye segment. Multiplier is 1 for the outer bull and 2
// for the inner bull; a triple bull does not exist on a dartboard.
func Bull(multiplier int) Segment {
	return Segment{Kind: KindBull, Number: 25, Multiplier: multiplier}
}

// ParseSegment converts a wire segment name ("S7", "D16", "T20", "S25",
// "D25", "Miss") into a Segment. Unparseable names return ErrInvalidSegment
// together with a zero-point Miss so callers can log and keep scoring.
func ParseSegment(name string) (Segment, error) {
	if name == "Miss" {
		return Miss(), nil
	}

	groups := segmentNamePattern.FindStringSubmatch(name)
	if groups == nil {
		return Miss(), fmt.Errorf("%w: %q", ErrInvalidSegment, name)
	}

	number, err := strconv.Atoi(groups[2])
	if err != nil {
		return Miss(), fmt.Errorf("%w: %q", ErrInvalidSegment, name)
	}

	var multiplier int
	switch groups[1] {
	case "S":
		multiplier = 1
	case "D":
		multiplier = 2
	case "T":
		multiplier = 3
	}

	if number == 25 {
		if multiplier == 3 {
			return Miss(), fmt.Errorf("%w: %q (no triple bull)", ErrInvalidSegment, name)
		}
		return Bull(multiplier), nil
	}

	if number < 1 || number > 20 {
		return Miss(), fmt.Errorf("%w: %q", ErrInvalidSegment, name)
	}

	return Numbered(number, multiplier), nil
}

// Points returns the scored value of the segment. The bull counts 25 per
// multiplier, so the inner bull is worth 50.
func (s Segment) Points() int {
	switch s.Kind {
	case KindNumbered:
		return s.Number * s.Multiplier
	case KindBull:
		return 25 * s.Multiplier
	default:
		return 0
	}
}

// Matches reports whether the segment landed on the given target number.
// Bull targets are addressed as 25.
func (s Segment) Matches(target int) bool {
	switch s.Kind {
	case KindNumbered:
		return s.Number == target
	case KindBull:
		return target == 25
	default:
		return false
	}
}

func (s Segment) IsBull() bool {
	return s.Kind == KindBull
}

// IsDouble reports whether the segment qualifies as a double-out finish. The
// inner bull counts as a double.
func (s Segment) IsDouble() bool {
	return s.Multiplier == 2 && s.Kind != KindMiss
}

func (s Segment) IsTriple() bool {
	return s.Kind == KindNumbered && s.Multiplier == 3
}

func (s Segment) String() string {
	switch s.Kind {
	case KindNumbered, KindBull:
		letter := [4]string{"", "S", "D", "T"}[s.Multiplier]
		return fmt.Sprintf("%s%d", letter, s.Number)
	default:
		return "Miss"
	}
}
