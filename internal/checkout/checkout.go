// Package checkout computes finishing suggestions for X01 games. Suggest is a
// pure function over (remaining, dartsLeft); the same inputs always produce
// the same sequence.
package checkout

import "DartTableApi/internal/board"

const (
	// MinRemaining and MaxRemaining bound the scores a finish can exist
	// for. 170 is the highest score three darts can take out ending on a
	// double (T20 T20 D25).
	MinRemaining = 2
	MaxRemaining = 170
)

// preferredLeaves orders the scores a player likes to be left on before the
// final dart. Classic checkout tables set up D20, D16 and the bull first;
// the remaining even leaves keep the search exhaustive.
var preferredLeaves = []int{
	40, 32, 36, 24, 20, 16, 12, 8, 50, 4, 2,
	38, 34, 30, 28, 26, 22, 18, 14, 10, 6,
}

// Suggest returns a finishing sequence for the remaining score within the
// given dart budget, preferring fewer darts and conventional setups. The
// final dart always lands on a double or the inner bull. It returns false
// when no legal finish exists, e.g. 169 with three darts.
func Suggest(remaining, dartsLeft int) ([]board.Segment, bool) {
	if remaining < MinRemaining || remaining > MaxRemaining {
		return nil, false
	}
	if dartsLeft < 1 {
		return nil, false
	}
	if dartsLeft > 3 {
		dartsLeft = 3
	}

	for n := 1; n <= dartsLeft; n++ {
		if seq, ok := suggest(remaining, n); ok {
			return seq, true
		}
	}

	return nil, false
}

func suggest(remaining, darts int) ([]board.Segment, bool) {
	switch darts {
	case 1:
		seg, ok := finishingDart(remaining)
		if !ok {
			return nil, false
		}
		return []board.Segment{seg}, true

	case 2:
		for _, leave := range preferredLeaves {
			setup, ok := scoringDart(remaining - leave)
			if !ok {
				continue
			}
			finish, _ := finishingDart(leave)
			return []board.Segment{setup, finish}, true
		}
		return nil, false

	default:
		for number := 20; number >= 1; number-- {
			first := board.Numbered(number, 3)
			rest, ok := suggest(remaining-first.Points(), darts-1)
			if !ok {
				continue
			}
			return append([]board.Segment{first}, rest...), true
		}
		return nil, false
	}
}

// finishingDart maps a leave to the single dart that takes it out on a
// qualifying double. Only even scores up to 40 and the inner bull qualify.
func finishingDart(remaining int) (board.Segment, bool) {
	switch {
	case remaining == 50:
		return board.Bull(2), true
	case remaining >= 2 && remaining <= 40 && remaining%2 == 0:
		return board.Numbered(remaining/2, 2), true
	default:
		return board.Segment{}, false
	}
}

// scoringDart maps a value to a conventional non-finishing dart: straight
// singles up to 20, the bulls, then triples before doubles for the larger
// values.
func scoringDart(value int) (board.Segment, bool) {
	switch {
	case value >= 1 && value <= 20:
		return board.Numbered(value, 1), true
	case value == 25:
		return board.Bull(1), true
	case value == 50:
		return board.Bull(2), true
	case value > 20 && value <= 60 && value%3 == 0:
		return board.Numbered(value/3, 3), true
	case value > 20 && value <= 40 && value%2 == 0:
		return board.Numbered(value/2, 2), true
	default:
		return board.Segment{}, false
	}
}
