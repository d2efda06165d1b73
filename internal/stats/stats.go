// Package stats holds the scoring arithmetic shared by the live match
// broadcast and the profile career endpoints. Everything here is pure; the
// inputs come from the rule engines or from stored match results.
package stats

import "math"

// ThreeDartAverage is the standard X01 pace metric: points scored per dart,
// normalized to a three-dart visit.
func ThreeDartAverage(scored, darts int) float64 {
	if darts == 0 {
		return 0
	}
	return round2(float64(scored) / float64(darts) * 3)
}

// Accuracy returns the hit rate as a fraction of darts thrown.
func Accuracy(hits, darts int) float64 {
	if darts == 0 {
		return 0
	}
	return round2(float64(hits) / float64(darts))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// MatchLine is one player's line from one finished match, as persisted with
// the match record.
type MatchLine struct {
	PlayerPin string `json:"player_pin"`
	Won       bool   `json:"won"`
	Darts     int    `json:"darts"`
	Scored    int    `json:"scored"`
	HighTurn  int    `json:"high_turn"`
	Tons180   int    `json:"tons_180"`
}

// Career aggregates a player's stored match lines for the profile view.
type Career struct {
	Matches  int     `json:"matches"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"win_rate"`
	Darts    int     `json:"darts"`
	Average  float64 `json:"average"`
	HighTurn int     `json:"high_turn"`
	Tons180  int     `json:"tons_180"`
}

func Summarize(lines []MatchLine) Career {
	var c Career
	scored := 0

	for _, l := range lines {
		c.Matches++
		if l.Won {
			c.Wins++
		}
		c.Darts += l.Darts
		scored += l.Scored
		c.Tons180 += l.Tons180
		if l.HighTurn > c.HighTurn {
			c.HighTurn = l.HighTurn
		}
	}

	if c.Matches > 0 {
		c.WinRate = round2(float64(c.Wins) / float64(c.Matches))
	}
	c.Average = ThreeDartAverage(scored, c.Darts)

	return c
}
