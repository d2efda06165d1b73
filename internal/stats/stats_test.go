package stats

import (
	"DartTableApi/internal/assert"
	"testing"
)

func TestThreeDartAverage(t *testing.T) {
	tests := []struct {
		name   string
		scored int
		darts  int
		want   float64
	}{
		{name: "Perfect Leg", scored: 501, darts: 9, want: 167},
		{name: "Steady Sixty", scored: 180, darts: 9, want: 60},
		{name: "No Darts", scored: 0, darts: 0, want: 0},
		{name: "Rounded", scored: 100, darts: 3, want: 100},
		{name: "Fractional", scored: 121, darts: 9, want: 40.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ThreeDartAverage(tt.scored, tt.darts), tt.want)
		})
	}
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, Accuracy(3, 4), 0.75)
	assert.Equal(t, Accuracy(0, 0), 0.0)
	assert.Equal(t, Accuracy(0, 10), 0.0)
}

func TestSummarize(t *testing.T) {
	lines := []MatchLine{
		{PlayerPin: "abc123", Won: true, Darts: 15, Scored: 501, HighTurn: 140, Tons180: 0},
		{PlayerPin: "abc123", Won: false, Darts: 21, Scored: 410, HighTurn: 180, Tons180: 1},
	}

	career := Summarize(lines)
	assert.Equal(t, career.Matches, 2)
	assert.Equal(t, career.Wins, 1)
	assert.Equal(t, career.WinRate, 0.5)
	assert.Equal(t, career.Darts, 36)
	assert.Equal(t, career.HighTurn, 180)
	assert.Equal(t, career.Tons180, 1)
	assert.Equal(t, career.Average, ThreeDartAverage(911, 36))
}

func TestSummarizeEmpty(t *testing.T) {
	career := Summarize(nil)
	assert.Equal(t, career.Matches, 0)
	assert.Equal(t, career.WinRate, 0.0)
	assert.Equal(t, career.Average, 0.0)
}
