package matchhub

import (
	json2 "encoding/json"
	"fmt"
	"math/rand/v2"

	"DartTableApi/internal/board"
	"DartTableApi/internal/game"
	"DartTableApi/internal/stats"
)

// engine is the hub's grip on one running variant. Each implementation wraps
// a pure (state, event) -> state reducer from the game package and keeps the
// single live value; the hub is the only caller, one event at a time.
type engine interface {
	Apply(ev board.Event) []game.Trigger

	// Housekeep runs whatever the variant needs between events, such as
	// arming the next roulette spin. Most variants have nothing to do.
	Housekeep(rng *rand.Rand)

	StateDto() any
	Finished() bool
	WinnerID() string
	Lines() []stats.MatchLine
}

// NewEngine builds the rule engine for a variant from its raw settings
// payload. Cricket and Killer are recognized but not playable yet.
func NewEngine(variant game.Variant, settings json2.RawMessage, roster []game.Player,
	rng *rand.Rand) (engine, error) {
	switch variant {
	case game.VariantX01:
		var s game.X01Settings
		if len(settings) > 0 {
			if err := json2.Unmarshal(settings, &s); err != nil {
				return nil, fmt.Errorf("decoding x01 settings: %w", err)
			}
		}
		if s.BaseScore == 0 {
			s.BaseScore = 501
		}
		return &x01Engine{match: game.NewX01Match(s, roster)}, nil

	case game.VariantAroundTheClock:
		var s game.AroundTheClockSettings
		if len(settings) > 0 {
			if err := json2.Unmarshal(settings, &s); err != nil {
				return nil, fmt.Errorf("decoding around-the-clock settings: %w", err)
			}
		}
		return &clockEngine{state: game.NewAroundTheClock(s, roster, rng)}, nil

	case game.VariantRoulette:
		var s game.RouletteSettings
		if len(settings) > 0 {
			if err := json2.Unmarshal(settings, &s); err != nil {
				return nil, fmt.Errorf("decoding roulette settings: %w", err)
			}
		}
		return &rouletteEngine{state: game.NewRoulette(s, roster).Start()}, nil

	case game.VariantCricket, game.VariantKiller:
		return nil, fmt.Errorf("%w: %s", game.ErrVariantNotImplemented, variant)

	default:
		return nil, fmt.Errorf("unknown game variant %q", variant)
	}
}

type x01Engine struct {
	match game.X01Match
}

func (e *x01Engine) Apply(ev board.Event) []game.Trigger {
	var triggers []game.Trigger
	e.match, triggers = e.match.Apply(ev)
	return triggers
}

func (e *x01Engine) Housekeep(_ *rand.Rand) {}

func (e *x01Engine) Finished() bool {
	return e.match.Finished()
}

func (e *x01Engine) WinnerID() string {
	return e.match.WinnerID
}

type x01PlayerDto struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Remaining int     `json:"remaining"`
	LegsWon   int     `json:"legs_won"`
	SetsWon   int     `json:"sets_won"`
	Average   float64 `json:"average"`
	HighTurn  int     `json:"high_turn"`
	Tons180   int     `json:"tons_180"`
}

type x01Dto struct {
	Variant        game.Variant   `json:"variant"`
	LegNumber      int            `json:"leg_number"`
	SetNumber      int            `json:"set_number"`
	Players        []x01PlayerDto `json:"players"`
	ActivePlayerID string         `json:"active_player_id"`
	TurnScore      int            `json:"turn_score"`
	TurnDarts      []string       `json:"turn_darts"`
	Bust           bool           `json:"bust"`
	DartsLeft      int            `json:"darts_left"`
	Suggestion     []string       `json:"suggestion,omitempty"`
	WinnerID       string         `json:"winner_id,omitempty"`
	Phase          string         `json:"phase"`
}

func (e *x01Engine) StateDto() any {
	leg := e.match.Leg

	dto := x01Dto{
		Variant:        game.VariantX01,
		LegNumber:      e.match.LegNumber,
		SetNumber:      e.match.SetNumber,
		ActivePlayerID: leg.Players[leg.Turn.ActiveIndex].ID,
		TurnScore:      leg.TurnScore,
		Bust:           leg.Bust,
		DartsLeft:      leg.Turn.DartsLeft(),
		WinnerID:       e.match.WinnerID,
		Phase:          leg.Turn.Phase.String(),
	}

	for _, d := range leg.Turn.Darts {
		dto.TurnDarts = append(dto.TurnDarts, d.Segment.String())
	}

	if seq, ok := leg.CheckoutSuggestion(); ok {
		for _, s := range seq {
			dto.Suggestion = append(dto.Suggestion, s.String())
		}
	}

	for i, p := range leg.Players {
		st := e.match.Standings[i]

		// Remaining is held at turn start until the turn commits, so the
		// active player's shown score subtracts the running turn. A bust
		// shows the turn-start value again.
		remaining := p.Remaining
		if i == leg.Turn.ActiveIndex && !leg.Bust {
			remaining -= leg.TurnScore
		}

		dto.Players = append(dto.Players, x01PlayerDto{
			ID:        p.ID,
			Name:      p.Name,
			Remaining: remaining,
			LegsWon:   st.LegsWon,
			SetsWon:   st.SetsWon,
			Average:   stats.ThreeDartAverage(st.Scored+p.Scored, st.Darts+p.Darts),
			HighTurn:  max(st.HighTurn, p.HighTurn),
			Tons180:   st.Tons180 + p.Tons180,
		})
	}

	return dto
}

func (e *x01Engine) Lines() []stats.MatchLine {
	lines := make([]stats.MatchLine, 0, len(e.match.Standings))
	for _, st := range e.match.Standings {
		lines = append(lines, stats.MatchLine{
			PlayerPin: st.ID,
			Won:       st.ID == e.match.WinnerID,
			Darts:     st.Darts,
			Scored:    st.Scored,
			HighTurn:  st.HighTurn,
			Tons180:   st.Tons180,
		})
	}
	return lines
}

type clockEngine struct {
	state game.AroundTheClockState
}

func (e *clockEngine) Apply(ev board.Event) []game.Trigger {
	var triggers []game.Trigger
	e.state, triggers = e.state.Apply(ev)
	return triggers
}

func (e *clockEngine) Housekeep(_ *rand.Rand) {}

func (e *clockEngine) Finished() bool {
	return e.state.Finished()
}

func (e *clockEngine) WinnerID() string {
	return e.state.WinnerID
}

type clockPlayerDto struct {
	ID            string  `json:"id"`
	CurrentTarget int     `json:"current_target"`
	TargetHits    int     `json:"target_hits"`
	TargetsHit    []int   `json:"targets_hit"`
	TotalDarts    int     `json:"total_darts"`
	Hits          int     `json:"hits"`
	Misses        int     `json:"misses"`
	Accuracy      float64 `json:"accuracy"`
}

type clockDto struct {
	Variant        game.Variant     `json:"variant"`
	Sequence       []int            `json:"sequence"`
	Players        []clockPlayerDto `json:"players"`
	ActivePlayerID string           `json:"active_player_id"`
	DartsLeft      int              `json:"darts_left"`
	WinnerID       string           `json:"winner_id,omitempty"`
	Phase          string           `json:"phase"`
}

func (e *clockEngine) StateDto() any {
	s := e.state

	dto := clockDto{
		Variant:        game.VariantAroundTheClock,
		Sequence:       s.Sequence,
		ActivePlayerID: s.Players[s.Turn.ActiveIndex].ID,
		DartsLeft:      s.Turn.DartsLeft(),
		WinnerID:       s.WinnerID,
		Phase:          s.Turn.Phase.String(),
	}

	for i, p := range s.Players {
		dto.Players = append(dto.Players, clockPlayerDto{
			ID:            p.ID,
			CurrentTarget: s.CurrentTarget(i),
			TargetHits:    p.TargetHits,
			TargetsHit:    p.TargetsHit,
			TotalDarts:    p.TotalDarts,
			Hits:          p.Hits,
			Misses:        p.Misses,
			Accuracy:      stats.Accuracy(p.Hits, p.TotalDarts),
		})
	}

	return dto
}

func (e *clockEngine) Lines() []stats.MatchLine {
	lines := make([]stats.MatchLine, 0, len(e.state.Players))
	for _, p := range e.state.Players {
		lines = append(lines, stats.MatchLine{
			PlayerPin: p.ID,
			Won:       p.ID == e.state.WinnerID,
			Darts:     p.TotalDarts,
		})
	}
	return lines
}

type rouletteEngine struct {
	state game.RouletteState
}

func (e *rouletteEngine) Apply(ev board.Event) []game.Trigger {
	var triggers []game.Trigger
	e.state, triggers = e.state.Apply(ev)
	return triggers
}

// Housekeep arms the next round once the previous result has been resolved.
func (e *rouletteEngine) Housekeep(rng *rand.Rand) {
	if e.state.Phase == game.PhaseSpin {
		e.state = e.state.Spin(rng)
	}
}

func (e *rouletteEngine) Finished() bool {
	return e.state.Finished()
}

func (e *rouletteEngine) WinnerID() string {
	return e.state.WinnerID
}

type rouletteDto struct {
	Variant    game.Variant          `json:"variant"`
	Phase      game.RoulettePhase    `json:"phase"`
	Players    []game.RoulettePlayer `json:"players"`
	ShooterID  string                `json:"shooter_id,omitempty"`
	VictimID   string                `json:"victim_id,omitempty"`
	Target     int                   `json:"target,omitempty"`
	LastResult *game.RouletteResult  `json:"last_result,omitempty"`
	WinnerID   string                `json:"winner_id,omitempty"`
}

func (e *rouletteEngine) StateDto() any {
	return rouletteDto{
		Variant:    game.VariantRoulette,
		Phase:      e.state.Phase,
		Players:    e.state.Players,
		ShooterID:  e.state.ShooterID,
		VictimID:   e.state.VictimID,
		Target:     e.state.Target,
		LastResult: e.state.LastResult,
		WinnerID:   e.state.WinnerID,
	}
}

func (e *rouletteEngine) Lines() []stats.MatchLine {
	lines := make([]stats.MatchLine, 0, len(e.state.Players))
	for _, p := range e.state.Players {
		lines = append(lines, stats.MatchLine{
			PlayerPin: p.ID,
			Won:       p.ID == e.state.WinnerID,
			Scored:    p.Score,
		})
	}
	return lines
}
