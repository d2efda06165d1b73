package data

import (
	"database/sql"
	json2 "encoding/json"
	"time"

	"DartTableApi/internal/game"
	"DartTableApi/internal/pins"
	"DartTableApi/internal/validator"
)

type Match struct {
	ID         int64            `json:"-"`
	PinID      pins.Pin         `json:"pin"`
	CreatedAt  time.Time        `json:"created_at"`
	Version    int64            `json:"-"`
	Status     MatchStatus      `json:"status"`
	Variant    game.Variant     `json:"variant"`
	Settings   json2.RawMessage `json:"settings,omitempty"`
	PlayerPins []string         `json:"player_pins"`
	WinnerPin  string           `json:"winner_pin,omitempty"`
}

type MatchStatus int64

const (
	NOTSTARTED MatchStatus = iota
	INPROGRESS
	FINISHED
	CANCELED
)

func (s MatchStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case NOTSTARTED:
		return []byte(`"not-started"`), nil
	case INPROGRESS:
		return []byte(`"in-progress"`), nil
	case FINISHED:
		return []byte(`"finished"`), nil
	case CANCELED:
		return []byte(`"canceled"`), nil
	default:
		return []byte(`"unknown"`), nil
	}
}

type MatchModel struct {
	db *sql.DB
}

func ValidateMatch(v *validator.Validator, match *Match) {
	v.Check(match.Variant != "", "variant", "must be provided")
	v.Check(match.Variant.Valid(), "variant", "must be a known game variant")

	v.Check(len(match.PlayerPins) > 0, "player_pins", "must contain at least 1 player")
	v.Check(len(match.PlayerPins) <= 8, "player_pins", "must contain 8 players or fewer")
	v.Check(validator.Unique(match.PlayerPins), "player_pins", "must not contain duplicates")
	for _, pin := range match.PlayerPins {
		v.Check(validator.Matches(pin, validator.PinRX), "player_pins",
			"must contain valid player pins")
	}

	if match.Variant == game.VariantRoulette {
		v.Check(len(match.PlayerPins) >= 2, "player_pins",
			"roulette needs at least 2 players")
	}
}
