package data

import (
	"database/sql"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrEditConflict = errors.New("edit conflict")

type Models struct {
	Players PlayerModel
	Matches MatchModel
	Pins    PinModel
	Stats   StatsModel
}

// helperModels lets one model reach another inside its own transaction,
// minting pins mostly.
var helperModels Models

func NewModels(initDb *sql.DB) Models {
	m := Models{
		Players: PlayerModel{db: initDb},
		Matches: MatchModel{db: initDb},
		Pins:    PinModel{db: initDb},
		Stats:   StatsModel{db: initDb},
	}
	helperModels = m
	return m
}
