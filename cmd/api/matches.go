package main

import (
	"DartTableApi/internal/data"
	"DartTableApi/internal/game"
	"DartTableApi/internal/matchhub"
	"DartTableApi/internal/stats"
	"DartTableApi/internal/validator"
	json2 "encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (app *application) InsertMatch(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Variant    string           `json:"variant"`
		Settings   json2.RawMessage `json:"settings"`
		PlayerPins []string         `json:"player_pins"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	match := &data.Match{
		Variant:    game.Variant(input.Variant),
		Settings:   input.Settings,
		PlayerPins: input.PlayerPins,
	}

	v := validator.New()
	if data.ValidateMatch(v, match); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Matches.Insert(match)
	if err != nil {
		var modelValidationErr data.ModelValidationErr
		switch {
		case errors.As(err, &modelValidationErr):
			app.failedValidationResponse(w, r, modelValidationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/match/%s", match.PinID.Pin))
	err = app.writeJSON(w, http.StatusCreated, envelope{"match": match}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMatch(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	match, err := app.models.Matches.GetByPin(pin)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	response := envelope{"match": match}

	if match.Status == data.FINISHED {
		lines, err := app.models.Stats.MatchLines(pin)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		response["lines"] = lines
	}

	err = app.writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllMatches(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()
	filter := data.MatchesFilter{}

	filter.PlayerPins = app.readCSV(qs, "player_pins", nil)
	filter.Variant = app.readString(qs, "variant", "")
	filter.Status = app.readCSMatchStatus(qs, nil, v)

	filter.Filters.Page = app.readInt(qs, "page", 1, v)
	filter.Filters.PageSize = app.readInt(qs, "page_size", 20, v)
	filter.Filters.Sort = app.readString(qs, "sort", "-created_at")
	filter.Filters.SortSafeList = []string{"created_at", "variant", "-created_at", "-variant"}

	if data.ValidateFilters(v, filter.Filters); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	matches, metadata, err := app.models.Matches.GetAll(filter)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"metadata": metadata, "matches": matches}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// StartMatch spins up the live hub for the match and returns the feed token
// the board bridge must present on /v1/match/{pin}/feed.
func (app *application) StartMatch(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	match, err := app.models.Matches.GetByPin(pin)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	roster, err := app.matchRoster(match)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	hub, err := matchhub.New(matchhub.Config{
		MatchPin: match.PinID.Pin,
		Variant:  match.Variant,
		Settings: match.Settings,
		Roster:   roster,
		Logger:   app.logger,
		Lights:   app.lights,
		OnFinish: app.finishMatch,
	})
	if err != nil {
		switch {
		case errors.Is(err, game.ErrVariantNotImplemented):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.liveMatches.Start(hub) {
		app.badRequestResponse(w, r, errors.New("match is already live"))
		return
	}

	err = app.models.Matches.UpdateStatus(match, data.INPROGRESS)
	if err != nil {
		_ = app.liveMatches.Stop(match.PinID.Pin, matchhub.ErrHubClosed)
		switch {
		case errors.Is(err, data.ErrInvalidStatusChange):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, data.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.PrintInfo("match started", map[string]string{
		"match_pin": match.PinID.Pin,
		"variant":   string(match.Variant),
	})

	err = app.writeJSON(w, http.StatusOK, envelope{
		"match":      match,
		"feed_token": hub.FeedToken,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// RestartMatch starts the live engine over from the stored variant, settings
// and roster. Scores and reconciler memory are discarded; the feed and the
// watchers stay connected.
func (app *application) RestartMatch(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	match, err := app.models.Matches.GetByPin(pin)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	hub, err := app.liveMatches.Get(pin)
	if err != nil {
		switch {
		case errors.Is(err, matchhub.ErrNoLiveMatch):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	roster, err := app.matchRoster(match)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = hub.RequestReset(match.Variant, match.Settings, roster)
	if err != nil {
		switch {
		case errors.Is(err, matchhub.ErrHubClosed):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.PrintInfo("match restarted", map[string]string{
		"match_pin": match.PinID.Pin,
	})

	err = app.writeJSON(w, http.StatusOK, envelope{"match": match}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CancelMatch(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	match, err := app.models.Matches.GetByPin(pin)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.models.Matches.UpdateStatus(match, data.CANCELED)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrInvalidStatusChange):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, data.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// A canceled match may or may not have gone live.
	_ = app.liveMatches.Stop(pin, matchhub.ErrMatchFinished)

	err = app.writeJSON(w, http.StatusOK, envelope{"match": match}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) matchRoster(match *data.Match) ([]game.Player, error) {
	roster := make([]game.Player, 0, len(match.PlayerPins))
	for _, pin := range match.PlayerPins {
		player, err := app.models.Players.GetByPin(pin)
		if err != nil {
			return nil, err
		}
		roster = append(roster, game.Player{
			ID:       player.PinID.Pin,
			Name:     player.Name,
			IsActive: true,
		})
	}
	return roster, nil
}

// finishMatch runs on the hub goroutine when an engine reaches a terminal
// state. It hands the slow work to a background task.
func (app *application) finishMatch(summary matchhub.Summary) {
	app.backgroundTask(func() {
		err := app.models.Matches.RecordResult(summary.MatchPin, summary.WinnerID, summary.Lines)
		if err != nil {
			app.logger.PrintError(err, map[string]string{"match_pin": summary.MatchPin})
			return
		}

		app.logger.PrintInfo("match finished", map[string]string{
			"match_pin": summary.MatchPin,
			"winner":    summary.WinnerID,
		})

		for _, line := range summary.Lines {
			app.sendRecap(summary.MatchPin, line)
		}
	})
}

func (app *application) sendRecap(matchPin string, line stats.MatchLine) {
	player, err := app.models.Players.GetByPin(line.PlayerPin)
	if err != nil {
		app.logger.PrintError(err, map[string]string{"player_pin": line.PlayerPin})
		return
	}
	if player.IsGuest || player.Email == "" {
		return
	}

	career, err := app.models.Stats.Career(line.PlayerPin)
	if err != nil {
		app.logger.PrintError(err, map[string]string{"player_pin": line.PlayerPin})
		return
	}

	recap := struct {
		Name     string
		MatchPin string
		Won      bool
		Darts    int
		Average  float64
		HighTurn int
		Tons180  int
		Career   stats.Career
	}{
		Name:     player.Name,
		MatchPin: matchPin,
		Won:      line.Won,
		Darts:    line.Darts,
		Average:  stats.ThreeDartAverage(line.Scored, line.Darts),
		HighTurn: line.HighTurn,
		Tons180:  line.Tons180,
		Career:   career,
	}

	err = app.mailer.Send(player.Email, "match_recap.tmpl", recap)
	if err != nil {
		app.logger.PrintError(err, map[string]string{"player_pin": line.PlayerPin})
	}
}
