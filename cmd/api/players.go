package main

import (
	"DartTableApi/internal/data"
	"DartTableApi/internal/validator"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (app *application) InsertPlayer(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Passcode string `json:"passcode"`
		IsGuest  bool   `json:"guest"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	player := &data.Player{
		Name:    input.Name,
		Email:   input.Email,
		IsGuest: input.IsGuest,
	}

	if !player.IsGuest {
		err = player.Passcode.Set(input.Passcode)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	v := validator.New()
	if data.ValidatePlayer(v, player); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Players.Insert(player)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			v.AddError("email", "a player with this email address already exists")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/player/%s", player.PinID.Pin))
	err = app.writeJSON(w, http.StatusCreated, envelope{"player": player}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetPlayer(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	player, err := app.models.Players.GetByPin(pin)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"player": player}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllPlayers(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()
	filter := data.PlayersFilter{}

	filter.Name = app.readString(qs, "name", "")
	if guests := app.readString(qs, "guests", ""); guests != "" {
		isGuest := guests == "true"
		filter.Guests = &isGuest
	}

	filter.Filters.Page = app.readInt(qs, "page", 1, v)
	filter.Filters.PageSize = app.readInt(qs, "page_size", 20, v)
	filter.Filters.Sort = app.readString(qs, "sort", "name")
	filter.Filters.SortSafeList = []string{"name", "created_at", "-name", "-created_at"}

	if data.ValidateFilters(v, filter.Filters); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	players, metadata, err := app.models.Players.GetAll(filter)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"metadata": metadata, "players": players}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	player, err := app.models.Players.GetByPin(pin)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Passcode *string `json:"passcode"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if input.Name != nil {
		player.Name = *input.Name
	}
	if input.Email != nil {
		player.Email = *input.Email
		// A guest claiming their profile stops being a guest.
		player.IsGuest = false
	}
	if input.Passcode != nil {
		err = player.Passcode.Set(*input.Passcode)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		player.IsGuest = false
	}

	v := validator.New()
	if data.ValidatePlayer(v, player); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Players.Update(player)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			v.AddError("email", "a player with this email address already exists")
			app.failedValidationResponse(w, r, v.Errors)
		case errors.Is(err, data.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"player": player}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	err := app.models.Players.Delete(pin)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("player (%s) successfully deleted", pin)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	player, err := app.models.Players.GetByPin(pin)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	career, err := app.models.Stats.Career(pin)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"player": player,
		"career": career,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
