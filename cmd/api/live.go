package main

import (
	"DartTableApi/internal/matchhub"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin checks do not apply to the board bridge, and watcher state is
	// read-only public data within the venue.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedMatch is the board bridge's entry point. The bridge presents the feed
// token minted when the match was started; everything it sends from then on
// is camera snapshots.
func (app *application) FeedMatch(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	hub, err := app.liveMatches.Get(pin)
	if err != nil {
		switch {
		case errors.Is(err, matchhub.ErrNoLiveMatch):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := hub.Authorize(r.URL.Query().Get("token")); err != nil {
		app.notAuthorizedResponse(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	feed := matchhub.NewFeed(hub, conn)
	if !hub.Attach(feed) {
		_ = conn.Close()
		return
	}

	go feed.KeepAlive()
	go feed.ReadSnapshots()
}

// WatchMatch upgrades a scoreboard or phone to a read-only state stream.
func (app *application) WatchMatch(w http.ResponseWriter, r *http.Request) {
	pin := strings.ToLower(chi.URLParam(r, "pin"))

	hub, err := app.liveMatches.Get(pin)
	if err != nil {
		switch {
		case errors.Is(err, matchhub.ErrNoLiveMatch):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	watcher := matchhub.NewWatcher(hub, conn)
	if !hub.Join(watcher) {
		_ = conn.Close()
		return
	}

	go watcher.WriteStates()
	go watcher.ReadPongs()
}
