package matchhub

import (
	"encoding/json"
	"math/rand/v2"

	"DartTableApi/internal/board"
	"DartTableApi/internal/game"
	"DartTableApi/internal/jsonlog"
	"DartTableApi/internal/stats"

	"github.com/google/uuid"
)

// TriggerNotifier receives the named light/audio triggers the engines emit.
// Implementations must not block the hub loop.
type TriggerNotifier interface {
	Notify(trigger game.Trigger)
}

// NopNotifier drops every trigger. Used when no lighting endpoint is
// configured.
type NopNotifier struct{}

func (NopNotifier) Notify(game.Trigger) {}

// Summary is handed to OnFinish exactly once, when the engine reaches a
// terminal state.
type Summary struct {
	MatchPin string
	WinnerID string
	Lines    []stats.MatchLine
}

type Config struct {
	MatchPin string
	Variant  game.Variant
	Settings json.RawMessage
	Roster   []game.Player
	Logger   *jsonlog.Logger
	Lights   TriggerNotifier

	// OnFinish runs inside the hub goroutine; implementations hand off to
	// a background task if they do anything slow.
	OnFinish func(Summary)
}

// Hub owns the single live game state for one running match. Board
// snapshots come in from the feed connection, get reconciled into discrete
// events, are applied to the rule engine strictly in order, and the
// resulting state is fanned out to every watcher. Nothing else ever touches
// the engine.
type Hub struct {
	MatchPin  string
	FeedToken string

	snapshotCh chan board.Snapshot
	errorCh    chan error
	joinCh     chan *Watcher
	leaveCh    chan *Watcher
	attachCh   chan *Feed
	detachCh   chan *Feed
	resetCh    chan ResetRequest
	shutdownCh chan error

	logger     *jsonlog.Logger
	lights     TriggerNotifier
	onFinish   func(Summary)
	reconciler *board.Reconciler
	engine     engine
	rng        *rand.Rand
	watchers   map[*Watcher]bool
	feed       *Feed
	finished   bool
	done       chan struct{}
}

func New(cfg Config) (*Hub, error) {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	eng, err := NewEngine(cfg.Variant, cfg.Settings, cfg.Roster, rng)
	if err != nil {
		return nil, err
	}

	lights := cfg.Lights
	if lights == nil {
		lights = NopNotifier{}
	}

	h := &Hub{
		MatchPin:   cfg.MatchPin,
		FeedToken:  uuid.NewString(),
		snapshotCh: make(chan board.Snapshot),
		errorCh:    make(chan error),
		joinCh:     make(chan *Watcher),
		leaveCh:    make(chan *Watcher),
		attachCh:   make(chan *Feed),
		detachCh:   make(chan *Feed),
		resetCh:    make(chan ResetRequest),
		shutdownCh: make(chan error, 1),
		logger:     cfg.Logger,
		lights:     lights,
		onFinish:   cfg.OnFinish,
		reconciler: board.NewReconciler(),
		engine:     eng,
		rng:        rng,
		watchers:   make(map[*Watcher]bool),
		done:       make(chan struct{}),
	}
	h.engine.Housekeep(h.rng)

	return h, nil
}

func (h *Hub) Run() {
	for {
		select {
		case watcher := <-h.joinCh:
			h.watchers[watcher] = true
			watcher.Receive <- h.stateMessage()

		case watcher := <-h.leaveCh:
			if _, ok := h.watchers[watcher]; ok {
				delete(h.watchers, watcher)
				close(watcher.Receive)
			}

		case feed := <-h.attachCh:
			if h.feed != nil {
				feed.Close <- ErrFeedAlreadyAttached
				continue
			}
			h.feed = feed
			h.logger.PrintInfo("board feed attached", map[string]string{
				"match_pin": h.MatchPin,
			})

		case feed := <-h.detachCh:
			if h.feed == feed {
				h.feed = nil
			}

		case snap := <-h.snapshotCh:
			h.handleSnapshot(snap)

		case req := <-h.resetCh:
			req.Reply <- h.reset(req)

		case err := <-h.errorCh:
			// Bad snapshots and dropped connections are routine. Log and
			// keep running; the next good snapshot re-syncs everything.
			h.logger.PrintError(err, map[string]string{"match_pin": h.MatchPin})

		case reason := <-h.shutdownCh:
			for w := range h.watchers {
				w.Error <- reason
				delete(h.watchers, w)
			}
			if h.feed != nil {
				h.feed.Close <- reason
				h.feed = nil
			}
			close(h.done)
			return
		}
	}
}

// handleSnapshot is the one place events enter a rule engine, so ordering
// and single-threading hold by construction.
func (h *Hub) handleSnapshot(snap board.Snapshot) {
	events := h.reconciler.Reconcile(snap)
	if len(events) == 0 {
		return
	}

	for _, ev := range events {
		for _, trigger := range h.engine.Apply(ev) {
			h.lights.Notify(trigger)
		}
	}
	h.engine.Housekeep(h.rng)

	h.toAllWatchers(h.stateMessage())

	if h.engine.Finished() && !h.finished {
		h.finished = true
		if h.onFinish != nil {
			h.onFinish(Summary{
				MatchPin: h.MatchPin,
				WinnerID: h.engine.WinnerID(),
				Lines:    h.engine.Lines(),
			})
		}
	}
}

// ResetRequest starts the engine over with fresh settings and roster. The
// reconciler memory goes with it. The request is handled on the hub
// goroutine so the swap never races a snapshot.
type ResetRequest struct {
	Variant  game.Variant
	Settings json.RawMessage
	Roster   []game.Player
	Reply    chan error
}

// Join registers a watcher with the hub. It reports false when the hub has
// already shut down.
func (h *Hub) Join(w *Watcher) bool {
	select {
	case h.joinCh <- w:
		return true
	case <-h.done:
		return false
	}
}

// Authorize checks the token a board bridge presented against the one minted
// for this match.
func (h *Hub) Authorize(token string) error {
	if token == "" || token != h.FeedToken {
		return ErrFeedNotAuthorized
	}
	return nil
}

// Attach hands the board feed connection to the hub. A second feed gets a
// close frame with ErrFeedAlreadyAttached.
func (h *Hub) Attach(f *Feed) bool {
	select {
	case h.attachCh <- f:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) RequestReset(variant game.Variant, settings json.RawMessage, roster []game.Player) error {
	req := ResetRequest{
		Variant:  variant,
		Settings: settings,
		Roster:   roster,
		Reply:    make(chan error, 1),
	}
	select {
	case h.resetCh <- req:
		return <-req.Reply
	case <-h.done:
		return ErrHubClosed
	}
}

// Stop closes every connection with the given reason and ends the Run loop.
// Safe to call once; later calls are dropped.
func (h *Hub) Stop(reason error) {
	select {
	case h.shutdownCh <- reason:
	default:
	}
}

func (h *Hub) reset(req ResetRequest) error {
	eng, err := NewEngine(req.Variant, req.Settings, req.Roster, h.rng)
	if err != nil {
		return err
	}

	h.engine = eng
	h.engine.Housekeep(h.rng)
	h.reconciler.Reset()
	h.finished = false
	h.toAllWatchers(h.stateMessage())

	return nil
}

func (h *Hub) stateMessage() []byte {
	msg, err := json.Marshal(h.engine.StateDto())
	if err != nil {
		h.logger.PrintError(err, map[string]string{"match_pin": h.MatchPin})
		return []byte(`{}`)
	}
	return msg
}

// The push helpers let connection goroutines hand work to the hub without
// hanging forever when the hub has already shut down.

func (h *Hub) pushSnapshot(snap board.Snapshot) {
	select {
	case h.snapshotCh <- snap:
	case <-h.done:
	}
}

func (h *Hub) pushError(err error) {
	select {
	case h.errorCh <- err:
	case <-h.done:
	}
}

func (h *Hub) leaveWatcher(w *Watcher) {
	select {
	case h.leaveCh <- w:
	case <-h.done:
	}
}

func (h *Hub) detachFeed(f *Feed) {
	select {
	case h.detachCh <- f:
	case <-h.done:
	}
}

func (h *Hub) toAllWatchers(msg []byte) {
	for watcher := range h.watchers {
		select {
		case watcher.Receive <- msg:
		default:
			close(watcher.Receive)
			delete(h.watchers, watcher)
		}
	}
}
