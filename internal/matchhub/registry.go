package matchhub

import (
	"errors"
	"sync"
)

var ErrNoLiveMatch = errors.New("no live hub for that match")

// Registry tracks every match currently live on this server, keyed by match
// pin. Hubs register when a match starts and are removed when it is ended
// or cancelled.
type Registry struct {
	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewRegistry() *Registry {
	return &Registry{hubs: make(map[string]*Hub)}
}

// Start launches the hub's Run loop and makes it reachable by pin. Starting
// a pin that is already live replaces nothing and reports false.
func (r *Registry) Start(h *Hub) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, live := r.hubs[h.MatchPin]; live {
		return false
	}
	r.hubs[h.MatchPin] = h
	go h.Run()
	return true
}

func (r *Registry) Get(matchPin string) (*Hub, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hubs[matchPin]
	if !ok {
		return nil, ErrNoLiveMatch
	}
	return h, nil
}

// Stop shuts the hub down with the given reason and forgets the pin.
func (r *Registry) Stop(matchPin string, reason error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hubs[matchPin]
	if !ok {
		return ErrNoLiveMatch
	}
	delete(r.hubs, matchPin)
	h.Stop(reason)
	return nil
}

// StopAll is used on server shutdown.
func (r *Registry) StopAll(reason error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for pin, h := range r.hubs {
		h.Stop(reason)
		delete(r.hubs, pin)
	}
}

// Pins lists the live match pins, for the healthcheck and metrics.
func (r *Registry) Pins() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	pins := make([]string, 0, len(r.hubs))
	for pin := range r.hubs {
		pins = append(pins, pin)
	}
	return pins
}
