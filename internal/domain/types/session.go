package types

import (
	"sync"
	"time"
)

// State is all mutable planning data of one session. Per-trip collections are
// keyed by trip name.
type State struct {
	Trips       map[string]*Trip                  `json:"trips"`
	TripOrder   []string                          `json:"trip_order"`
	CurrentTrip string                            `json:"current_trip"`
	Itinerary   map[string]map[int]ItineraryEntry `json:"itinerary"`
	Budget      map[string][]Expense              `json:"budget"`
	Favorites   []string                          `json:"favorites"`
	Packing     map[string][]PackingItem          `json:"packing"`
	Notes       []Note                            `json:"notes"`
}

// NewState returns an empty State with every domain initialised.
func NewState() *State {
	return &State{
		Trips:     make(map[string]*Trip),
		Itinerary: make(map[string]map[int]ItineraryEntry),
		Budget:    make(map[string][]Expense),
		Packing:   make(map[string][]PackingItem),
	}
}

// Session owns one State and serialises access to it.
type Session struct {
	ID        SessionID
	CreatedAt time.Time

	mu    sync.Mutex
	state *State
}

// NewSession returns a session holding a fresh State.
func NewSession(id SessionID, now time.Time) *Session {
	return &Session{ID: id, CreatedAt: now, state: NewState()}
}

// Update runs fn with exclusive access to the session state.
func (s *Session) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View runs fn with exclusive access to the session state. fn must not
// mutate st.
func (s *Session) View(fn func(st *State) error) error {
	return s.Update(fn)
}

// Trip returns the stored trip called name.
func (st *State) Trip(name string) (*Trip, error) {
	t, ok := st.Trips[name]
	if !ok {
		return nil, ErrTripNotFound
	}
	return t, nil
}
