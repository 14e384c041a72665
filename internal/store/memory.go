package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no forecast has been loaded yet.
	ErrNotFound = errors.New("no forecast loaded")
)

// Generation identifies one dashboard action. Only the most recently issued
// generation may change the state when it completes.
type Generation uint64

// MemoryStore is a concurrency-safe holder of the single dashboard state bundle.
type MemoryStore struct {
	mu sync.RWMutex

	state   weather.DashboardState
	current Generation

	now func() time.Time
}

// NewMemoryStore creates a store showing the given location before anything is loaded.
func NewMemoryStore(initial weather.PlaceLocation) *MemoryStore {
	return &MemoryStore{
		state: weather.DashboardState{
			Query:    initial.Name,
			Location: initial,
		},
		now: time.Now,
	}
}

// Begin supersedes any in-flight action: it issues a new generation, sets the
// loading flag and clears the previous error.
func (s *MemoryStore) Begin(requestID string) Generation {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current++
	s.state.Loading = true
	s.state.Error = ""
	s.state.RequestID = requestID
	return s.current
}

// IsCurrent reports whether gen is still the latest action.
func (s *MemoryStore) IsCurrent(gen Generation) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.current
}

// Commit replaces location, forecast and query together and clears loading.
// It returns false and changes nothing when gen has been superseded.
func (s *MemoryStore) Commit(gen Generation, query string, forecast weather.Forecast) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.current {
		return false
	}
	fc := forecast
	s.state.Query = query
	s.state.Location = forecast.Location
	s.state.Forecast = &fc
	s.state.LastUpdated = s.now().UTC()
	s.state.Loading = false
	return true
}

// Fail records a user-facing message and clears loading, unless gen has been superseded.
// Location and forecast are left as they were.
func (s *MemoryStore) Fail(gen Generation, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.current {
		return false
	}
	s.state.Error = message
	s.state.Loading = false
	return true
}

// Finish clears loading for gen if it is still current. Safe to call after Commit or Fail.
func (s *MemoryStore) Finish(gen Generation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen == s.current {
		s.state.Loading = false
	}
}

// SetError records a message for input rejected before any action began.
// It neither issues a generation nor touches the loading flag.
func (s *MemoryStore) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = message
}

// Snapshot returns a copy of the state.
func (s *MemoryStore) Snapshot() weather.DashboardState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	if s.state.Forecast != nil {
		fc := *s.state.Forecast
		out.Forecast = &fc
	}
	return out
}

// Latest returns the most recently committed forecast.
func (s *MemoryStore) Latest() (weather.Forecast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Forecast == nil {
		return weather.Forecast{}, ErrNotFound
	}
	return *s.state.Forecast, nil
}

// CurrentLocation returns the location currently shown.
func (s *MemoryStore) CurrentLocation() weather.PlaceLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Location
}
