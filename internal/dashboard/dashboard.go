package dashboard

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrSuperseded is returned when a newer action started before this one finished.
var ErrSuperseded = errors.New("superseded by a newer request")

// Geolocator reports the device position.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}

// Dashboard orchestrates lookups and forecast fetches and owns the displayed state.
// Each action supersedes the previous one: its context is canceled and its result,
// if it still arrives, is discarded.
type Dashboard struct {
	resolver   *weather.Resolver
	service    *weather.Service
	store      *store.MemoryStore
	formatters *weather.Formatters
	defaultLoc weather.PlaceLocation

	mu       sync.Mutex
	cancelFn context.CancelFunc
}

// New creates a Dashboard showing defaultLoc until something is loaded.
func New(resolver *weather.Resolver, service *weather.Service, st *store.MemoryStore,
	formatters *weather.Formatters, defaultLoc weather.PlaceLocation,
) *Dashboard {
	return &Dashboard{
		resolver:   resolver,
		service:    service,
		store:      st,
		formatters: formatters,
		defaultLoc: defaultLoc,
	}
}

// LoadDefault loads the forecast for the default location.
func (d *Dashboard) LoadDefault(ctx context.Context) error {
	return d.run(ctx, "load", msgInitialLoadFailed, false, func(ctx context.Context) (string, weather.Forecast, error) {
		fc, err := d.service.FetchAndNormalize(ctx, d.defaultLoc)
		return d.defaultLoc.Name, fc, err
	})
}

// Refresh reloads the forecast for the location currently shown. It yields to
// an action that is already in flight instead of superseding it.
func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.run(ctx, "refresh", msgRefreshFailed, true, func(ctx context.Context) (string, weather.Forecast, error) {
		st := d.store.Snapshot()
		fc, err := d.service.FetchAndNormalize(ctx, st.Location)
		return st.Query, fc, err
	})
}

// Search resolves the query to a place and loads its forecast. Blank queries are
// rejected without starting a request.
func (d *Dashboard) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		d.store.SetError(UserMessage(weather.ErrEmptyQuery, msgSearchFailed))
		return weather.ErrEmptyQuery
	}

	return d.run(ctx, "search", msgSearchFailed, false, func(ctx context.Context) (string, weather.Forecast, error) {
		loc, err := d.resolver.SearchByName(ctx, query)
		if err != nil {
			return "", weather.Forecast{}, err
		}
		fc, err := d.service.FetchAndNormalize(ctx, loc)
		return loc.Name, fc, err
	})
}

// UseMyLocation reads the device position, names it on a best-effort basis and
// loads its forecast. A nil geolocator means the device cannot locate itself.
func (d *Dashboard) UseMyLocation(ctx context.Context, geo Geolocator) error {
	if geo == nil {
		d.store.SetError(UserMessage(weather.ErrGeolocationUnsupported, msgLocateFailed))
		return weather.ErrGeolocationUnsupported
	}

	return d.run(ctx, "locate", msgLocateFailed, false, func(ctx context.Context) (string, weather.Forecast, error) {
		lat, lon, err := geo.CurrentPosition(ctx)
		if err != nil {
			if !errors.Is(err, weather.ErrGeolocationDenied) && !errors.Is(err, weather.ErrGeolocationFailed) {
				err = errors.Join(weather.ErrGeolocationFailed, err)
			}
			return "", weather.Forecast{}, err
		}

		loc := d.resolver.ResolveCoordinates(ctx, lat, lon)
		fc, err := d.service.FetchAndNormalize(ctx, loc)
		return loc.Name, fc, err
	})
}

// run executes one action under a fresh generation. The loading flag is cleared
// on every path; failures become a user-facing message in the state. A yielding
// action is skipped when another one is in flight.
func (d *Dashboard) run(
	parent context.Context,
	action string,
	fallback string,
	yield bool,
	fn func(ctx context.Context) (string, weather.Forecast, error),
) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	requestID := uuid.NewString()
	gen, ok := d.begin(requestID, cancel, yield)
	if !ok {
		log.Printf("INFO: dashboard %s skipped; request %s still in flight", action, d.store.Snapshot().RequestID)
		return nil
	}
	defer d.store.Finish(gen)

	log.Printf("INFO: dashboard %s started (request %s)", action, requestID)

	query, forecast, err := fn(ctx)
	if err != nil {
		if !d.store.Fail(gen, UserMessage(err, fallback)) {
			log.Printf("DEBUG: dashboard %s (request %s) superseded: %v", action, requestID, err)
			return ErrSuperseded
		}
		log.Printf("ERROR: dashboard %s failed (request %s): %v", action, requestID, err)
		return err
	}

	if !d.store.Commit(gen, query, forecast) {
		log.Printf("DEBUG: dashboard %s (request %s) superseded; discarding result", action, requestID)
		return ErrSuperseded
	}
	log.Printf("INFO: dashboard %s completed for %s (request %s)", action, forecast.Location.DisplayLabel(), requestID)
	return nil
}

// begin issues a new generation and then cancels the previous in-flight action,
// so the canceled action already sees itself as stale when it unwinds. With
// yield set, nothing is issued while another action is loading.
func (d *Dashboard) begin(requestID string, cancel context.CancelFunc, yield bool) (store.Generation, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if yield && d.store.Snapshot().Loading {
		return 0, false
	}

	gen := d.store.Begin(requestID)
	if d.cancelFn != nil {
		d.cancelFn()
	}
	d.cancelFn = cancel
	return gen, true
}

// State returns a copy of the raw state bundle.
func (d *Dashboard) State() weather.DashboardState {
	return d.store.Snapshot()
}

// Latest returns the last committed forecast, or store.ErrNotFound before the first load.
func (d *Dashboard) Latest() (weather.Forecast, error) {
	return d.store.Latest()
}
