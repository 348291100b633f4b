package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"mapty/workout-tracker/internal/domain"
	"mapty/workout-tracker/internal/observability"
	"mapty/workout-tracker/internal/view"

	"github.com/rs/zerolog/log"
)

// --- Error Definitions ---
var (
	ErrGeolocationUnavailable = errors.New("could not get your position")
	ErrMapNotLoaded           = errors.New("map is not loaded")
	ErrNoPendingLocation      = errors.New("click on the map to choose a location first")
)

// Notices shown to the user.
const (
	NoticeInvalidInput = "Inputs have to be positive numbers!"
	NoticeNoPosition   = "Could not get your position."
)

// DefaultZoom is the map zoom used for the initial view and when panning to a workout.
const DefaultZoom = 13

// --- Collaborators ---

type MapView interface {
	SetView(center domain.Coordinates, zoom int)
	PlaceMarker(m view.Marker)
	ClearMarkers()
	Snapshot() view.MapState
}

type FormView interface {
	Show()
	Hide()
	SelectKind(kind domain.Kind)
	Snapshot() view.FormState
}

type ListView interface {
	Render(s view.Summary)
	Clear()
	Snapshot() []view.Summary
}

type Notifier interface {
	Notify(msg string)
}

// Locator is the geolocation provider: one position, or an error.
type Locator interface {
	Locate(ctx context.Context) (domain.Coordinates, error)
}

// Views groups the collaborators App renders to.
type Views struct {
	Map      MapView
	Form     FormView
	List     ListView
	Notifier Notifier
}

// NewViews returns in-memory views.
func NewViews() Views {
	return Views{
		Map:      view.NewMap(),
		Form:     view.NewForm(),
		List:     view.NewList(),
		Notifier: view.NewNotices(),
	}
}

// FormInput is a raw form submission. Numbers arrive as strings.
type FormInput struct {
	Type      string
	Distance  string
	Duration  string
	Cadence   string
	Elevation string
}

// App is the application controller. It owns the map state, the pending
// map click and the workout store, and wires view events to them.
//
// Every exported method takes the same lock, so events are handled one at a
// time in arrival order.
type App struct {
	mu sync.Mutex

	store   *Store
	factory *Factory
	views   Views
	zoom    int

	started   bool
	mapLoaded bool
	pending   *domain.Coordinates
}

// NewApp creates the controller. A non-positive zoom uses DefaultZoom.
func NewApp(store *Store, factory *Factory, views Views, zoom int) *App {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return &App{
		store:   store,
		factory: factory,
		views:   views,
		zoom:    zoom,
	}
}

// Start hydrates the store and renders the stored workouts into the list.
// Markers follow once the map is loaded. Calling Start again is a no-op.
func (a *App) Start(ctx context.Context) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return a.store.Len()
	}
	a.started = true

	n := a.store.Hydrate(ctx)
	for _, w := range a.store.List() {
		a.views.List.Render(view.SummaryFor(&w))
	}
	return n
}

// LoadMap asks the locator for the user's position and centres the map on it.
// On the first successful load every stored workout gets a marker. A failed
// lookup shows a notice and leaves the map unloaded; there is no retry.
func (a *App) LoadMap(ctx context.Context, locator Locator) (view.MapState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if locator == nil {
		locator = view.UnavailableLocator{}
	}
	coords, err := locator.Locate(ctx)
	if err != nil {
		a.views.Notifier.Notify(NoticeNoPosition)
		log.Warn().Err(err).Msg("geolocation failed")
		return a.views.Map.Snapshot(), fmt.Errorf("%w: %v", ErrGeolocationUnavailable, err)
	}

	a.views.Map.SetView(coords, a.zoom)
	if !a.mapLoaded {
		a.mapLoaded = true
		for _, w := range a.store.List() {
			a.views.Map.PlaceMarker(view.MarkerFor(&w))
		}
	}
	log.Info().Str("center", coords.String()).Int("zoom", a.zoom).Msg("map loaded")
	return a.views.Map.Snapshot(), nil
}

// MapClick remembers where the user clicked and opens the form.
func (a *App) MapClick(coords domain.Coordinates) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.mapLoaded {
		return ErrMapNotLoaded
	}
	if !coords.IsFinite() {
		return fmt.Errorf("%w: coordinates must be finite", ErrInvalidInput)
	}
	a.pending = &coords
	a.views.Form.Show()
	return nil
}

// SelectKind switches the form between the cadence and elevation fields.
func (a *App) SelectKind(kind domain.Kind) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !kind.Valid() {
		return fmt.Errorf("%w: unknown workout type %q", ErrInvalidInput, kind)
	}
	a.views.Form.SelectKind(kind)
	return nil
}

// Submit logs a workout at the pending map click. Invalid input shows a
// notice and changes nothing.
func (a *App) Submit(ctx context.Context, in FormInput) (*domain.Workout, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pending == nil {
		return nil, ErrNoPendingLocation
	}

	kind := domain.Kind(strings.ToLower(strings.TrimSpace(in.Type)))
	extra := in.Cadence
	if kind == domain.KindCycling {
		extra = in.Elevation
	}

	w, err := a.factory.CreateWorkout(kind, *a.pending, parseNumber(in.Distance), parseNumber(in.Duration), parseNumber(extra))
	if err != nil {
		observability.RecordInvalidInput()
		a.views.Notifier.Notify(NoticeInvalidInput)
		return nil, err
	}

	if err := a.store.Append(ctx, w); err != nil {
		return nil, err
	}

	a.views.Map.PlaceMarker(view.MarkerFor(w))
	a.views.List.Render(view.SummaryFor(w))
	a.views.Form.Hide()
	a.pending = nil

	log.Info().Str("id", w.ID).Str("type", string(w.Kind)).Str("description", w.Description).Msg("workout logged")
	return w, nil
}

// Activate pans the map to a workout and counts the interaction. Unknown ids
// change nothing and return ErrNotFound.
func (a *App) Activate(id string) (*domain.Workout, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, err := a.store.Activate(id)
	if err != nil {
		return nil, err
	}
	if a.mapLoaded {
		a.views.Map.SetView(w.Coords, a.zoom)
	}
	return w, nil
}

// Reset deletes every workout, in memory and in the slot, and clears the views.
func (a *App) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.store.Reset(ctx)
	a.views.Map.ClearMarkers()
	a.views.List.Clear()
	a.views.Form.Hide()
	a.pending = nil
	return err
}

// --- Read access ---

func (a *App) Workouts() []domain.Workout {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.List()
}

func (a *App) Workout(id string) (*domain.Workout, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.FindByID(id)
}

func (a *App) MapState() view.MapState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.views.Map.Snapshot()
}

func (a *App) FormState() view.FormState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.views.Form.Snapshot()
}

func (a *App) ListItems() []view.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.views.List.Snapshot()
}

// parseNumber converts form text the way the browser does: blank is 0 and
// anything unparsable is NaN, which validation then rejects.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
