package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"mapty/workout-tracker/internal/domain"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrInvalidInput = errors.New("inputs have to be positive numbers")
)

// Factory validates raw workout input and constructs workouts.
// It never touches a store or a view.
type Factory struct {
	now   func() time.Time
	newID func() string
}

// FactoryOption customises a Factory.
type FactoryOption func(*Factory)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) { f.now = now }
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(newID func() string) FactoryOption {
	return func(f *Factory) { f.newID = newID }
}

// NewFactory creates a factory stamping workouts with time.Now and random UUIDs.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateWorkout validates the input and builds a workout of the given kind.
// extra is the cadence for running and the elevation gain for cycling.
//
// Every number must be finite and distance and duration must be positive.
// Cadence must also be positive; elevation gain may be zero or negative.
// The derived pace or speed must be finite too.
func (f *Factory) CreateWorkout(kind domain.Kind, coords domain.Coordinates, distanceKm, durationMin, extra float64) (*domain.Workout, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown workout type %q", ErrInvalidInput, kind)
	}
	if !coords.IsFinite() {
		return nil, fmt.Errorf("%w: coordinates must be finite", ErrInvalidInput)
	}
	if !allFinite(distanceKm, durationMin, extra) {
		return nil, fmt.Errorf("%w: distance, duration and %s must be numbers", ErrInvalidInput, extraName(kind))
	}
	if !allPositive(distanceKm, durationMin) {
		return nil, fmt.Errorf("%w: distance and duration must be positive", ErrInvalidInput)
	}

	var w *domain.Workout
	switch kind {
	case domain.KindRunning:
		if !allPositive(extra) {
			return nil, fmt.Errorf("%w: cadence must be positive", ErrInvalidInput)
		}
		w = domain.NewRunning(f.newID(), f.now(), coords, distanceKm, durationMin, extra)
	default:
		w = domain.NewCycling(f.newID(), f.now(), coords, distanceKm, durationMin, extra)
	}
	// Pace and speed can overflow for extreme inputs and would not encode.
	if !allFinite(w.Derived()) {
		return nil, fmt.Errorf("%w: distance and duration are out of range", ErrInvalidInput)
	}
	return w, nil
}

func extraName(kind domain.Kind) string {
	if kind == domain.KindCycling {
		return "elevation"
	}
	return "cadence"
}

func allFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func allPositive(vals ...float64) bool {
	for _, v := range vals {
		if v <= 0 {
			return false
		}
	}
	return true
}
