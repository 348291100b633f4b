// internal/domain/workout.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the discriminant of the Workout sum type.
type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// Valid reports whether k is one of the known workout kinds.
func (k Kind) Valid() bool {
	return k == KindRunning || k == KindCycling
}

// Title returns the kind with its first letter upper-cased ("Running").
func (k Kind) Title() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Workout is a logged exercise session. Running workouts carry a cadence and
// a pace; cycling workouts carry an elevation gain and a speed.
//
// Everything except InteractionCount is fixed at construction time.
type Workout struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"createdAt"`
	Coords      Coordinates `json:"coords"`
	DistanceKm  float64     `json:"distance"`
	DurationMin float64     `json:"duration"`
	Kind        Kind        `json:"type"`

	// --- Running ---
	CadenceSpm   float64 `json:"cadence,omitempty"`
	PaceMinPerKm float64 `json:"pace,omitempty"`

	// --- Cycling ---
	ElevationGainM float64 `json:"elevationGain,omitempty"`
	SpeedKmPerH    float64 `json:"speed,omitempty"`

	Description      string `json:"description"`
	InteractionCount int    `json:"clicks"`
}

// NewRunning builds a running workout and derives its pace and description.
// Inputs are expected to be validated by the caller.
func NewRunning(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin, cadenceSpm float64) *Workout {
	w := &Workout{
		ID:          id,
		CreatedAt:   createdAt,
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Kind:        KindRunning,
		CadenceSpm:  cadenceSpm,
	}
	w.PaceMinPerKm = durationMin / distanceKm
	w.Description = describe(w.Kind, createdAt)
	return w
}

// NewCycling builds a cycling workout and derives its speed and description.
// Inputs are expected to be validated by the caller.
func NewCycling(id string, createdAt time.Time, coords Coordinates, distanceKm, durationMin, elevationGainM float64) *Workout {
	w := &Workout{
		ID:             id,
		CreatedAt:      createdAt,
		Coords:         coords,
		DistanceKm:     distanceKm,
		DurationMin:    durationMin,
		Kind:           KindCycling,
		ElevationGainM: elevationGainM,
	}
	w.SpeedKmPerH = distanceKm / (durationMin / 60)
	w.Description = describe(w.Kind, createdAt)
	return w
}

// describe produces labels like "Running on April 14".
func describe(kind Kind, createdAt time.Time) string {
	return fmt.Sprintf("%s on %s %d", kind.Title(), createdAt.Month(), createdAt.Day())
}

// Activate records one user interaction with the workout (e.g. a list click).
func (w *Workout) Activate() {
	w.InteractionCount++
}

// Derived returns the stored pace (running) or speed (cycling).
func (w *Workout) Derived() float64 {
	switch w.Kind {
	case KindRunning:
		return w.PaceMinPerKm
	case KindCycling:
		return w.SpeedKmPerH
	}
	return 0
}

// DerivedUnit is the display unit of Derived.
func (w *Workout) DerivedUnit() string {
	if w.Kind == KindCycling {
		return "km/h"
	}
	return "min/km"
}

// Secondary returns cadence (running) or elevation gain (cycling) and its unit.
func (w *Workout) Secondary() (float64, string) {
	if w.Kind == KindCycling {
		return w.ElevationGainM, "m"
	}
	return w.CadenceSpm, "spm"
}

// Icon is the marker/list icon for the workout kind.
func (w *Workout) Icon() string {
	if w.Kind == KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// PopupClass is the CSS class the map popup uses for this kind.
func (w *Workout) PopupClass() string {
	return string(w.Kind) + "-popup"
}

// Label is the marker popup content: icon followed by the description.
func (w *Workout) Label() string {
	return w.Icon() + " " + w.Description
}
