// Package view holds the in-process state of the map, form and workout list
// that a browser would otherwise render. None of the types are safe for
// concurrent use; service.App serializes every call.
package view

import "mapty/workout-tracker/internal/domain"

// Marker is a pin on the map with an always-open popup.
type Marker struct {
	WorkoutID  string             `json:"workoutId"`
	Coords     domain.Coordinates `json:"coords"`
	Label      string             `json:"label"`
	PopupClass string             `json:"popupClass"`
}

// MarkerFor builds the marker for a workout.
func MarkerFor(w *domain.Workout) Marker {
	return Marker{
		WorkoutID:  w.ID,
		Coords:     w.Coords,
		Label:      w.Label(),
		PopupClass: w.PopupClass(),
	}
}

// MapState is what the map currently shows.
type MapState struct {
	Loaded  bool               `json:"loaded"`
	Center  domain.Coordinates `json:"center"`
	Zoom    int                `json:"zoom"`
	Markers []Marker           `json:"markers"`
}

// Map is an in-memory map widget.
type Map struct {
	state MapState
}

func NewMap() *Map {
	return &Map{state: MapState{Markers: []Marker{}}}
}

// SetView centres the map; the first call loads it.
func (m *Map) SetView(center domain.Coordinates, zoom int) {
	m.state.Loaded = true
	m.state.Center = center
	m.state.Zoom = zoom
}

func (m *Map) PlaceMarker(mk Marker) {
	m.state.Markers = append(m.state.Markers, mk)
}

// ClearMarkers removes every marker but keeps the view.
func (m *Map) ClearMarkers() {
	m.state.Markers = []Marker{}
}

func (m *Map) Snapshot() MapState {
	s := m.state
	s.Markers = append([]Marker(nil), m.state.Markers...)
	if s.Markers == nil {
		s.Markers = []Marker{}
	}
	return s
}
