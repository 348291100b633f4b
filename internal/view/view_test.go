package view

import (
	"context"
	"math"
	"testing"
	"time"

	"mapty/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, time.May, 2, 8, 0, 0, 0, time.UTC)

func TestSummaryForRunning(t *testing.T) {
	w := domain.NewRunning("r1", day, domain.Coordinates{Lat: 1, Lng: 2}, 5.2, 24, 178)
	s := SummaryFor(w)

	assert.Equal(t, "r1", s.ID)
	assert.Equal(t, domain.KindRunning, s.Kind)
	assert.Equal(t, "Running on May 2", s.Description)
	assert.Equal(t, 4.6, s.Derived)
	assert.Equal(t, "min/km", s.DerivedUnit)
	assert.Equal(t, 178.0, s.Secondary)
	assert.Equal(t, "spm", s.SecondaryUnit)
}

func TestSummaryForCycling(t *testing.T) {
	w := domain.NewCycling("c1", day, domain.Coordinates{}, 27, 95, 523)
	s := SummaryFor(w)

	assert.Equal(t, 17.1, s.Derived)
	assert.Equal(t, "km/h", s.DerivedUnit)
	assert.Equal(t, 523.0, s.Secondary)
	assert.Equal(t, "m", s.SecondaryUnit)
}

func TestMapSnapshotIsDetached(t *testing.T) {
	m := NewMap()
	assert.False(t, m.Snapshot().Loaded)

	m.SetView(domain.Coordinates{Lat: 39, Lng: -12}, 13)
	m.PlaceMarker(Marker{WorkoutID: "a"})
	snap := m.Snapshot()
	snap.Markers[0].WorkoutID = "changed"

	assert.True(t, m.Snapshot().Loaded)
	assert.Equal(t, 13, m.Snapshot().Zoom)
	assert.Equal(t, "a", m.Snapshot().Markers[0].WorkoutID)

	m.ClearMarkers()
	assert.Empty(t, m.Snapshot().Markers)
	assert.True(t, m.Snapshot().Loaded)
}

func TestFormToggle(t *testing.T) {
	f := NewForm()
	assert.Equal(t, "cadence", f.Snapshot().ExtraField)
	assert.False(t, f.Snapshot().Visible)

	f.Show()
	assert.True(t, f.Snapshot().Visible)
	assert.Equal(t, "distance", f.Snapshot().FocusedField)

	f.SelectKind(domain.KindCycling)
	assert.Equal(t, "elevation", f.Snapshot().ExtraField)

	f.Hide()
	assert.False(t, f.Snapshot().Visible)
}

func TestLocators(t *testing.T) {
	ctx := context.Background()

	got, err := FixedLocator{Coords: domain.Coordinates{Lat: 1, Lng: 2}}.Locate(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 1, Lng: 2}, got)

	_, err = FixedLocator{Coords: domain.Coordinates{Lat: math.NaN()}}.Locate(ctx)
	assert.ErrorIs(t, err, ErrPositionUnavailable)

	_, err = UnavailableLocator{}.Locate(ctx)
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}
