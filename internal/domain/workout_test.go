package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, time.April, 14, 9, 30, 0, 0, time.UTC)

func TestNewRunningDerivesPace(t *testing.T) {
	w := NewRunning("r1", createdAt, Coordinates{Lat: 39, Lng: -12}, 5.2, 24, 178)

	assert.Equal(t, KindRunning, w.Kind)
	assert.InDelta(t, 24/5.2, w.PaceMinPerKm, 1e-12)
	assert.InDelta(t, 4.615, w.Derived(), 0.001)
	assert.Equal(t, "Running on April 14", w.Description)
	assert.Zero(t, w.SpeedKmPerH)
	assert.Zero(t, w.InteractionCount)
}

func TestNewCyclingDerivesSpeed(t *testing.T) {
	w := NewCycling("c1", createdAt, Coordinates{Lat: 39, Lng: -12}, 27, 95, 523)

	assert.Equal(t, KindCycling, w.Kind)
	assert.InDelta(t, 27/(95.0/60), w.SpeedKmPerH, 1e-12)
	assert.InDelta(t, 17.05, w.Derived(), 0.01)
	assert.Equal(t, "Cycling on April 14", w.Description)
	assert.Zero(t, w.PaceMinPerKm)
}

func TestWorkoutPresentation(t *testing.T) {
	run := NewRunning("r1", createdAt, Coordinates{}, 5, 25, 170)
	ride := NewCycling("c1", createdAt, Coordinates{}, 20, 60, 0)

	assert.Equal(t, "running-popup", run.PopupClass())
	assert.Equal(t, "cycling-popup", ride.PopupClass())
	assert.Equal(t, "🏃‍♂️ Running on April 14", run.Label())
	assert.Equal(t, "🚴‍♀️ Cycling on April 14", ride.Label())
	assert.Equal(t, "min/km", run.DerivedUnit())
	assert.Equal(t, "km/h", ride.DerivedUnit())

	v, unit := run.Secondary()
	assert.Equal(t, 170.0, v)
	assert.Equal(t, "spm", unit)
	v, unit = ride.Secondary()
	assert.Equal(t, 0.0, v)
	assert.Equal(t, "m", unit)
}

func TestActivateOnlyChangesInteractionCount(t *testing.T) {
	w := NewRunning("r1", createdAt, Coordinates{Lat: 1, Lng: 2}, 5, 25, 170)
	before := *w

	w.Activate()
	w.Activate()

	assert.Equal(t, 2, w.InteractionCount)
	before.InteractionCount = 2
	assert.Equal(t, before, *w)
}

func TestCoordinatesJSON(t *testing.T) {
	raw, err := json.Marshal(Coordinates{Lat: 39.5, Lng: -12.25})
	require.NoError(t, err)
	assert.JSONEq(t, `[39.5,-12.25]`, string(raw))

	var c Coordinates
	require.NoError(t, json.Unmarshal([]byte(`[1.5,2.5]`), &c))
	assert.Equal(t, Coordinates{Lat: 1.5, Lng: 2.5}, c)

	assert.Error(t, json.Unmarshal([]byte(`[1.5]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"lat":1}`), &c))
}

func TestKind(t *testing.T) {
	assert.True(t, KindRunning.Valid())
	assert.True(t, KindCycling.Valid())
	assert.False(t, Kind("swimming").Valid())
	assert.Equal(t, "Cycling", KindCycling.Title())
	assert.Equal(t, "", Kind("").Title())
}
