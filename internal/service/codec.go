package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mapty/workout-tracker/internal/domain"
)

// ErrPersistenceDecode classifies unreadable slot contents. Hydrate swallows it.
var ErrPersistenceDecode = errors.New("persisted workouts could not be decoded")

// record is the persisted shape of a workout. Variant fields are pointers so
// that a missing field can be told apart from a stored zero.
type record struct {
	ID            string              `json:"id"`
	CreatedAt     time.Time           `json:"createdAt"`
	Coords        *domain.Coordinates `json:"coords"`
	Distance      *float64            `json:"distance"`
	Duration      *float64            `json:"duration"`
	Type          domain.Kind         `json:"type"`
	Cadence       *float64            `json:"cadence,omitempty"`
	Pace          *float64            `json:"pace,omitempty"`
	ElevationGain *float64            `json:"elevationGain,omitempty"`
	Speed         *float64            `json:"speed,omitempty"`
	Description   string              `json:"description"`
	Clicks        int                 `json:"clicks"`
}

func toRecord(w *domain.Workout) record {
	coords := w.Coords
	distance, duration := w.DistanceKm, w.DurationMin
	r := record{
		ID:          w.ID,
		CreatedAt:   w.CreatedAt,
		Coords:      &coords,
		Distance:    &distance,
		Duration:    &duration,
		Type:        w.Kind,
		Description: w.Description,
		Clicks:      w.InteractionCount,
	}
	switch w.Kind {
	case domain.KindRunning:
		cadence, pace := w.CadenceSpm, w.PaceMinPerKm
		r.Cadence, r.Pace = &cadence, &pace
	case domain.KindCycling:
		elevation, speed := w.ElevationGainM, w.SpeedKmPerH
		r.ElevationGain, r.Speed = &elevation, &speed
	}
	return r
}

// fromRecord restores a workout from stored data. Pace, speed and description
// are taken as stored, not recomputed.
func fromRecord(r record) (domain.Workout, error) {
	switch {
	case r.ID == "":
		return domain.Workout{}, errors.New("missing id")
	case r.CreatedAt.IsZero():
		return domain.Workout{}, fmt.Errorf("workout %s: missing createdAt", r.ID)
	case r.Coords == nil || !r.Coords.IsFinite():
		return domain.Workout{}, fmt.Errorf("workout %s: invalid coords", r.ID)
	case r.Distance == nil || r.Duration == nil || !allFinite(*r.Distance, *r.Duration) || !allPositive(*r.Distance, *r.Duration):
		return domain.Workout{}, fmt.Errorf("workout %s: invalid distance or duration", r.ID)
	case r.Description == "":
		return domain.Workout{}, fmt.Errorf("workout %s: missing description", r.ID)
	case r.Clicks < 0:
		return domain.Workout{}, fmt.Errorf("workout %s: negative clicks", r.ID)
	}

	w := domain.Workout{
		ID:               r.ID,
		CreatedAt:        r.CreatedAt,
		Coords:           *r.Coords,
		DistanceKm:       *r.Distance,
		DurationMin:      *r.Duration,
		Kind:             r.Type,
		Description:      r.Description,
		InteractionCount: r.Clicks,
	}
	switch r.Type {
	case domain.KindRunning:
		if r.Cadence == nil || r.Pace == nil || !allFinite(*r.Cadence, *r.Pace) {
			return domain.Workout{}, fmt.Errorf("workout %s: invalid running fields", r.ID)
		}
		w.CadenceSpm, w.PaceMinPerKm = *r.Cadence, *r.Pace
	case domain.KindCycling:
		if r.ElevationGain == nil || r.Speed == nil || !allFinite(*r.ElevationGain, *r.Speed) {
			return domain.Workout{}, fmt.Errorf("workout %s: invalid cycling fields", r.ID)
		}
		w.ElevationGainM, w.SpeedKmPerH = *r.ElevationGain, *r.Speed
	default:
		return domain.Workout{}, fmt.Errorf("workout %s: unknown type %q", r.ID, r.Type)
	}
	return w, nil
}

// encodeWorkouts serializes the ordered list as one JSON array.
func encodeWorkouts(workouts []*domain.Workout) ([]byte, error) {
	records := make([]record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, toRecord(w))
	}
	return json.Marshal(records)
}

// decodeWorkouts is all-or-nothing: one bad record rejects the whole blob.
func decodeWorkouts(data []byte) ([]domain.Workout, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceDecode, err)
	}
	seen := make(map[string]struct{}, len(records))
	workouts := make([]domain.Workout, 0, len(records))
	for _, r := range records {
		w, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceDecode, err)
		}
		if _, dup := seen[w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrPersistenceDecode, w.ID)
		}
		seen[w.ID] = struct{}{}
		workouts = append(workouts, w)
	}
	return workouts, nil
}
