package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mapty/workout-tracker/internal/domain"
	"mapty/workout-tracker/internal/observability"
	"mapty/workout-tracker/internal/repository"

	"github.com/rs/zerolog/log"
)

// --- Error Definitions ---
var (
	ErrNotFound    = errors.New("workout not found")
	ErrDuplicateID = errors.New("workout id already stored")
)

const defaultPersistTimeout = 5 * time.Second

// Store holds the ordered workout list for the session and writes it through
// to a single persistence slot after every append.
//
// Store is not safe for concurrent use. App serializes access to it.
type Store struct {
	slot    repository.SlotRepository
	key     string
	timeout time.Duration

	workouts []*domain.Workout
	byID     map[string]*domain.Workout
}

// NewStore creates an empty store persisting under key. A zero timeout uses
// the default.
func NewStore(slot repository.SlotRepository, key string, timeout time.Duration) *Store {
	if key == "" {
		key = repository.DefaultSlotKey
	}
	if timeout <= 0 {
		timeout = defaultPersistTimeout
	}
	return &Store{
		slot:    slot,
		key:     key,
		timeout: timeout,
		byID:    make(map[string]*domain.Workout),
	}
}

// Append adds w at the end of the list and persists the whole list.
// A failed write is logged and counted; the in-memory append still stands.
func (s *Store) Append(ctx context.Context, w *domain.Workout) error {
	if w == nil {
		return errors.New("workout is required")
	}
	if _, exists := s.byID[w.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, w.ID)
	}
	stored := *w
	s.workouts = append(s.workouts, &stored)
	s.byID[stored.ID] = &stored

	observability.RecordWorkoutLogged(string(stored.Kind))
	observability.SetStoredWorkouts(len(s.workouts))

	s.persist(ctx)
	return nil
}

func (s *Store) persist(ctx context.Context) {
	data, err := encodeWorkouts(s.workouts)
	if err != nil {
		observability.RecordPersistenceFailure("encode")
		log.Error().Err(err).Msg("encode workouts")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.slot.Put(ctx, s.key, data); err != nil {
		observability.RecordPersistenceFailure("put")
		log.Error().Err(err).Str("key", s.key).Int("workouts", len(s.workouts)).Msg("persist workouts")
		return
	}
	log.Debug().Str("key", s.key).Int("workouts", len(s.workouts)).Int("bytes", len(data)).Msg("persisted workouts")
}

// List returns copies of the workouts, oldest first.
func (s *Store) List() []domain.Workout {
	out := make([]domain.Workout, len(s.workouts))
	for i, w := range s.workouts {
		out[i] = *w
	}
	return out
}

// Len is the number of stored workouts.
func (s *Store) Len() int {
	return len(s.workouts)
}

// FindByID returns a copy of the workout with the given id.
func (s *Store) FindByID(id string) (*domain.Workout, error) {
	w, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *w
	return &cp, nil
}

// Activate bumps the interaction count of a stored workout. The count is not
// written to the slot until the next Append.
func (s *Store) Activate(id string) (*domain.Workout, error) {
	w, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	w.Activate()
	cp := *w
	return &cp, nil
}

// Hydrate replaces the in-memory list with the slot contents and returns how
// many workouts were loaded. A missing, unreadable or malformed slot leaves
// the store empty; nothing is reported to the caller.
func (s *Store) Hydrate(ctx context.Context) int {
	s.workouts = nil
	s.byID = make(map[string]*domain.Workout)
	defer func() { observability.SetStoredWorkouts(len(s.workouts)) }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			observability.RecordHydration("empty")
			log.Info().Str("key", s.key).Msg("no stored workouts")
			return 0
		}
		observability.RecordHydration("error")
		observability.RecordPersistenceFailure("get")
		log.Warn().Err(err).Str("key", s.key).Msg("read stored workouts, starting empty")
		return 0
	}

	workouts, err := decodeWorkouts(data)
	if err != nil {
		observability.RecordHydration("corrupt")
		log.Warn().Err(err).Str("key", s.key).Msg("discarding stored workouts")
		return 0
	}

	for i := range workouts {
		w := workouts[i]
		s.workouts = append(s.workouts, &w)
		s.byID[w.ID] = &w
	}
	observability.RecordHydration("loaded")
	log.Info().Str("key", s.key).Int("workouts", len(s.workouts)).Msg("hydrated workouts")
	return len(s.workouts)
}

// Reset clears the list and erases the slot. The in-memory list is cleared
// even when the slot delete fails.
func (s *Store) Reset(ctx context.Context) error {
	s.workouts = nil
	s.byID = make(map[string]*domain.Workout)
	observability.SetStoredWorkouts(0)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.slot.Delete(ctx, s.key); err != nil {
		observability.RecordPersistenceFailure("delete")
		return fmt.Errorf("erase slot %q: %w", s.key, err)
	}
	log.Info().Str("key", s.key).Msg("workouts reset")
	return nil
}
