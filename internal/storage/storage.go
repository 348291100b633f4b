// Package storage selects and opens the persistence slot backend.
package storage

import (
	"context"
	"fmt"

	"mapty/workout-tracker/internal/config"
	"mapty/workout-tracker/internal/repository"
	"mapty/workout-tracker/internal/repository/file"
	"mapty/workout-tracker/internal/repository/mongo"
	"mapty/workout-tracker/internal/repository/postgres"
	"mapty/workout-tracker/internal/repository/sqlite"

	"github.com/rs/zerolog/log"
)

// CloseFunc releases whatever connection a backend holds.
type CloseFunc func() error

func noopClose() error { return nil }

// OpenSlot opens the slot repository named by cfg.Persistence.Backend.
func OpenSlot(ctx context.Context, cfg config.Config) (repository.SlotRepository, CloseFunc, error) {
	backend := cfg.Persistence.Backend
	log.Info().Str("backend", backend).Str("key", cfg.Persistence.Key).Msg("opening persistence slot")

	switch backend {
	case config.BackendFile:
		repo, err := file.NewFileSlotRepository(cfg.File.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, noopClose, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %q: %w", cfg.SQLite.Path, err)
		}
		return sqlite.NewSQLiteSlotRepository(db), db.Close, nil

	case config.BackendMongo:
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Database.Name)
		if err := mongo.EnsureSlotIndexes(ctx, mongo.SlotCollection(db)); err != nil {
			log.Warn().Err(err).Msg("failed to create slot indexes")
		}
		return mongo.NewMongoSlotRepository(db), func() error { return mongo.DisconnectDB(client) }, nil

	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewRepository(pool), func() error { pool.Close(); return nil }, nil

	case config.BackendS3:
		repo, err := NewS3SlotRepository(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return repo, noopClose, nil
	}
	return nil, nil, fmt.Errorf("unknown persistence backend %q", backend)
}
