package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"mapty/workout-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteSlotRepository(db)

	_, err = repo.Get(ctx, "workouts")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "workouts", []byte(`[{"id":"a"}]`)))
	require.NoError(t, repo.Put(ctx, "workouts", []byte(`[{"id":"b"}]`)))

	got, err := repo.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"b"}]`, string(got))

	require.NoError(t, repo.Delete(ctx, "workouts"))
	require.NoError(t, repo.Delete(ctx, "workouts"))
	_, err = repo.Get(ctx, "workouts")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSQLiteSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteSlotRepository(db)
	require.NoError(t, repo.Put(ctx, "a", []byte("1")))
	require.NoError(t, repo.Put(ctx, "b", []byte("2")))
	require.NoError(t, repo.Delete(ctx, "a"))

	got, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))
}
