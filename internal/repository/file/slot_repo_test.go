package file

import (
	"context"
	"testing"

	"mapty/workout-tracker/internal/repository"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (repository.SlotRepository, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	repo, err := NewFsSlotRepository(fs, "/data")
	require.NoError(t, err)
	return repo, fs
}

func TestSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, fs := newRepo(t)

	_, err := repo.Get(ctx, "workouts")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "workouts", []byte(`[1]`)))
	require.NoError(t, repo.Put(ctx, "workouts", []byte(`[1,2]`)))

	got, err := repo.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	exists, err := afero.Exists(fs, "/data/workouts.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSlotDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.Delete(ctx, "workouts"))
	require.NoError(t, repo.Put(ctx, "workouts", []byte(`[]`)))
	require.NoError(t, repo.Delete(ctx, "workouts"))

	_, err := repo.Get(ctx, "workouts")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSlotRejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, repo.Put(ctx, key, []byte(`[]`)), key)
	}
}

func TestSlotHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo, _ := newRepo(t)

	_, err := repo.Get(ctx, "workouts")
	assert.ErrorIs(t, err, context.Canceled)
}
