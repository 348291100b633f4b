package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordWorkoutLogged(t *testing.T) {
	before := testutil.ToFloat64(workoutsLogged.WithLabelValues("running"))
	RecordWorkoutLogged("running")
	require.Equal(t, before+1, testutil.ToFloat64(workoutsLogged.WithLabelValues("running")))
}

func TestSetStoredWorkouts(t *testing.T) {
	SetStoredWorkouts(3)
	require.Equal(t, 3.0, testutil.ToFloat64(storedWorkouts))
}

func TestRecordPersistenceFailure(t *testing.T) {
	before := testutil.ToFloat64(persistenceFailures.WithLabelValues("put"))
	RecordPersistenceFailure("put")
	require.Equal(t, before+1, testutil.ToFloat64(persistenceFailures.WithLabelValues("put")))
}
