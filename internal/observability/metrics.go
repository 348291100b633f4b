package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "store",
		Name:      "workouts_logged_total",
		Help:      "Workouts appended to the store, by kind.",
	}, []string{"kind"})
	invalidInputs = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "factory",
		Name:      "invalid_inputs_total",
		Help:      "Form submissions rejected by validation.",
	})
	persistenceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "failures_total",
		Help:      "Failed persistence slot operations, by operation.",
	}, []string{"op"})
	hydrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "hydrations_total",
		Help:      "Store hydrations at startup, by outcome (loaded, empty, corrupt, error).",
	}, []string{"outcome"})
	storedWorkouts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_tracker",
		Subsystem: "store",
		Name:      "workouts",
		Help:      "Workouts currently held in memory.",
	})
)

func init() {
	prometheus.MustRegister(workoutsLogged, invalidInputs, persistenceFailures, hydrations, storedWorkouts)
}

// RecordWorkoutLogged counts one appended workout.
func RecordWorkoutLogged(kind string) {
	workoutsLogged.WithLabelValues(kind).Inc()
}

// RecordInvalidInput counts one rejected submission.
func RecordInvalidInput() {
	invalidInputs.Inc()
}

// RecordPersistenceFailure counts a failed get/put/delete against the slot.
func RecordPersistenceFailure(op string) {
	persistenceFailures.WithLabelValues(op).Inc()
}

// RecordHydration counts one hydration outcome.
func RecordHydration(outcome string) {
	hydrations.WithLabelValues(outcome).Inc()
}

// SetStoredWorkouts tracks the in-memory store size.
func SetStoredWorkouts(n int) {
	storedWorkouts.Set(float64(n))
}
