package materialize

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

var (
	materializeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fabrix_env_materialize_duration_seconds",
			Help:    "Duration of env materialization runs in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"app", "environment", "status"},
	)

	materializeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fabrix_env_materialize_total",
			Help: "Total number of env materialization runs",
		},
		[]string{"app", "environment", "status"},
	)

	missingSecretsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fabrix_env_missing_secrets_total",
			Help: "Total number of unresolvable secret references encountered",
		},
		[]string{"app"},
	)

	generatedSecretsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fabrix_env_generated_secrets_total",
			Help: "Total number of secret values generated for missing references",
		},
		[]string{"app"},
	)

	envKeysWritten = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fabrix_env_keys_written",
			Help: "Number of keys in the most recently written .env file",
		},
		[]string{"app"},
	)
)

// recordMaterialization records the outcome of a materialization run.
func recordMaterialization(app, environment, status string, elapsed time.Duration) {
	labels := prometheus.Labels{
		"app":         app,
		"environment": environment,
		"status":      status,
	}
	materializeDuration.With(labels).Observe(elapsed.Seconds())
	materializeTotal.With(labels).Inc()
}

// recordMissingSecrets counts unresolvable references in a failed run.
func recordMissingSecrets(app string, count int) {
	missingSecretsTotal.With(prometheus.Labels{"app": app}).Add(float64(count))
}

// recordGeneratedSecrets counts values generated by a forced run.
func recordGeneratedSecrets(app string, count int) {
	generatedSecretsTotal.With(prometheus.Labels{"app": app}).Add(float64(count))
}

// recordKeysWritten records the size of the written env file.
func recordKeysWritten(app string, count int) {
	envKeysWritten.With(prometheus.Labels{"app": app}).Set(float64(count))
}
