// Package metrics holds the Prometheus instruments of the identity service.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dtroode/identity-server/internal/model"
)

const (
	OutcomeSuccess            = "success"
	OutcomeDuplicateIdentity  = "duplicate_identity"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeNotFound           = "not_found"
	OutcomeInvalidOTP         = "invalid_otp"
	OutcomeInvalidSession     = "invalid_session"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeStorageFailure     = "storage_failure"
	OutcomeError              = "error"
)

// Metrics records the outcome and latency of identity operations.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New registers the instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identity_operations_total",
				Help: "Total number of identity operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "identity_operation_duration_seconds",
				Help:    "Duration of identity operations",
				Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
			},
			[]string{"operation"},
		),
	}
}

// Observe records one finished operation that started at started.
func (m *Metrics) Observe(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	m.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

// Outcome maps err to a bounded label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, model.ErrDuplicateIdentity):
		return OutcomeDuplicateIdentity
	case errors.Is(err, model.ErrInvalidCredentials):
		return OutcomeInvalidCredentials
	case errors.Is(err, model.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, model.ErrInvalidOTP):
		return OutcomeInvalidOTP
	case errors.Is(err, model.ErrInvalidSession):
		return OutcomeInvalidSession
	case errors.Is(err, model.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, model.ErrStorageFailure):
		return OutcomeStorageFailure
	default:
		return OutcomeError
	}
}
