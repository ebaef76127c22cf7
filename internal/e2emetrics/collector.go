// Package e2emetrics exposes E2E Check/Protect outcomes as Prometheus
// metrics for `e2ectl serve`.
package e2emetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "e2e"
	subsystem = "protection"
)

// Label names for E2E metrics.
const (
	labelProfile = "profile"
	labelStatus  = "status"
	labelKind    = "kind"
)

// Collector holds all E2E Prometheus metrics.
//
//   - CheckOutcomes tracks every Status a Check call has ever returned,
//     labeled by the named profile instance and the status itself —
//     this is the signal an operator alerts on (a jump in CrcError or
//     WrongSequence means something upstream is corrupting or dropping
//     messages).
//   - ProtectErrors and ConstructErrors track precondition and
//     construction-time failures, which should never fire in a correctly
//     wired deployment and are a configuration-drift signal when they do.
type Collector struct {
	// CheckOutcomes counts every Check call by its resulting Status.
	CheckOutcomes *prometheus.CounterVec

	// ProtectErrors counts Protect calls that returned a LengthError.
	ProtectErrors *prometheus.CounterVec

	// ConstructErrors counts profile construction failures, labeled by
	// the ConfigErrorKind.
	ConstructErrors *prometheus.CounterVec
}

// NewCollector creates a Collector with all E2E metrics registered
// against the provided prometheus.Registerer. If reg is nil,
// prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.CheckOutcomes,
		c.ProtectErrors,
		c.ConstructErrors,
	)

	return c
}

func newMetrics() *Collector {
	outcomeLabels := []string{labelProfile, labelStatus}
	kindLabels := []string{labelProfile, labelKind}

	return &Collector{
		CheckOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "check_outcomes_total",
			Help:      "Total Check calls by resulting status, per named profile instance.",
		}, outcomeLabels),

		ProtectErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "protect_errors_total",
			Help:      "Total Protect calls rejected with a LengthError, per named profile instance.",
		}, []string{labelProfile}),

		ConstructErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "construct_errors_total",
			Help:      "Total profile construction failures, by ConfigErrorKind.",
		}, kindLabels),
	}
}

// RecordCheck increments the outcome counter for a named profile
// instance's Check result.
func (c *Collector) RecordCheck(profile, status string) {
	c.CheckOutcomes.WithLabelValues(profile, status).Inc()
}

// RecordProtectError increments the Protect-error counter for a named
// profile instance.
func (c *Collector) RecordProtectError(profile string) {
	c.ProtectErrors.WithLabelValues(profile).Inc()
}

// RecordConstructError increments the construction-error counter for a
// named profile instance and ConfigErrorKind.
func (c *Collector) RecordConstructError(profile, kind string) {
	c.ConstructErrors.WithLabelValues(profile, kind).Inc()
}
