// Package metrics exposes Prometheus counters and histograms for the
// Prover and Verifier processes, grounded on the MetricsCollector
// pattern in the retrieved corpus (promauto.NewCounter/NewGauge over a
// struct of named instruments). Metrics are additive to spec.md: its
// Non-goals never mention observability, so this is ambient stack, not
// a reinstated feature.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verifier holds the Verifier process's round-level instruments.
type Verifier struct {
	RoundsTotal    prometheus.Counter
	RoundsAccepted prometheus.Counter
	RoundsRejected prometheus.Counter
	Aborts         prometheus.Counter
	RoundDuration  prometheus.Histogram
}

// NewVerifier registers a fresh set of Verifier instruments against
// reg. Pass prometheus.NewRegistry() for an isolated registry (tests,
// or a process that wants its own /metrics namespace).
func NewVerifier(reg prometheus.Registerer) *Verifier {
	factory := promauto.With(reg)
	return &Verifier{
		RoundsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "hamcycle_verifier_rounds_total",
			Help: "Total number of rounds run by the verifier.",
		}),
		RoundsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "hamcycle_verifier_rounds_accepted_total",
			Help: "Number of rounds whose decommitment validated.",
		}),
		RoundsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "hamcycle_verifier_rounds_rejected_total",
			Help: "Number of rounds whose decommitment was a soft reject.",
		}),
		Aborts: factory.NewCounter(prometheus.CounterOpts{
			Name: "hamcycle_verifier_aborts_total",
			Help: "Number of fatal protocol or I/O aborts.",
		}),
		RoundDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hamcycle_verifier_round_duration_seconds",
			Help:    "Wall-clock duration of a single verifier round.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordRound records the outcome and duration of one completed round.
func (v *Verifier) RecordRound(accepted bool, d time.Duration) {
	v.RoundsTotal.Inc()
	if accepted {
		v.RoundsAccepted.Inc()
	} else {
		v.RoundsRejected.Inc()
	}
	v.RoundDuration.Observe(d.Seconds())
}

// Prover holds the Prover process's round-level instruments. The
// Prover never learns a verdict (only the Verifier does), so it can
// only report rounds served and fatal aborts.
type Prover struct {
	RoundsServed  prometheus.Counter
	Aborts        prometheus.Counter
	RoundDuration prometheus.Histogram
}

// NewProver registers a fresh set of Prover instruments against reg.
func NewProver(reg prometheus.Registerer) *Prover {
	factory := promauto.With(reg)
	return &Prover{
		RoundsServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "hamcycle_prover_rounds_served_total",
			Help: "Total number of rounds served by the prover.",
		}),
		Aborts: factory.NewCounter(prometheus.CounterOpts{
			Name: "hamcycle_prover_aborts_total",
			Help: "Number of fatal protocol or I/O aborts.",
		}),
		RoundDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hamcycle_prover_round_duration_seconds",
			Help:    "Wall-clock duration of a single prover round.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordRound records the duration of one completed round.
func (p *Prover) RecordRound(d time.Duration) {
	p.RoundsServed.Inc()
	p.RoundDuration.Observe(d.Seconds())
}
