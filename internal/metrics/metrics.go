// Package metrics wires Prometheus instrumentation into a rematch.Matcher
// through its StepObserver extension hook, the way
// vitessio/vitess/go/stats/prometheusbackend registers vitess's own internal
// stats with a prometheus.Registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ashbyte/rematch"
)

// Collector holds the Prometheus metrics for one or more instrumented
// Matchers and the StepObserver that feeds them.
type Collector struct {
	steps     *prometheus.CounterVec
	matchTime *prometheus.HistogramVec
	namespace string
}

// New creates a Collector and registers its metrics on reg. namespace
// prefixes every metric name, mirroring PromBackend.buildPromName.
func New(reg prometheus.Registerer, namespace string) *Collector {
	c := &Collector{
		namespace: namespace,
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_steps_total",
			Help:      "Total number of bytecode dispatch-loop iterations executed.",
		}, []string{"op"}),
		matchTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Wall-clock duration of a single matchAt attempt.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	reg.MustRegister(c.steps, c.matchTime)
	return c
}

// Observer returns a rematch.StepObserver that increments the step counter
// for op, labeled by opcode name. Bind it to a Matcher via
// matcher.Observer = collector.Observer().
func (c *Collector) Observer() rematch.StepObserver {
	return func(op rematch.OpCode, patIdx, inputIdx int) {
		c.steps.WithLabelValues(op.String()).Inc()
	}
}

// TimeMatch runs fn (expected to be a single Find/LookingAt/Matches call)
// and records its duration against the match-duration histogram, labeled by
// op (e.g. "find", "lookingAt", "matches").
func (c *Collector) TimeMatch(op string, fn func() bool) bool {
	start := time.Now()
	result := fn()
	c.matchTime.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return result
}
