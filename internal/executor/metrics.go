package executor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Task end states
const (
	StateCompleted = "completed"
	StateFailed    = "failed"
	StateSkipped   = "skipped"
)

// Metrics contains Prometheus collectors for chunk tasks.
// A nil *Metrics records nothing.
type Metrics struct {
	tasks         *prometheus.CounterVec
	taskDuration  prometheus.Histogram
	running       prometheus.Gauge
	droppedErrors prometheus.Counter
}

// NewMetrics creates executor metrics registered with reg.
// A nil registerer leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		tasks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gochunk_executor_tasks_total",
				Help: "Total number of chunk tasks by end state",
			},
			[]string{"state"},
		),

		taskDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gochunk_executor_task_duration_seconds",
				Help:    "Time spent running one chunk task",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),

		running: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gochunk_executor_running_tasks",
				Help: "Number of chunk tasks currently running",
			},
		),

		droppedErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gochunk_executor_dropped_errors_total",
				Help: "Operation errors discarded because another chunk failed first",
			},
		),
	}
}

// Collectors returns every collector, for callers registering them manually
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.tasks, m.taskDuration, m.running, m.droppedErrors}
}

// start marks a task as running. The returned func records its end state.
func (m *Metrics) start() func(err error) {
	if m == nil {
		return func(error) {}
	}

	m.running.Inc()
	start := time.Now()

	return func(err error) {
		m.running.Dec()
		m.taskDuration.Observe(time.Since(start).Seconds())

		state := StateCompleted
		if err != nil {
			state = StateFailed
		}
		m.tasks.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) skipped(n int64) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues(StateSkipped).Add(float64(n))
}

func (m *Metrics) dropped() {
	if m == nil {
		return
	}
	m.droppedErrors.Inc()
}
