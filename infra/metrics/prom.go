package metrics

import (
	coremetrics "github.com/dongqi-wu/reisego/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Simulation runs last minutes to days; stage and interval solves seconds to
// hours. Buckets are sized accordingly.
var (
	runBuckets      = []float64{60, 300, 900, 1800, 3600, 7200, 14400, 28800, 57600}
	stageBuckets    = []float64{1, 5, 15, 60, 300, 900, 3600, 14400}
	intervalBuckets = []float64{1, 5, 15, 60, 300, 900, 1800, 3600}
)

// PromSink records run events in Prometheus metrics.
type PromSink struct {
	runs      *prometheus.CounterVec
	runtime   *prometheus.HistogramVec
	stages    *prometheus.HistogramVec
	intervals *prometheus.HistogramVec
}

// NewPromSink registers run metrics on the default Prometheus registerer.
// The Prometheus server is started separately from the configured port.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulation_runs_total",
		Help: "Total number of simulation runs by outcome",
	}, []string{"status", "solver"})
	runtime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simulation_run_duration_seconds",
		Help:    "Wall-clock runtime of completed simulation runs",
		Buckets: runBuckets,
	}, []string{"solver"})
	stages := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orchestration_stage_duration_seconds",
		Help:    "Duration of orchestration stages",
		Buckets: stageBuckets,
	}, []string{"stage"})
	intervals := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engine_interval_duration_seconds",
		Help:    "Solve time of individual engine intervals",
		Buckets: intervalBuckets,
	}, []string{"solver"})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(runtime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runtime = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(stages); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			stages = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(intervals); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			intervals = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, runtime: runtime, stages: stages, intervals: intervals}, nil
}

// RecordRun increments the outcome counter and, for completed runs, observes
// the runtime histogram.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.WithLabelValues(ev.Status, ev.Solver).Inc()
	if ev.Runtime > 0 {
		s.runtime.WithLabelValues(ev.Solver).Observe(ev.Runtime.Seconds())
	}
	return nil
}

// RecordStage observes one stage duration.
func (s *PromSink) RecordStage(ev coremetrics.StageEvent) error {
	s.stages.WithLabelValues(ev.Stage).Observe(ev.Seconds)
	return nil
}

// RecordInterval observes one engine interval solve.
func (s *PromSink) RecordInterval(ev coremetrics.IntervalEvent) error {
	s.intervals.WithLabelValues(ev.Solver).Observe(ev.Seconds)
	return nil
}
