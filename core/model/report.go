package model

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IntervalTiming is one interval solve reported by the engine.
type IntervalTiming struct {
	Interval int     `json:"interval"`
	Seconds  float64 `json:"seconds"`
}

// RunReport summarizes a completed launch. It is written next to the staged
// results and fed to the metrics sinks.
type RunReport struct {
	RunID      string           `json:"run_id"`
	ScenarioID string           `json:"scenario_id,omitempty"`
	Solver     string           `json:"solver"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Runtime    time.Duration    `json:"runtime_ns"`
	Intervals  []IntervalTiming `json:"intervals,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// TimingSummary aggregates per-interval solve times.
type TimingSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean_seconds"`
	StdDev float64 `json:"stddev_seconds"`
	Max    float64 `json:"max_seconds"`
	Total  float64 `json:"total_seconds"`
}

// TimingSummary computes summary statistics over the interval timings.
// A report without timings yields the zero summary.
func (r RunReport) TimingSummary() TimingSummary {
	if len(r.Intervals) == 0 {
		return TimingSummary{}
	}
	xs := make([]float64, len(r.Intervals))
	for i, iv := range r.Intervals {
		xs[i] = iv.Seconds
	}
	s := TimingSummary{
		Count: len(xs),
		Mean:  stat.Mean(xs, nil),
		Max:   floats.Max(xs),
		Total: floats.Sum(xs),
	}
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	return s
}
