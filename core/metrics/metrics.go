package metrics

import "time"

// Orchestration stage names used in StageEvent.
const (
	StageConvert = "convert"
	StageLaunch  = "launch"
	StageExtract = "extract"
)

// RunEvent records the outcome of one orchestrated simulation run.
type RunEvent struct {
	RunID      string
	ScenarioID string
	Solver     string
	Status     string
	Runtime    time.Duration
	Time       time.Time
}

// MetricsSink records run outcomes for observability purposes.
type MetricsSink interface {
	RecordRun(ev RunEvent) error
}

// StageEvent captures the duration of one orchestration stage.
type StageEvent struct {
	ScenarioID string
	Stage      string
	Seconds    float64
	Time       time.Time
}

// StageRecorder records stage durations.
type StageRecorder interface {
	RecordStage(ev StageEvent) error
}

// IntervalEvent captures one engine interval solve.
type IntervalEvent struct {
	ScenarioID string
	Solver     string
	Interval   int
	Seconds    float64
	Time       time.Time
}

// IntervalRecorder records per-interval solve times.
type IntervalRecorder interface {
	RecordInterval(ev IntervalEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error           { return nil }
func (NopSink) RecordStage(StageEvent) error       { return nil }
func (NopSink) RecordInterval(IntervalEvent) error { return nil }
