package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/dongqi-wu/reisego/core/metrics"
)

func TestPromSinkRecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}

	ev := coremetrics.RunEvent{
		RunID:      "run-1",
		ScenarioID: "87",
		Solver:     "gurobi",
		Status:     "finished",
		Runtime:    90 * time.Minute,
		Time:       time.Now(),
	}
	if err := sink.RecordRun(ev); err != nil {
		t.Fatalf("record run: %v", err)
	}

	expected := `
# HELP simulation_runs_total Total number of simulation runs by outcome
# TYPE simulation_runs_total counter
simulation_runs_total{solver="gurobi",status="finished"} 1
`
	if err := testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.runtime); c == 0 {
		t.Errorf("runtime not recorded")
	}
}

func TestPromSinkSkipsRuntimeForFailedRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)
	if err := sink.RecordRun(coremetrics.RunEvent{Solver: "glpk", Status: "failed"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if c := testutil.CollectAndCount(sink.runtime); c != 0 {
		t.Errorf("runtime recorded for zero-duration failure")
	}
}

func TestPromSinkStagesAndIntervals(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)
	if err := sink.RecordStage(coremetrics.StageEvent{Stage: coremetrics.StageConvert, Seconds: 2.5}); err != nil {
		t.Fatalf("record stage: %v", err)
	}
	if err := sink.RecordInterval(coremetrics.IntervalEvent{Solver: "gurobi", Interval: 1, Seconds: 42}); err != nil {
		t.Fatalf("record interval: %v", err)
	}
	if c := testutil.CollectAndCount(sink.stages); c == 0 {
		t.Errorf("stage not recorded")
	}
	if c := testutil.CollectAndCount(sink.intervals); c == 0 {
		t.Errorf("interval not recorded")
	}
}

func TestPromSinkReregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// A second sink on the same registry reuses the existing collectors.
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}
}
