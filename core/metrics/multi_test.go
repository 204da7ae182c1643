package metrics

import "testing"

type recordSink struct {
	runs   int
	stages int
}

func (r *recordSink) RecordRun(RunEvent) error {
	r.runs++
	return nil
}

func (r *recordSink) RecordStage(StageEvent) error {
	r.stages++
	return nil
}

// runOnlySink records runs but not stages.
type runOnlySink struct {
	runs int
}

func (r *runOnlySink) RecordRun(RunEvent) error {
	r.runs++
	return nil
}

func TestMultiSinkForwards(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordRun(RunEvent{Status: "finished"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordStage(StageEvent{Stage: StageLaunch}); err != nil {
		t.Fatalf("record stage: %v", err)
	}
	if s1.runs != 1 || s2.runs != 1 || s1.stages != 1 || s2.stages != 1 {
		t.Fatalf("events not forwarded: %+v %+v", s1, s2)
	}
}

func TestMultiSinkSkipsNonRecorders(t *testing.T) {
	plain := &runOnlySink{}
	m := NewMultiSink(plain)
	if err := m.RecordStage(StageEvent{Stage: StageConvert}); err != nil {
		t.Fatalf("record stage: %v", err)
	}
	if err := m.RecordRun(RunEvent{}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if plain.runs != 1 {
		t.Fatalf("run not forwarded: %+v", plain)
	}
}
