package metrics

import (
	"testing"

	"github.com/dongqi-wu/reisego/core/factory"
)

func init() {
	_ = RegisterMetricsSink("stub", func(map[string]any) (MetricsSink, error) {
		return &recordSink{}, nil
	})
}

func TestNewMetricsSinkEmpty(t *testing.T) {
	s, err := NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if _, ok := s.(NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
}

func TestNewMetricsSinkSingle(t *testing.T) {
	s, err := NewMetricsSink([]factory.ModuleConfig{{Type: "stub"}})
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if _, ok := s.(*recordSink); !ok {
		t.Fatalf("expected *recordSink, got %T", s)
	}
}

func TestNewMetricsSinkMulti(t *testing.T) {
	s, err := NewMetricsSink([]factory.ModuleConfig{{Type: "stub"}, {Type: "stub"}})
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	m, ok := s.(*MultiSink)
	if !ok {
		t.Fatalf("expected *MultiSink, got %T", s)
	}
	if len(m.Sinks) != 2 {
		t.Fatalf("expected 2 sub-sinks, got %d", len(m.Sinks))
	}
}

func TestNewMetricsSinkUnknown(t *testing.T) {
	if _, err := NewMetricsSink([]factory.ModuleConfig{{Type: "carrier-pigeon"}}); err == nil {
		t.Fatal("expected unknown sink error")
	}
}
