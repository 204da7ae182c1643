package launcher

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRegisterAndNew(t *testing.T) {
	if err := Register("TestSolver", func(p Params, d Deps) (Launcher, error) {
		return &Mock{Params: p, Deps: d}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	l, err := New("testsolver", Params{}, Deps{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := l.(*Mock); !ok {
		t.Fatalf("expected *Mock got %T", l)
	}
	// Case-insensitive lookup.
	if _, err := New("TESTSOLVER", Params{}, Deps{}); err != nil {
		t.Fatalf("upper-case lookup: %v", err)
	}
}

func TestNewUnknownSolver(t *testing.T) {
	_, err := New("cplex", Params{}, Deps{})
	if !errors.Is(err, ErrUnknownSolver) {
		t.Fatalf("expected ErrUnknownSolver, got %v", err)
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Fatalf("error does not list solvers: %v", err)
	}
}

func TestParamsSegments(t *testing.T) {
	p := Params{
		Start:     time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2016, 1, 8, 0, 0, 0, 0, time.UTC),
		IntervalH: 24,
	}
	if got := p.Segments(); got != 7 {
		t.Fatalf("expected 7 segments got %d", got)
	}
}

func TestMockLaunch(t *testing.T) {
	m := &Mock{Res: Result{Runtime: 42 * time.Second}}
	res, err := m.Launch(context.Background())
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if res.Runtime != 42*time.Second {
		t.Fatalf("expected 42s got %v", res.Runtime)
	}
	if m.Launches() != 1 {
		t.Fatalf("expected one launch got %d", m.Launches())
	}
}

func TestMockLaunchError(t *testing.T) {
	boom := errors.New("engine exploded")
	m := &Mock{Err: boom}
	if _, err := m.Launch(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected launch error, got %v", err)
	}
}
