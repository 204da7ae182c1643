package launcher

import (
	"context"
	"sync/atomic"
	"time"
)

// Mock is a canned launcher for tests and dry runs. It sleeps for Delay,
// publishes one progress event per segment and returns Res.
type Mock struct {
	Params Params
	Deps   Deps
	Res    Result
	Err    error
	Delay  time.Duration

	launches atomic.Int32
}

// Launch implements Launcher.
func (m *Mock) Launch(ctx context.Context) (Result, error) {
	m.launches.Add(1)
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	if m.Err != nil {
		return Result{}, m.Err
	}
	if m.Deps.Progress != nil {
		total := m.Params.Segments()
		for i := 1; i <= total; i++ {
			m.Deps.Progress.Publish(Progress{
				ScenarioID: m.Params.ScenarioID,
				Interval:   i,
				Total:      total,
			})
		}
	}
	return m.Res, nil
}

// Launches reports how many times Launch ran.
func (m *Mock) Launches() int {
	return int(m.launches.Load())
}
