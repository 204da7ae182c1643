package tracking

import (
	"context"
	"fmt"
	"time"
)

// Tracker records run state in the external tracking stores: the execute list
// carries the status column, the scenario list carries the runtime column.
// Rows are addressed by scenario id; updates touch a single column and the
// last writer wins.
type Tracker interface {
	UpdateStatus(ctx context.Context, scenarioID, status string) error
	UpdateRuntime(ctx context.Context, scenarioID, runtime string) error
	// Status returns the recorded status, or "" when the id has no row.
	Status(ctx context.Context, scenarioID string) (string, error)
	// Runtime returns the recorded runtime string, or "" when absent.
	Runtime(ctx context.Context, scenarioID string) (string, error)
	Close() error
}

// SecToHMS splits a second count into hours, minutes and seconds.
func SecToHMS(seconds int) (h, m, s int) {
	h = seconds / 3600
	m = (seconds % 3600) / 60
	s = seconds % 60
	return h, m, s
}

// FormatRuntime renders a wall-clock runtime the way the scenario list stores
// it: hours unpadded, minutes zero-padded, seconds dropped.
func FormatRuntime(d time.Duration) string {
	h, m, _ := SecToHMS(int(d.Seconds()))
	return fmt.Sprintf("%d:%02d", h, m)
}
