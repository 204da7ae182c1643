package tracking

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dongqi-wu/reisego/core/factory"
	coretracking "github.com/dongqi-wu/reisego/core/tracking"
)

func newSQLite(t *testing.T) *SQLiteTracker {
	t.Helper()
	tr, err := NewSQLiteTracker(filepath.Join(t.TempDir(), "tracking.db"))
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestSQLiteTrackerRoundTrip(t *testing.T) {
	tr := newSQLite(t)
	ctx := context.Background()
	if err := tr.UpdateStatus(ctx, "87", "running"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, err := tr.Status(ctx, "87")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if got != "running" {
		t.Fatalf("expected running got %q", got)
	}
}

func TestSQLiteTrackerIndependentColumns(t *testing.T) {
	tr := newSQLite(t)
	ctx := context.Background()
	if err := tr.UpdateStatus(ctx, "87", "finished"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := tr.UpdateRuntime(ctx, "87", "10:25"); err != nil {
		t.Fatalf("update runtime: %v", err)
	}
	status, err := tr.Status(ctx, "87")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	runtime, err := tr.Runtime(ctx, "87")
	if err != nil {
		t.Fatalf("runtime: %v", err)
	}
	if status != "finished" || runtime != "10:25" {
		t.Fatalf("columns clobbered: status=%q runtime=%q", status, runtime)
	}
}

func TestSQLiteTrackerAbsent(t *testing.T) {
	tr := newSQLite(t)
	got, err := tr.Status(context.Background(), "999")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty status got %q", got)
	}
}

func TestTrackerFactorySQLite(t *testing.T) {
	tr, err := coretracking.NewTracker(factory.ModuleConfig{
		Type: "sqlite",
		Conf: map[string]any{"path": filepath.Join(t.TempDir(), "tracking.db")},
	})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	defer tr.Close()
	if _, ok := tr.(*SQLiteTracker); !ok {
		t.Fatalf("expected *SQLiteTracker got %T", tr)
	}
}
