// Package notify publishes run lifecycle events to external listeners.
package notify

import "context"

// Notifier announces run status transitions and engine progress. Failures
// to notify never fail the run; callers log and move on.
type Notifier interface {
	NotifyStatus(ctx context.Context, scenarioID, status string) error
	NotifyProgress(ctx context.Context, scenarioID string, interval, total int) error
	Close() error
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) NotifyStatus(context.Context, string, string) error     { return nil }
func (NopNotifier) NotifyProgress(context.Context, string, int, int) error { return nil }
func (NopNotifier) Close() error                                           { return nil }
