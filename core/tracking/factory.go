package tracking

import "github.com/dongqi-wu/reisego/core/factory"

var trackerRegistry = factory.NewRegistry[Tracker]()

// RegisterTracker adds a tracker factory identified by name.
func RegisterTracker(name string, f factory.Factory[Tracker]) error {
	return trackerRegistry.Register(name, f)
}

// NewTracker creates a Tracker from the provided configuration.
func NewTracker(cfg factory.ModuleConfig) (Tracker, error) {
	return trackerRegistry.Create(cfg)
}
