package registry

import "github.com/dongqi-wu/reisego/core/factory"

var storeRegistry = factory.NewRegistry[ScenarioStore]()

// RegisterStore adds a scenario store factory identified by name.
func RegisterStore(name string, f factory.Factory[ScenarioStore]) error {
	return storeRegistry.Register(name, f)
}

// NewStore creates a ScenarioStore from the provided configuration.
func NewStore(cfg factory.ModuleConfig) (ScenarioStore, error) {
	return storeRegistry.Create(cfg)
}
