// Package factory provides a small generic registry used to instantiate
// pluggable backends from configuration. Backends are defined by a type
// string and a map of raw settings. Factories decode the settings into typed
// structs and return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[tracking.Tracker]()
//	reg.Register("csv", func(conf map[string]any) (tracking.Tracker, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return tracking.NewCSVTracker(c.Path)
//	})
//	tr, err := reg.Create(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": "ExecuteList.csv"}})
package factory
