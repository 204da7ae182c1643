package registry

import (
	"github.com/dongqi-wu/reisego/auth"
	"github.com/dongqi-wu/reisego/core/factory"
	coreregistry "github.com/dongqi-wu/reisego/core/registry"
)

// init registers built-in scenario store backends.
func init() {
	_ = coreregistry.RegisterStore("csv", func(conf map[string]any) (coreregistry.ScenarioStore, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewCSVStore(c.Path)
	})

	_ = coreregistry.RegisterStore("xlsx", func(conf map[string]any) (coreregistry.ScenarioStore, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewXLSXStore(c.Path)
	})

	_ = coreregistry.RegisterStore("http", func(conf map[string]any) (coreregistry.ScenarioStore, error) {
		var c struct {
			URL  string    `json:"url"`
			Auth auth.Conf `json:"auth"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		var creds *auth.ClientCred
		if c.Auth.Enabled() {
			creds = auth.NewClientCred(c.Auth)
		}
		return NewHTTPStore(c.URL, creds)
	})
}
