package tracking

import (
	"github.com/dongqi-wu/reisego/auth"
	"github.com/dongqi-wu/reisego/core/factory"
	coretracking "github.com/dongqi-wu/reisego/core/tracking"
)

// init registers built-in tracker backends.
func init() {
	_ = coretracking.RegisterTracker("csv", func(conf map[string]any) (coretracking.Tracker, error) {
		var c struct {
			ExecuteList  string `json:"execute_list"`
			ScenarioList string `json:"scenario_list"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewCSVTracker(c.ExecuteList, c.ScenarioList), nil
	})

	_ = coretracking.RegisterTracker("sqlite", func(conf map[string]any) (coretracking.Tracker, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteTracker(c.Path)
	})

	_ = coretracking.RegisterTracker("http", func(conf map[string]any) (coretracking.Tracker, error) {
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
		return NewHTTPTracker(c.URL, creds)
	})
}
