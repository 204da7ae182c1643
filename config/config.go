package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dongqi-wu/reisego/core/factory"
	"github.com/dongqi-wu/reisego/core/metrics"
	"github.com/dongqi-wu/reisego/infra/notify"
)

type Config struct {
	Paths    PathsConfig          `json:"paths"`
	Engine   EngineConfig         `json:"engine"`
	Registry factory.ModuleConfig `json:"registry"`
	Tracking factory.ModuleConfig `json:"tracking"`
	Convert  factory.ModuleConfig `json:"convert"`
	Extract  factory.ModuleConfig `json:"extract"`
	Metrics  metrics.Config       `json:"metrics"`
	Notifier notify.Config        `json:"notifier"`
	Sentry   SentryConfig         `json:"sentry"`
	API      APIConfig            `json:"api"`
}

// Load reads the file at path, applies R_-prefixed environment overrides and
// fills defaults. Format follows the file extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("R_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "r_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied, used when no
// config file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills the sections and wires the unset module backends to the
// flat-file pipeline locations.
func (c *Config) SetDefaults() {
	c.Paths.SetDefaults()
	c.Engine.SetDefaults()
	c.API.SetDefaults()
	c.Notifier.SetDefaults()

	if c.Registry.Type == "" {
		c.Registry = factory.ModuleConfig{
			Type: "csv",
			Conf: map[string]any{"path": c.Paths.ScenarioList},
		}
	}
	if c.Tracking.Type == "" {
		c.Tracking = factory.ModuleConfig{
			Type: "csv",
			Conf: map[string]any{
				"execute_list":  c.Paths.ExecuteList,
				"scenario_list": c.Paths.ScenarioList,
			},
		}
	}
	if c.Convert.Type == "" {
		c.Convert = factory.ModuleConfig{Type: "nop"}
	}
	if c.Extract.Type == "" {
		c.Extract = factory.ModuleConfig{Type: "local"}
	}
}

// Validate checks mandatory fields across sections.
func (c *Config) Validate() error {
	if c.Paths.ScenarioList == "" {
		return fmt.Errorf("paths.scenario_list is required")
	}
	if c.Paths.ExecuteList == "" {
		return fmt.Errorf("paths.execute_list is required")
	}
	if c.Engine.JuliaBin == "" {
		return fmt.Errorf("engine.julia_bin is required")
	}
	return nil
}
