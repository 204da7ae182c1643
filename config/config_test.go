package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	data := `paths:
  scenario_list: "/data/ScenarioList.csv"
  execute_list: "/data/ExecuteList.csv"
  output_dir: "/data/output"
engine:
  julia_bin: "/opt/julia/bin/julia"
  default_env: "/opt/reise"
registry:
  type: "http"
  conf:
    url: "https://scenarios.example.com"
tracking:
  type: "sqlite"
  conf:
    path: "/data/tracking.db"
metrics:
  sinks:
    - type: "nop"
notifier:
  broker: "tcp://localhost:1883"
  topic_prefix: "grid"
api:
  addr: ":9000"
  token: "s3cret"
`
	cfg, err := Load(writeConfig(t, "config.yaml", data))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"scenario_list", cfg.Paths.ScenarioList, "/data/ScenarioList.csv"},
		{"execute_list", cfg.Paths.ExecuteList, "/data/ExecuteList.csv"},
		{"output_dir", cfg.Paths.OutputDir, "/data/output"},
		{"julia_bin", cfg.Engine.JuliaBin, "/opt/julia/bin/julia"},
		{"default_env", cfg.Engine.DefaultEnv, "/opt/reise"},
		{"registry.type", cfg.Registry.Type, "http"},
		{"registry.url", cfg.Registry.Conf["url"], "https://scenarios.example.com"},
		{"tracking.type", cfg.Tracking.Type, "sqlite"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"notifier.broker", cfg.Notifier.Broker, "tcp://localhost:1883"},
		{"notifier.prefix", cfg.Notifier.TopicPrefix, "grid"},
		{"api.addr", cfg.API.Addr, ":9000"},
		{"api.token", cfg.API.Token, "s3cret"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", "{}\n"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Paths.ScenarioList != "/mnt/bes/pcm/ScenarioList.csv" {
		t.Errorf("scenario list default: %s", cfg.Paths.ScenarioList)
	}
	if cfg.Engine.JuliaBin != "julia" {
		t.Errorf("julia bin default: %s", cfg.Engine.JuliaBin)
	}
	if cfg.Registry.Type != "csv" {
		t.Errorf("registry default: %s", cfg.Registry.Type)
	}
	if cfg.Tracking.Type != "csv" {
		t.Errorf("tracking default: %s", cfg.Tracking.Type)
	}
	if cfg.Tracking.Conf["execute_list"] != "/mnt/bes/pcm/ExecuteList.csv" {
		t.Errorf("tracking execute list default: %v", cfg.Tracking.Conf)
	}
	if cfg.Convert.Type != "nop" || cfg.Extract.Type != "local" {
		t.Errorf("module defaults: %s %s", cfg.Convert.Type, cfg.Extract.Type)
	}
	if cfg.API.Addr != ":8080" {
		t.Errorf("api addr default: %s", cfg.API.Addr)
	}
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{"engine": {"julia_bin": "/usr/bin/julia"}}`))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Engine.JuliaBin != "/usr/bin/julia" {
		t.Errorf("julia bin: %s", cfg.Engine.JuliaBin)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("R_ENGINE__JULIA_BIN", "/env/julia")
	cfg, err := Load(writeConfig(t, "config.yaml", "engine:\n  julia_bin: \"/file/julia\"\n"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Engine.JuliaBin != "/env/julia" {
		t.Errorf("env override not applied: %s", cfg.Engine.JuliaBin)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load(writeConfig(t, "config.toml", "")); err == nil {
		t.Fatal("expected unsupported format error")
	}
}
