package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dongqi-wu/reisego/config"
	"github.com/dongqi-wu/reisego/core/monitoring"
	"github.com/dongqi-wu/reisego/infra/logger"
	inframonitoring "github.com/dongqi-wu/reisego/infra/monitoring"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "reisego",
	Short: "Power grid simulation orchestrator for the REISE engine",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (built-in defaults apply when omitted)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configured file, or falls back to the built-in
// defaults so the tool works without any configuration at all.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

// setupMonitoring installs the sentry monitor and returns the flush function
// to defer.
func setupMonitoring(cfg *config.Config) func() {
	mon, err := inframonitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		logger.New("main").Warnf("sentry init: %v", err)
		return func() {}
	}
	monitoring.Init(mon)
	return func() { monitoring.Flush(2 * time.Second) }
}
