package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dongqi-wu/reisego/api"
	"github.com/dongqi-wu/reisego/infra/logger"
	inframetrics "github.com/dongqi-wu/reisego/infra/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only scenario status API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, tracker, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	if port := cfg.Metrics.PrometheusPort; port != "" {
		go func() {
			if err := inframetrics.StartPromServer(ctx, ":"+port); err != nil {
				logger.New("serve").Errorf("prom server: %v", err)
			}
		}()
	}
	return api.NewServer(cfg.API, store, tracker).Run(ctx)
}
