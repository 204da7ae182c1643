package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dongqi-wu/reisego/config"
	"github.com/dongqi-wu/reisego/core/registry"
	"github.com/dongqi-wu/reisego/core/tracking"
	_ "github.com/dongqi-wu/reisego/infra/registry"
	_ "github.com/dongqi-wu/reisego/infra/tracking"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Inspect the scenario registry",
}

var scenariosLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List scenarios with their tracking state",
	RunE:  runScenariosLs,
}

var scenariosShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenariosShow,
}

func init() {
	scenariosCmd.AddCommand(scenariosLsCmd)
	scenariosCmd.AddCommand(scenariosShowCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func openStores(cfg *config.Config) (registry.ScenarioStore, tracking.Tracker, error) {
	store, err := registry.NewStore(cfg.Registry)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario store: %w", err)
	}
	tracker, err := tracking.NewTracker(cfg.Tracking)
	if err != nil {
		return nil, nil, fmt.Errorf("tracker: %w", err)
	}
	return store, tracker, nil
}

func runScenariosLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, tracker, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	ctx := cmd.Context()
	scenarios, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, sc := range scenarios {
		// Tracking state decorates the listing; rows without it still list.
		status, _ := tracker.Status(ctx, sc.ID)
		runtime, _ := tracker.Runtime(ctx, sc.ID)
		fmt.Printf("%s\t%s\t%s\t%s\n", sc.ID, sc.Name, status, runtime)
	}
	return nil
}

func runScenariosShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, tracker, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	ctx := cmd.Context()
	sc, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}
	status, _ := tracker.Status(ctx, sc.ID)
	runtime, _ := tracker.Runtime(ctx, sc.ID)

	fmt.Printf("id:         %s\n", sc.ID)
	if sc.Name != "" {
		fmt.Printf("name:       %s\n", sc.Name)
	}
	fmt.Printf("start date: %s\n", sc.StartDate)
	fmt.Printf("end date:   %s\n", sc.EndDate)
	fmt.Printf("interval:   %s\n", sc.Interval)
	fmt.Printf("input dir:  %s\n", sc.InputDir)
	if status != "" {
		fmt.Printf("status:     %s\n", status)
	}
	if runtime != "" {
		fmt.Printf("runtime:    %s\n", runtime)
	}
	return nil
}
