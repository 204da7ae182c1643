package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dongqi-wu/reisego/app"
	corelauncher "github.com/dongqi-wu/reisego/core/launcher"
	"github.com/dongqi-wu/reisego/core/model"
	"github.com/dongqi-wu/reisego/infra/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Long: `Run a simulation either from a scenario id, whose parameters come from the
scenario registry, or directly from the date, interval and input flags.`,
	RunE: runScenario,
}

var runFlags struct {
	scenarioID string
	startDate  string
	endDate    string
	interval   string
	inputDir   string
	outputDir  string
	solver     string
	threads    int
	juliaEnv   string
	extract    bool
	keepMatlab bool
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.scenarioID, "scenario-id", "", "scenario id; its registry row overrides the date, interval and input flags")
	f.StringVar(&runFlags.startDate, "start-date", "", `simulation start, "YYYY-MM-DD[ HH:MM:SS]"`)
	f.StringVar(&runFlags.endDate, "end-date", "", "simulation end; a date-only value spans the whole day")
	f.StringVar(&runFlags.interval, "interval", "", `solver interval, e.g. "24H"`)
	f.StringVar(&runFlags.inputDir, "input-dir", "", "directory holding the scenario input profiles")
	f.StringVar(&runFlags.outputDir, "output-dir", "", "directory results are staged into")
	f.StringVar(&runFlags.solver, "solver", "", "solver backend (default "+corelauncher.DefaultSolver+")")
	f.IntVar(&runFlags.threads, "threads", 0, "thread count forwarded to the engine")
	f.StringVar(&runFlags.juliaEnv, "julia-env", "", "julia project environment to activate")
	f.BoolVar(&runFlags.extract, "extract-data", false, "stage engine results after the run")
	f.BoolVar(&runFlags.keepMatlab, "keep-matlab", false, "keep intermediate engine files after extraction")
	rootCmd.AddCommand(runCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flush := setupMonitoring(cfg)
	defer flush()

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	_, err = svc.Run(ctx, model.RunParams{
		ScenarioID:  runFlags.scenarioID,
		StartDate:   runFlags.startDate,
		EndDate:     runFlags.endDate,
		Interval:    runFlags.interval,
		InputDir:    runFlags.inputDir,
		OutputDir:   runFlags.outputDir,
		Solver:      runFlags.solver,
		Threads:     runFlags.threads,
		JuliaEnv:    runFlags.juliaEnv,
		ExtractData: runFlags.extract,
		KeepMatlab:  runFlags.keepMatlab,
	})
	return err
}
