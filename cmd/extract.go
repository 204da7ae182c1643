package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dongqi-wu/reisego/core/extract"
	"github.com/dongqi-wu/reisego/core/model"
	_ "github.com/dongqi-wu/reisego/infra/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Stage engine results from an earlier run",
	RunE:  runExtract,
}

var extractFlags struct {
	scenarioID string
	startDate  string
	endDate    string
	inputDir   string
	outputDir  string
	keepMatlab bool
}

func init() {
	f := extractCmd.Flags()
	f.StringVar(&extractFlags.scenarioID, "scenario-id", "", "scenario id recorded in the staging manifest")
	f.StringVar(&extractFlags.startDate, "start-date", "", `simulation start, "YYYY-MM-DD[ HH:MM:SS]"`)
	f.StringVar(&extractFlags.endDate, "end-date", "", "simulation end; a date-only value spans the whole day")
	f.StringVar(&extractFlags.inputDir, "input-dir", "", "directory the simulation ran from")
	f.StringVar(&extractFlags.outputDir, "output-dir", "", "directory results are staged into")
	f.BoolVar(&extractFlags.keepMatlab, "keep-matlab", false, "keep intermediate engine files")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if extractFlags.startDate == "" || extractFlags.endDate == "" || extractFlags.inputDir == "" {
		return fmt.Errorf("the following arguments are required: start-date, end-date, input-dir")
	}
	span := model.RunParams{StartDate: extractFlags.startDate, EndDate: extractFlags.endDate}
	start, end, err := span.Span()
	if err != nil {
		return err
	}
	outputDir := extractFlags.outputDir
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}

	extractor, err := extract.NewExtractor(cfg.Extract)
	if err != nil {
		return fmt.Errorf("extractor: %w", err)
	}
	return extractor.Extract(ctx, extract.Request{
		InputDir:        extractFlags.inputDir,
		Start:           start,
		End:             end,
		ScenarioID:      extractFlags.scenarioID,
		OutputDir:       outputDir,
		KeepEngineFiles: extractFlags.keepMatlab,
	})
}
