package scenarios

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dongqi-wu/reisego/app"
	"github.com/dongqi-wu/reisego/config"
	infratracking "github.com/dongqi-wu/reisego/infra/tracking"
)

// RunScenario drives one drill through a real service wired over csv
// stores in a temp dir and checks the visible outcome: the run error,
// the tracking columns and the staged result files.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()

	dir := t.TempDir()
	inputDir := filepath.Join(dir, "input")
	outputDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("input dir: %v", err)
	}

	var scen strings.Builder
	scen.WriteString("id,name,status,interval,start_date,end_date,input_dir,runtime\n")
	var exec strings.Builder
	exec.WriteString("id,status\n")
	for _, row := range sc.Rows {
		fmt.Fprintf(&scen, "%s,%s,created,%s,%s,%s,%s,\n",
			row.ID, row.Name, row.Interval, row.StartDate, row.EndDate, inputDir)
		fmt.Fprintf(&exec, "%s,created\n", row.ID)
	}
	scenarioList := filepath.Join(dir, "ScenarioList.csv")
	executeList := filepath.Join(dir, "ExecuteList.csv")
	if err := os.WriteFile(scenarioList, []byte(scen.String()), 0o644); err != nil {
		t.Fatalf("write scenario list: %v", err)
	}
	if err := os.WriteFile(executeList, []byte(exec.String()), 0o644); err != nil {
		t.Fatalf("write execute list: %v", err)
	}

	if sc.EngineResults > 0 {
		engineDir := filepath.Join(inputDir, "output")
		if err := os.MkdirAll(engineDir, 0o755); err != nil {
			t.Fatalf("engine output dir: %v", err)
		}
		for i := 0; i < sc.EngineResults; i++ {
			name := filepath.Join(engineDir, fmt.Sprintf("result_%d.mat", i))
			if err := os.WriteFile(name, []byte("mat"), 0o644); err != nil {
				t.Fatalf("seed %s: %v", name, err)
			}
		}
	}

	cfg := &config.Config{}
	cfg.Paths.ScenarioList = scenarioList
	cfg.Paths.ExecuteList = executeList
	cfg.Paths.OutputDir = outputDir
	cfg.SetDefaults()

	svc, err := app.New(cfg)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	_, runErr := svc.Run(context.Background(), sc.Run.ToParams(inputDir))
	if sc.Expected.Error == "" {
		if runErr != nil {
			t.Fatalf("run: %v", runErr)
		}
	} else if runErr == nil || !strings.Contains(runErr.Error(), sc.Expected.Error) {
		t.Fatalf("run error %v, want substring %q", runErr, sc.Expected.Error)
	}

	tracker := infratracking.NewCSVTracker(executeList, scenarioList)
	if want := sc.Expected.Status; want != "" {
		got, err := tracker.Status(context.Background(), sc.Run.ScenarioID)
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if got != want {
			t.Errorf("status %q, want %q", got, want)
		}
	}
	if want := sc.Expected.Runtime; want != "" {
		got, err := tracker.Runtime(context.Background(), sc.Run.ScenarioID)
		if err != nil {
			t.Fatalf("runtime: %v", err)
		}
		if got != want {
			t.Errorf("runtime %q, want %q", got, want)
		}
	}

	if sc.Expected.StagedFiles > 0 {
		staged, err := filepath.Glob(filepath.Join(outputDir, "result_*.mat"))
		if err != nil {
			t.Fatalf("glob staged: %v", err)
		}
		if len(staged) != sc.Expected.StagedFiles {
			t.Errorf("%d staged files, want %d", len(staged), sc.Expected.StagedFiles)
		}
	}
}
