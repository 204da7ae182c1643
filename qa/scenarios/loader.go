// Package scenarios replays yaml-defined orchestration drills against a
// fully wired service over throwaway csv stores.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dongqi-wu/reisego/core/model"
)

// RowDef is one scenario-list row the harness seeds before the run. The
// input directory column is filled in by the harness, pointing at its
// temp world.
type RowDef struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name,omitempty"`
	Interval  string `yaml:"interval,omitempty"`
	StartDate string `yaml:"start_date,omitempty"`
	EndDate   string `yaml:"end_date,omitempty"`
}

// RunDef is the run request under test.
type RunDef struct {
	ScenarioID  string `yaml:"scenario_id,omitempty"`
	StartDate   string `yaml:"start_date,omitempty"`
	EndDate     string `yaml:"end_date,omitempty"`
	Interval    string `yaml:"interval,omitempty"`
	Solver      string `yaml:"solver,omitempty"`
	Threads     int    `yaml:"threads,omitempty"`
	ExtractData bool   `yaml:"extract_data,omitempty"`
	KeepMatlab  bool   `yaml:"keep_matlab,omitempty"`
}

// ToParams builds the run parameters, defaulting the input directory to
// the harness world for flag-driven requests.
func (r RunDef) ToParams(inputDir string) model.RunParams {
	return model.RunParams{
		ScenarioID:  r.ScenarioID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Interval:    r.Interval,
		InputDir:    inputDir,
		Solver:      r.Solver,
		Threads:     r.Threads,
		ExtractData: r.ExtractData,
		KeepMatlab:  r.KeepMatlab,
	}
}

// Expected captures the outcome a drill asserts on.
type Expected struct {
	// Error, when set, must be a substring of the run error. Empty
	// means the run has to succeed.
	Error string `yaml:"error,omitempty"`
	// Status is the execute-list status after the run.
	Status string `yaml:"status,omitempty"`
	// Runtime is the scenario-list runtime column after the run.
	Runtime string `yaml:"runtime,omitempty"`
	// StagedFiles counts result files extracted into the output dir.
	StagedFiles int `yaml:"staged_files,omitempty"`
}

// Scenario is one drill definition.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Rows        []RowDef `yaml:"rows,omitempty"`
	Run         RunDef   `yaml:"run"`
	// EngineResults seeds that many result files under the engine
	// output directory before the run.
	EngineResults int      `yaml:"engine_results,omitempty"`
	Expected      Expected `yaml:"expected"`
}

// Load reads a drill definition from a yaml file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
