package config

// PathsConfig locates the tracking lists and data directories shared with
// the wider scenario pipeline.
type PathsConfig struct {
	// ScenarioList is the scenario registry file, one row per scenario.
	ScenarioList string `json:"scenario_list"`
	// ExecuteList is the execution tracking file carrying the status column.
	ExecuteList string `json:"execute_list"`
	// OutputDir receives extracted results when no --output-dir is given.
	OutputDir string `json:"output_dir"`
}

// SetDefaults applies the conventional pipeline locations.
func (c *PathsConfig) SetDefaults() {
	if c.ScenarioList == "" {
		c.ScenarioList = "/mnt/bes/pcm/ScenarioList.csv"
	}
	if c.ExecuteList == "" {
		c.ExecuteList = "/mnt/bes/pcm/ExecuteList.csv"
	}
	if c.OutputDir == "" {
		c.OutputDir = "/mnt/bes/pcm/data/output"
	}
}
