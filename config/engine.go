package config

// EngineConfig describes the simulation engine install.
type EngineConfig struct {
	// JuliaBin is the julia interpreter to invoke.
	JuliaBin string `json:"julia_bin"`
	// DefaultEnv is the julia project used when no --julia-env is given.
	DefaultEnv string `json:"default_env"`
}

// SetDefaults applies sane defaults.
func (c *EngineConfig) SetDefaults() {
	if c.JuliaBin == "" {
		c.JuliaBin = "julia"
	}
}
