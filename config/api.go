package config

// APIConfig defines settings for the read-only status API.
type APIConfig struct {
	// Addr is the listen address of the status server.
	Addr string `json:"addr"`
	// Token, when set, gates the scenario endpoints behind a static
	// bearer token. The health endpoint stays open.
	Token string `json:"token"`
	// AllowedOrigins configures CORS; empty allows none.
	AllowedOrigins []string `json:"allowed_origins"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
