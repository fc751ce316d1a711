package model

// Config holds the last-applied connection settings for the Memory Bank
// session.
type Config struct {
	ProjectID       string `yaml:"project"`
	Location        string `yaml:"location"`
	AgentEngineName string `yaml:"agent_engine"`
	APIKey          string `yaml:"api_key"`
}

// Valid reports whether the config carries enough to attempt client
// construction.
func (c *Config) Valid() bool {
	return c.ProjectID != "" || c.APIKey != ""
}
