package cli

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/membank-mcp/membank/pkg/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// config holds serve command configuration
type config struct {
	project     string
	location    string
	agentEngine string
	apiKey      string
	logLevel    string
	configFile  string
}

func (cfg *config) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:    "location",
			Aliases: []string{"l"},
			// No flag default: a default here would always count as a
			// user-set value and shadow the config file. The fallback is
			// applied after the merge in sessionConfig.
			Usage:       "Google Cloud location for Vertex AI (default: us-central1)",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_LOCATION"),
			Destination: &cfg.location,
		},
		&cli.StringFlag{
			Name:        "agent-engine",
			Usage:       "Existing Agent Engine resource name to pre-initialize with",
			Sources:     cli.EnvVars("AGENT_ENGINE_NAME"),
			Destination: &cfg.agentEngine,
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Google API key for authentication",
			Sources:     cli.EnvVars("GOOGLE_API_KEY"),
			Destination: &cfg.apiKey,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to YAML configuration file",
			Sources:     cli.EnvVars("MEMBANK_CONFIG"),
			Destination: &cfg.configFile,
		},
	}
}

// sessionConfig merges the optional config file with flag/env values. Flag
// and environment values win over file values.
func (cfg *config) sessionConfig() (model.Config, error) {
	var merged model.Config

	if cfg.configFile != "" {
		data, err := os.ReadFile(cfg.configFile)
		if err != nil {
			return model.Config{}, goerr.Wrap(err, "failed to read config file", goerr.V("path", cfg.configFile))
		}
		if err := yaml.Unmarshal(data, &merged); err != nil {
			return model.Config{}, goerr.Wrap(err, "failed to parse config file", goerr.V("path", cfg.configFile))
		}
	}

	if cfg.project != "" {
		merged.ProjectID = cfg.project
	}
	if cfg.location != "" {
		merged.Location = cfg.location
	}
	if cfg.agentEngine != "" {
		merged.AgentEngineName = cfg.agentEngine
	}
	if cfg.apiKey != "" {
		merged.APIKey = cfg.apiKey
	}
	if merged.Location == "" {
		merged.Location = "us-central1"
	}

	return merged, nil
}
