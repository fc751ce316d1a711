package cli

import (
	"context"

	"github.com/membank-mcp/membank/pkg/model"
	"github.com/urfave/cli/v3"
)

// ParseServeConfig runs the serve flag set over argv and returns the merged
// session configuration without starting the server.
func ParseServeConfig(ctx context.Context, argv []string) (model.Config, error) {
	var cfg config
	var merged model.Config

	cmd := &cli.Command{
		Name:  "membank",
		Flags: cfg.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			var err error
			merged, err = cfg.sessionConfig()
			return err
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return model.Config{}, err
	}
	return merged, nil
}
