package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/membank-mcp/membank/pkg/server"
	"github.com/membank-mcp/membank/pkg/session"
	"github.com/membank-mcp/membank/pkg/utils/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the Memory Bank MCP server on stdio",
		Flags: cfg.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			logging.SetDefault(logger)
			ctx = logging.With(ctx, logger)

			sessCfg, err := cfg.sessionConfig()
			if err != nil {
				return err
			}

			sess := session.New(sessCfg)
			gateway := server.New(sess)

			logger.Info("starting memory bank MCP server",
				"project", sessCfg.ProjectID,
				"location", sessCfg.Location)

			// Best-effort: a failed pre-initialization just means the caller
			// has to run initialize_memory_bank itself.
			if err := gateway.Preinitialize(ctx); err != nil {
				logger.Warn("could not pre-initialize memory bank", "error", err)
			}

			if err := gateway.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
				return goerr.Wrap(err, "MCP server terminated")
			}

			logger.Info("memory bank MCP server stopped")
			return nil
		},
	}
}
