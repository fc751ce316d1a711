package server

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/membank-mcp/membank/pkg/utils/logging"
)

// Preinitialize opportunistically brings the session up from startup
// configuration, so a pre-provisioned engine is usable without an explicit
// initialize_memory_bank call. Failures are returned for logging but leave
// the session untouched; the caller treats them as non-fatal.
func (s *Server) Preinitialize(ctx context.Context) error {
	logger := logging.From(ctx)

	s.initMu.Lock()
	defer s.initMu.Unlock()

	cfg := s.session.Config()
	if !cfg.Valid() || cfg.AgentEngineName == "" {
		logger.Info("no startup configuration, waiting for initialize_memory_bank")
		return nil
	}

	bank, err := s.factory(ctx, &cfg)
	if err != nil {
		return goerr.Wrap(err, "failed to create client from startup configuration")
	}

	engine, err := bank.GetAgentEngine(ctx, cfg.AgentEngineName)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch configured agent engine",
			goerr.V("agent_engine", cfg.AgentEngineName))
	}

	s.session.Install(bank, engine, cfg)
	logger.Info("memory bank pre-initialized", "agent_engine", engine.Name)

	return nil
}
