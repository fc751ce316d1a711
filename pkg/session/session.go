// Package session holds the shared connection state of the gateway: the
// remote client, the active agent engine, and the last-applied
// configuration. The MCP protocol is stateless per call, so the session is
// the only thing carrying the remote handles across tool invocations.
package session

import (
	"sync"

	"github.com/membank-mcp/membank/pkg/adapter"
	"github.com/membank-mcp/membank/pkg/model"
)

// Session is constructed once by the server shell and injected into the tool
// gateway. All access goes through the mutex: tool handlers read a snapshot,
// and only the initialization path writes.
type Session struct {
	mu          sync.RWMutex
	bank        adapter.MemoryBank
	engine      *model.AgentEngine
	config      model.Config
	initialized bool
}

// New creates an uninitialized session carrying the given configuration.
func New(cfg model.Config) *Session {
	return &Session{config: cfg}
}

// IsReady reports whether memory operations can be served.
func (s *Session) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized && s.engine != nil
}

// Handles returns a snapshot of the remote handles. ok is false while the
// session is not initialized.
func (s *Session) Handles() (bank adapter.MemoryBank, engine *model.AgentEngine, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized || s.engine == nil {
		return nil, nil, false
	}
	return s.bank, s.engine, true
}

// Config returns a copy of the last-applied configuration.
func (s *Session) Config() model.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Install atomically replaces the remote handles and marks the session
// initialized. A previous engine handle is replaced, not cleaned up; the
// remote resource keeps existing.
func (s *Session) Install(bank adapter.MemoryBank, engine *model.AgentEngine, cfg model.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bank = bank
	s.engine = engine
	s.config = cfg
	s.initialized = true
}

// Reset clears the remote handles and the initialized flag. The
// configuration is kept so a later initialization can reuse it.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bank = nil
	s.engine = nil
	s.initialized = false
}
