// Package server implements the Memory Bank tool gateway: an MCP server
// exposing memory operations as tools and a few reusable prompt templates.
// Every tool call is a boundary; failures of any kind are returned as error
// envelopes, never as protocol errors.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/membank-mcp/membank/pkg/adapter"
	"github.com/membank-mcp/membank/pkg/format"
	"github.com/membank-mcp/membank/pkg/model"
	"github.com/membank-mcp/membank/pkg/session"
	"github.com/membank-mcp/membank/pkg/utils/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "memory-bank"
const serverVersion = "0.1.0"

const notReadyMessage = "Memory Bank not initialized. Call initialize_memory_bank first."

// Server is the tool gateway. It owns no remote state itself; the injected
// session does.
type Server struct {
	session *session.Session
	factory adapter.Factory

	// initMu serializes initialize_memory_bank calls so the build-client,
	// resolve-engine, install sequence cannot interleave.
	initMu sync.Mutex
}

type Option func(*Server)

// WithFactory overrides the remote client constructor. Tests use this to
// inject a stub MemoryBank.
func WithFactory(f adapter.Factory) Option {
	return func(s *Server) {
		s.factory = f
	}
}

// New creates a tool gateway bound to the given session.
func New(sess *session.Session, opts ...Option) *Server {
	s := &Server{
		session: sess,
		factory: func(ctx context.Context, cfg *model.Config) (adapter.MemoryBank, error) {
			return adapter.New(ctx, cfg)
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MCPServer builds the MCP server with all tools and prompts registered.
func (s *Server) MCPServer() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "initialize_memory_bank",
		Description: "Initialize Memory Bank with a Google Cloud project. Call this before any other memory tool.",
		InputSchema: initializeMemoryBankSchema(),
	}, s.initializeMemoryBank)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "generate_memories",
		Description: "Analyze a conversation and extract facts worth remembering for the given scope.",
		InputSchema: generateMemoriesSchema(),
	}, s.generateMemories)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "retrieve_memories",
		Description: "Retrieve memories for a scope, optionally ranked by similarity to a search query.",
		InputSchema: retrieveMemoriesSchema(),
	}, s.retrieveMemories)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_memory",
		Description: "Store a single fact directly, optionally with a time-to-live.",
		InputSchema: createMemorySchema(),
	}, s.createMemory)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_memory",
		Description: "Delete a specific memory by its full resource name.",
		InputSchema: deleteMemorySchema(),
	}, s.deleteMemory)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_memories",
		Description: "List all memories in the Memory Bank.",
		InputSchema: listMemoriesSchema(),
	}, s.listMemories)

	s.registerPrompts(srv)

	return srv
}

// toolLogger attaches a fresh request ID so concurrent invocations are
// distinguishable in the logs.
func toolLogger(ctx context.Context, tool string) *slog.Logger {
	return logging.From(ctx).With("tool", tool, "request_id", uuid.NewString())
}

// toolResult wraps an envelope as both text and structured content.
func toolResult(envelope map[string]any) (*mcp.CallToolResult, map[string]any, error) {
	text, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to encode response envelope")
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(text)}},
	}, envelope, nil
}

func errorResult(message string) (*mcp.CallToolResult, map[string]any, error) {
	return toolResult(format.ErrorResponse(message, nil))
}
