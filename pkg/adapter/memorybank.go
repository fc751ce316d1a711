package adapter

import (
	"context"

	"github.com/membank-mcp/membank/pkg/model"
)

// MemoryBank abstracts the Vertex AI Agent Engine Memory Bank API. The
// remote service is the sole source of truth for storage and search; this
// layer only translates requests and responses.
type MemoryBank interface {
	// CreateAgentEngine creates a new Agent Engine, optionally restricted to
	// the given memory topics, and waits for the creation to complete.
	CreateAgentEngine(ctx context.Context, topics []string) (*model.AgentEngine, error)

	// GetAgentEngine fetches an existing Agent Engine by resource name.
	GetAgentEngine(ctx context.Context, name string) (*model.AgentEngine, error)

	// GenerateMemories extracts memories from conversation events. When
	// input.WaitForCompletion is set the returned operation is polled until
	// done.
	GenerateMemories(ctx context.Context, input *GenerateMemoriesInput) (*model.Operation, error)

	// RetrieveMemories fetches memories for a scope, with similarity search
	// when input.SearchQuery is non-empty.
	RetrieveMemories(ctx context.Context, input *RetrieveMemoriesInput) ([]*model.RetrievedMemory, error)

	// CreateMemory stores a single fact directly.
	CreateMemory(ctx context.Context, input *CreateMemoryInput) (*model.Operation, error)

	// DeleteMemory removes a memory by resource name.
	DeleteMemory(ctx context.Context, memoryName string) error

	// ListMemories pages through all memories of an engine. pageSize <= 0
	// leaves the page size to the server.
	ListMemories(ctx context.Context, engineName string, pageSize int) ([]*model.Memory, error)
}

// Factory constructs a MemoryBank client from connection settings. The
// server takes a Factory instead of a concrete client so tests can inject a
// stub bank.
type Factory func(ctx context.Context, cfg *model.Config) (MemoryBank, error)

// GenerateMemoriesInput is the request for MemoryBank.GenerateMemories.
type GenerateMemoriesInput struct {
	Engine            string
	Events            []*model.Event
	Scope             map[string]string
	WaitForCompletion bool
}

// RetrieveMemoriesInput is the request for MemoryBank.RetrieveMemories.
type RetrieveMemoriesInput struct {
	Engine      string
	Scope       map[string]string
	SearchQuery string
	TopK        int
}

// CreateMemoryInput is the request for MemoryBank.CreateMemory. ExpireTime
// is an RFC 3339 timestamp; empty means no expiration.
type CreateMemoryInput struct {
	Engine     string
	Fact       string
	Scope      map[string]string
	ExpireTime string
}
