package server

import (
	"context"
	"strings"

	"github.com/membank-mcp/membank/pkg/adapter"
	"github.com/membank-mcp/membank/pkg/format"
	"github.com/membank-mcp/membank/pkg/model"
	"github.com/membank-mcp/membank/pkg/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type initializeMemoryBankParams struct {
	ProjectID       string   `json:"project_id"`
	Location        string   `json:"location,omitempty"`
	MemoryTopics    []string `json:"memory_topics,omitempty"`
	AgentEngineName string   `json:"agent_engine_name,omitempty"`
}

type generateMemoriesParams struct {
	Conversation      any   `json:"conversation"`
	Scope             any   `json:"scope"`
	WaitForCompletion *bool `json:"wait_for_completion,omitempty"`
}

type retrieveMemoriesParams struct {
	Scope       any    `json:"scope"`
	SearchQuery string `json:"search_query,omitempty"`
	TopK        int    `json:"top_k,omitempty"`
}

type createMemoryParams struct {
	Fact       string `json:"fact"`
	Scope      any    `json:"scope"`
	TTLSeconds *int   `json:"ttl_seconds,omitempty"`
}

type deleteMemoryParams struct {
	MemoryName string `json:"memory_name"`
}

type listMemoriesParams struct {
	PageSize *int `json:"page_size,omitempty"`
}

// initializeMemoryBank builds a remote client and resolves the agent engine,
// either by fetching an existing one or creating a new one. The session is
// only touched after every remote step succeeded.
func (s *Server) initializeMemoryBank(ctx context.Context, req *mcp.CallToolRequest, args initializeMemoryBankParams) (*mcp.CallToolResult, map[string]any, error) {
	logger := toolLogger(ctx, "initialize_memory_bank")

	s.initMu.Lock()
	defer s.initMu.Unlock()

	location := args.Location
	if location == "" {
		location = "us-central1"
	}

	logger.Info("initializing memory bank", "project_id", args.ProjectID, "location", location)

	cfg := s.session.Config()
	cfg.ProjectID = args.ProjectID
	cfg.Location = location

	bank, err := s.factory(ctx, &cfg)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		return errorResult(err.Error())
	}

	var engine *model.AgentEngine
	if args.AgentEngineName != "" {
		engine, err = bank.GetAgentEngine(ctx, args.AgentEngineName)
		cfg.AgentEngineName = args.AgentEngineName
	} else {
		engine, err = bank.CreateAgentEngine(ctx, args.MemoryTopics)
	}
	if err != nil {
		logger.Error("failed to resolve agent engine", "error", err)
		return errorResult(err.Error())
	}

	s.session.Install(bank, engine, cfg)
	logger.Info("memory bank initialized", "agent_engine", engine.Name)

	return toolResult(format.SuccessResponse(map[string]any{
		"agent_engine_name": engine.Name,
		"project_id":        args.ProjectID,
		"location":          location,
	}, ""))
}

// generateMemories runs memory extraction over a conversation. Preconditions
// are checked in order: readiness, scope, conversation.
func (s *Server) generateMemories(ctx context.Context, req *mcp.CallToolRequest, args generateMemoriesParams) (*mcp.CallToolResult, map[string]any, error) {
	logger := toolLogger(ctx, "generate_memories")

	bank, engine, ok := s.session.Handles()
	if !ok {
		return errorResult(notReadyMessage)
	}

	scope, err := validate.Scope(args.Scope)
	if err != nil {
		return errorResult(err.Error())
	}

	turns, err := validate.Conversation(args.Conversation)
	if err != nil {
		return errorResult(err.Error())
	}

	wait := true
	if args.WaitForCompletion != nil {
		wait = *args.WaitForCompletion
	}

	op, err := bank.GenerateMemories(ctx, &adapter.GenerateMemoriesInput{
		Engine:            engine.Name,
		Events:            format.ConversationEvents(turns),
		Scope:             scope,
		WaitForCompletion: wait,
	})
	if err != nil {
		logger.Error("failed to generate memories", "error", err)
		return errorResult(err.Error())
	}

	logger.Info("generated memories", "scope", scope, "done", op.Done)

	data := map[string]any{
		"operation_name": op.Name,
		"done":           op.Done,
		"scope":          scope,
	}

	if op.Done && len(op.GeneratedMemories) > 0 {
		generated := make([]map[string]any, 0, len(op.GeneratedMemories))
		for _, mem := range op.GeneratedMemories {
			generated = append(generated, map[string]any{
				"action": mem.Action,
				"fact":   mem.Fact,
			})
		}
		data["generated_memories"] = generated
	}

	return toolResult(format.SuccessResponse(data, ""))
}

// retrieveMemories fetches memories for a scope, ranked by similarity when a
// search query is given. Result order is whatever the remote service yields.
func (s *Server) retrieveMemories(ctx context.Context, req *mcp.CallToolRequest, args retrieveMemoriesParams) (*mcp.CallToolResult, map[string]any, error) {
	logger := toolLogger(ctx, "retrieve_memories")

	bank, engine, ok := s.session.Handles()
	if !ok {
		return errorResult(notReadyMessage)
	}

	scope, err := validate.Scope(args.Scope)
	if err != nil {
		return errorResult(err.Error())
	}

	topK := args.TopK
	if topK <= 0 {
		topK = 5
	}

	results, err := bank.RetrieveMemories(ctx, &adapter.RetrieveMemoriesInput{
		Engine:      engine.Name,
		Scope:       scope,
		SearchQuery: args.SearchQuery,
		TopK:        topK,
	})
	if err != nil {
		logger.Error("failed to retrieve memories", "error", err)
		return errorResult(err.Error())
	}

	logger.Info("retrieved memories", "scope", scope, "count", len(results), "search_query", args.SearchQuery)

	memories := make([]map[string]any, 0, len(results))
	for _, retrieved := range results {
		memory := format.Memory(retrieved.Memory)
		if args.SearchQuery != "" && retrieved.HasDistance {
			memory["similarity_score"] = retrieved.Distance
		}
		memories = append(memories, memory)
	}

	return toolResult(format.SuccessResponse(map[string]any{
		"scope":          scope,
		"memories_count": len(memories),
		"memories":       memories,
	}, ""))
}

// createMemory stores a single fact. Preconditions in order: readiness,
// fact, scope.
func (s *Server) createMemory(ctx context.Context, req *mcp.CallToolRequest, args createMemoryParams) (*mcp.CallToolResult, map[string]any, error) {
	logger := toolLogger(ctx, "create_memory")

	bank, engine, ok := s.session.Handles()
	if !ok {
		return errorResult(notReadyMessage)
	}

	if err := validate.MemoryFact(args.Fact); err != nil {
		return errorResult(err.Error())
	}

	scope, err := validate.Scope(args.Scope)
	if err != nil {
		return errorResult(err.Error())
	}

	input := &adapter.CreateMemoryInput{
		Engine: engine.Name,
		Fact:   strings.TrimSpace(args.Fact),
		Scope:  scope,
	}
	if args.TTLSeconds != nil && *args.TTLSeconds > 0 {
		input.ExpireTime = format.TTLExpiration(*args.TTLSeconds)
	}

	op, err := bank.CreateMemory(ctx, input)
	if err != nil {
		logger.Error("failed to create memory", "error", err)
		return errorResult(err.Error())
	}

	// Prefer the operation's response; fall back to the bare operation
	// handle when the memory record is not returned.
	memory := op.Memory
	if memory == nil {
		memory = &model.Memory{Name: op.Name}
	}

	logger.Info("created memory", "scope", scope, "name", memory.Name)

	return toolResult(format.SuccessResponse(map[string]any{
		"memory": format.Memory(memory),
	}, ""))
}

// deleteMemory removes a memory by resource name.
func (s *Server) deleteMemory(ctx context.Context, req *mcp.CallToolRequest, args deleteMemoryParams) (*mcp.CallToolResult, map[string]any, error) {
	logger := toolLogger(ctx, "delete_memory")

	bank, _, ok := s.session.Handles()
	if !ok {
		return errorResult(notReadyMessage)
	}

	if err := bank.DeleteMemory(ctx, args.MemoryName); err != nil {
		logger.Error("failed to delete memory", "error", err)
		return errorResult(err.Error())
	}

	logger.Info("deleted memory", "name", args.MemoryName)

	return toolResult(format.SuccessResponse(map[string]any{
		"deleted": args.MemoryName,
	}, ""))
}

// listMemories materializes all memories of the current engine. The page
// size defaults to 50; an explicit zero leaves pagination to the server.
func (s *Server) listMemories(ctx context.Context, req *mcp.CallToolRequest, args listMemoriesParams) (*mcp.CallToolResult, map[string]any, error) {
	logger := toolLogger(ctx, "list_memories")

	bank, engine, ok := s.session.Handles()
	if !ok {
		return errorResult(notReadyMessage)
	}

	pageSize := 50
	if args.PageSize != nil {
		pageSize = *args.PageSize
	}

	all, err := bank.ListMemories(ctx, engine.Name, pageSize)
	if err != nil {
		logger.Error("failed to list memories", "error", err)
		return errorResult(err.Error())
	}

	memories := make([]map[string]any, 0, len(all))
	for _, memory := range all {
		memories = append(memories, format.Memory(memory))
	}

	logger.Info("listed memories", "count", len(memories))

	return toolResult(format.SuccessResponse(map[string]any{
		"count":    len(memories),
		"memories": memories,
	}, ""))
}
