package server

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const memoryExtractionTemplate = `Analyze this conversation and extract key information to remember:

%s

Extract the following types of information:
1. Personal information (names, relationships, preferences)
2. Important facts mentioned
3. Decisions or commitments made
4. Anything explicitly asked to remember

Format each memory as a clear, standalone fact that can be understood without context.
Be specific and include relevant details.`

const memorySearchTemplate = `Convert this question into keywords for searching memories:

Question: %s

Extract the key concepts, entities, and topics that would match relevant memories.
Focus on:
- Nouns and proper names
- Specific terms and concepts
- Important descriptors
- Action words if relevant

Return a concise search query optimized for similarity matching.`

const memoryConsolidationTemplate = `Review these existing memories and determine how to handle a new fact:

Existing memories:
%s

New fact to consider:
%s

Determine if the new fact:
1. Is completely new and should be added as a separate memory
2. Updates or enhances an existing memory (specify which one and how to merge)
3. Contradicts an existing memory (specify which one should be kept)
4. Is redundant and should not be stored

Provide your recommendation with clear reasoning.`

// registerPrompts adds the reusable prompt templates for common memory
// workflows.
func (s *Server) registerPrompts(srv *mcp.Server) {
	srv.AddPrompt(&mcp.Prompt{
		Name:        "memory_extraction_prompt",
		Description: "Prompt for extracting memories from a conversation",
		Arguments: []*mcp.PromptArgument{
			{Name: "conversation", Description: "The conversation text to analyze", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		conversation, err := promptArgument(req, "conversation")
		if err != nil {
			return nil, err
		}
		return promptResult(fmt.Sprintf(memoryExtractionTemplate, conversation)), nil
	})

	srv.AddPrompt(&mcp.Prompt{
		Name:        "memory_search_prompt",
		Description: "Convert a user question into an optimized memory search query",
		Arguments: []*mcp.PromptArgument{
			{Name: "user_query", Description: "The user's question", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		userQuery, err := promptArgument(req, "user_query")
		if err != nil {
			return nil, err
		}
		return promptResult(fmt.Sprintf(memorySearchTemplate, userQuery)), nil
	})

	srv.AddPrompt(&mcp.Prompt{
		Name:        "memory_consolidation_prompt",
		Description: "Prompt for consolidating or merging related memories",
		Arguments: []*mcp.PromptArgument{
			{Name: "existing_memories", Description: "Current memories as text", Required: true},
			{Name: "new_fact", Description: "New fact to potentially consolidate", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		existing, err := promptArgument(req, "existing_memories")
		if err != nil {
			return nil, err
		}
		newFact, err := promptArgument(req, "new_fact")
		if err != nil {
			return nil, err
		}
		return promptResult(fmt.Sprintf(memoryConsolidationTemplate, existing, newFact)), nil
	})
}

func promptArgument(req *mcp.GetPromptRequest, name string) (string, error) {
	value, ok := req.Params.Arguments[name]
	if !ok || value == "" {
		return "", goerr.New("missing prompt argument", goerr.V("argument", name))
	}
	return value, nil
}

func promptResult(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
