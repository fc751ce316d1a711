package server_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/membank-mcp/membank/pkg/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func getPromptText(t *testing.T, gw *testGateway, name string, args map[string]string) string {
	t.Helper()

	result, err := gw.client.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      name,
		Arguments: args,
	})
	gt.NoError(t, err)
	gt.A(t, result.Messages).Length(1)

	content, ok := result.Messages[0].Content.(*mcp.TextContent)
	gt.True(t, ok)
	return content.Text
}

func TestMemoryExtractionPrompt(t *testing.T) {
	gw := newTestGateway(t, model.Config{})

	text := getPromptText(t, gw, "memory_extraction_prompt", map[string]string{
		"conversation": "User: I moved to Berlin last month",
	})
	gt.S(t, text).Contains("User: I moved to Berlin last month")
	gt.S(t, text).Contains("standalone fact")
}

func TestMemorySearchPrompt(t *testing.T) {
	gw := newTestGateway(t, model.Config{})

	text := getPromptText(t, gw, "memory_search_prompt", map[string]string{
		"user_query": "what does Alice like to drink?",
	})
	gt.S(t, text).Contains("what does Alice like to drink?")
	gt.S(t, text).Contains("similarity matching")
}

func TestMemoryConsolidationPrompt(t *testing.T) {
	gw := newTestGateway(t, model.Config{})

	text := getPromptText(t, gw, "memory_consolidation_prompt", map[string]string{
		"existing_memories": "1. Alice likes tea",
		"new_fact":          "Alice now prefers coffee",
	})
	gt.S(t, text).Contains("1. Alice likes tea")
	gt.S(t, text).Contains("Alice now prefers coffee")
}

func TestPromptMissingArgument(t *testing.T) {
	gw := newTestGateway(t, model.Config{})

	_, err := gw.client.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      "memory_search_prompt",
		Arguments: map[string]string{},
	})
	gt.Error(t, err)
}
