package format_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/membank-mcp/membank/pkg/format"
	"github.com/membank-mcp/membank/pkg/model"
)

func TestSuccessResponse(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		gt.Equal(t, format.SuccessResponse(nil, ""), map[string]any{"status": "success"})
	})

	t.Run("data merged at top level", func(t *testing.T) {
		resp := format.SuccessResponse(map[string]any{"count": 2}, "done")
		gt.Equal(t, resp, map[string]any{
			"status":  "success",
			"message": "done",
			"count":   2,
		})
	})
}

func TestErrorResponse(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		gt.Equal(t, format.ErrorResponse("E", nil), map[string]any{
			"status": "error",
			"error":  "E",
		})
	})

	t.Run("with details", func(t *testing.T) {
		resp := format.ErrorResponse("E", map[string]any{"hint": "retry"})
		details, ok := resp["details"].(map[string]any)
		gt.True(t, ok)
		gt.Equal(t, details, map[string]any{"hint": "retry"})
	})
}

func TestMemory(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		out := format.Memory(&model.Memory{
			Name:       "projects/p/locations/l/reasoningEngines/1/memories/2",
			Fact:       "likes dark mode",
			Scope:      map[string]string{"user_id": "u1"},
			CreateTime: "2026-08-29T10:00:00Z",
			UpdateTime: "2026-08-29T11:00:00Z",
		})
		gt.Equal(t, out["fact"], "likes dark mode")
		scope, ok := out["scope"].(map[string]string)
		gt.True(t, ok)
		gt.Equal(t, scope, map[string]string{"user_id": "u1"})
		gt.Equal(t, out["created_time"], "2026-08-29T10:00:00Z")
	})

	t.Run("missing fields become nil, keys stay present", func(t *testing.T) {
		out := format.Memory(&model.Memory{Name: "operations/123"})
		gt.Equal(t, out["name"], "operations/123")
		gt.Equal(t, out["fact"], nil)
		gt.Map(t, out).HasKey("updated_time")
	})

	t.Run("nil record", func(t *testing.T) {
		out := format.Memory(nil)
		gt.Equal(t, out["name"], nil)
		gt.Map(t, out).HasKey("scope")
	})
}

func TestConversationEvents(t *testing.T) {
	turns := []model.Turn{
		{Role: model.RoleUser, Content: "I'm Alice"},
		{Role: model.RoleAssistant, Content: "Hi Alice"},
		{Role: model.RoleUser, Content: "remember I like tea"},
	}

	events := format.ConversationEvents(turns)
	gt.A(t, events).Length(3)

	for i, event := range events {
		gt.Equal(t, event.Content.Role, string(turns[i].Role))
		gt.A(t, event.Content.Parts).Length(1)
		gt.Equal(t, event.Content.Parts[0].Text, turns[i].Content)
	}
}

func TestTTLExpiration(t *testing.T) {
	t.Run("zero ttl is now", func(t *testing.T) {
		out := format.TTLExpiration(0)
		gt.S(t, out).Contains("Z")
		gt.True(t, strings.HasSuffix(out, "Z"))

		parsed, err := time.Parse(time.RFC3339Nano, out)
		gt.NoError(t, err)
		gt.True(t, time.Since(parsed) < 5*time.Second)
	})

	t.Run("one day ahead", func(t *testing.T) {
		out := format.TTLExpiration(86400)
		parsed, err := time.Parse(time.RFC3339Nano, out)
		gt.NoError(t, err)

		diff := time.Until(parsed)
		gt.True(t, diff > 24*time.Hour-5*time.Second)
		gt.True(t, diff <= 24*time.Hour)
	})
}
