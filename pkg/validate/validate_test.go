package validate_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/membank-mcp/membank/pkg/model"
	"github.com/membank-mcp/membank/pkg/validate"
)

func TestScope(t *testing.T) {
	t.Run("valid scope is normalized", func(t *testing.T) {
		scope, err := validate.Scope(map[string]any{"user_id": "alice123"})
		gt.NoError(t, err)
		gt.Equal(t, scope, map[string]string{"user_id": "alice123"})
	})

	t.Run("non-object", func(t *testing.T) {
		_, err := validate.Scope("user_id")
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("must be an object")
	})

	t.Run("nil", func(t *testing.T) {
		_, err := validate.Scope(nil)
		gt.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := validate.Scope(map[string]any{})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("cannot be empty")
	})

	t.Run("non-string value names the pair", func(t *testing.T) {
		_, err := validate.Scope(map[string]any{"user_id": 42})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("user_id=42")
	})
}

func TestConversation(t *testing.T) {
	turn := func(role, content string) map[string]any {
		return map[string]any{"role": role, "content": content}
	}

	t.Run("valid conversation is normalized in order", func(t *testing.T) {
		turns, err := validate.Conversation([]any{
			turn("user", "I'm Alice and I love Python"),
			turn("assistant", "Nice to meet you, Alice!"),
			turn("system", "be concise"),
		})
		gt.NoError(t, err)
		gt.A(t, turns).Length(3)
		gt.Equal(t, turns[0], model.Turn{Role: model.RoleUser, Content: "I'm Alice and I love Python"})
		gt.Equal(t, turns[2].Role, model.RoleSystem)
	})

	t.Run("non-array", func(t *testing.T) {
		_, err := validate.Conversation(turn("user", "hello"))
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("must be an array")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := validate.Conversation([]any{})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("cannot be empty")
	})

	t.Run("non-object turn carries index", func(t *testing.T) {
		_, err := validate.Conversation([]any{turn("user", "hi"), "oops"})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("turn 1")
	})

	t.Run("missing role", func(t *testing.T) {
		_, err := validate.Conversation([]any{map[string]any{"content": "hi"}})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("turn 0 missing 'role'")
	})

	t.Run("missing content", func(t *testing.T) {
		_, err := validate.Conversation([]any{map[string]any{"role": "user"}})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("turn 0 missing 'content'")
	})

	t.Run("invalid role carries index and value", func(t *testing.T) {
		_, err := validate.Conversation([]any{
			turn("user", "hi"),
			turn("assistant", "hello"),
			turn("moderator", "welcome"),
		})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("turn 2 has invalid role: moderator")
	})
}

func TestMemoryFact(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		gt.NoError(t, validate.MemoryFact("ok"))
	})

	t.Run("empty", func(t *testing.T) {
		gt.Error(t, validate.MemoryFact(""))
	})

	t.Run("whitespace only", func(t *testing.T) {
		gt.Error(t, validate.MemoryFact("   "))
	})

	t.Run("too long includes the length", func(t *testing.T) {
		err := validate.MemoryFact(strings.Repeat("x", 10001))
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("10001")
	})

	t.Run("at the limit", func(t *testing.T) {
		gt.NoError(t, validate.MemoryFact(strings.Repeat("x", 10000)))
	})
}
