// Package format builds the uniform response envelopes of the tool surface
// and translates between gateway types and remote API shapes.
package format

import (
	"time"

	"github.com/membank-mcp/membank/pkg/model"
	"google.golang.org/genai"
)

// SuccessResponse builds a success envelope. Entries of data are merged at
// the top level; message is included only when non-empty.
func SuccessResponse(data map[string]any, message string) map[string]any {
	resp := map[string]any{"status": "success"}
	if message != "" {
		resp["message"] = message
	}
	for k, v := range data {
		resp[k] = v
	}
	return resp
}

// ErrorResponse builds an error envelope.
func ErrorResponse(errMsg string, details map[string]any) map[string]any {
	resp := map[string]any{
		"status": "error",
		"error":  errMsg,
	}
	if len(details) > 0 {
		resp["details"] = details
	}
	return resp
}

// Memory renders a memory record into the stable output shape. Missing
// fields become nil rather than being omitted, so callers always see the
// same keys.
func Memory(m *model.Memory) map[string]any {
	out := map[string]any{
		"name":         nil,
		"fact":         nil,
		"scope":        nil,
		"created_time": nil,
		"updated_time": nil,
	}
	if m == nil {
		return out
	}

	if m.Name != "" {
		out["name"] = m.Name
	}
	if m.Fact != "" {
		out["fact"] = m.Fact
	}
	if len(m.Scope) > 0 {
		out["scope"] = m.Scope
	}
	if m.CreateTime != "" {
		out["created_time"] = m.CreateTime
	}
	if m.UpdateTime != "" {
		out["updated_time"] = m.UpdateTime
	}
	return out
}

// ConversationEvents converts a conversation into the remote event
// representation: one event per turn, each carrying a single text part.
// Order is preserved 1:1.
func ConversationEvents(turns []model.Turn) []*model.Event {
	events := make([]*model.Event, 0, len(turns))
	for _, turn := range turns {
		events = append(events, &model.Event{
			Content: &genai.Content{
				Role:  string(turn.Role),
				Parts: []*genai.Part{{Text: turn.Content}},
			},
		})
	}
	return events
}

// TTLExpiration returns "now + ttlSeconds" as an RFC 3339 UTC timestamp with
// a literal Z suffix. Callers gate on ttlSeconds > 0 before calling.
func TTLExpiration(ttlSeconds int) string {
	expiration := time.Now().UTC().Add(time.Duration(ttlSeconds) * time.Second)
	return expiration.Format(time.RFC3339Nano)
}
