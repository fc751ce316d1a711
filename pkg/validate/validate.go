// Package validate checks and normalizes untrusted tool-call arguments
// before any remote call is made. Validators are pure: they return an error
// describing the first problem found, or nil with the normalized value.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/membank-mcp/membank/pkg/model"
)

// MaxFactLength is the upper bound on a single memory fact.
const MaxFactLength = 10000

// Scope validates a scope argument and normalizes it into a string-to-string
// map. The scope identifies the memory owner and is treated as opaque.
func Scope(v any) (map[string]string, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, goerr.New("scope must be an object with string keys and values")
	}

	if len(raw) == 0 {
		return nil, goerr.New("scope cannot be empty")
	}

	scope := make(map[string]string, len(raw))
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			return nil, goerr.New(fmt.Sprintf("scope keys and values must be strings: %s=%v", key, value))
		}
		scope[key] = s
	}

	return scope, nil
}

// Conversation validates a conversation argument and normalizes it into an
// ordered turn list. Error messages carry the 0-based index of the first
// offending turn.
func Conversation(v any) ([]model.Turn, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, goerr.New("conversation must be an array of turns")
	}

	if len(raw) == 0 {
		return nil, goerr.New("conversation cannot be empty")
	}

	turns := make([]model.Turn, 0, len(raw))
	for i, item := range raw {
		turn, ok := item.(map[string]any)
		if !ok {
			return nil, goerr.New(fmt.Sprintf("turn %d must be an object", i))
		}

		role, ok := turn["role"]
		if !ok {
			return nil, goerr.New(fmt.Sprintf("turn %d missing 'role' field", i))
		}

		content, ok := turn["content"]
		if !ok {
			return nil, goerr.New(fmt.Sprintf("turn %d missing 'content' field", i))
		}

		roleStr, ok := role.(string)
		if !ok || !model.ValidRole(model.Role(roleStr)) {
			return nil, goerr.New(fmt.Sprintf("turn %d has invalid role: %v", i, role))
		}

		contentStr, ok := content.(string)
		if !ok {
			return nil, goerr.New(fmt.Sprintf("turn %d 'content' must be a string", i))
		}

		turns = append(turns, model.Turn{
			Role:    model.Role(roleStr),
			Content: contentStr,
		})
	}

	return turns, nil
}

// MemoryFact validates a fact string. The returned error message includes the
// actual length when the fact exceeds MaxFactLength.
func MemoryFact(fact string) error {
	if strings.TrimSpace(fact) == "" {
		return goerr.New("fact cannot be empty")
	}

	if n := utf8.RuneCountInString(fact); n > MaxFactLength {
		return goerr.New(fmt.Sprintf("fact too long: %d characters (max %d)", n, MaxFactLength))
	}

	return nil
}
