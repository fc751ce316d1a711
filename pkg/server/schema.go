package server

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Input schemas are declared explicitly rather than inferred. Scope and
// conversation are deliberately left unconstrained here: the SDK validates
// arguments against these schemas before the handler runs, and the gateway
// validators must stay authoritative so malformed input yields a precise
// error envelope instead of a protocol-level rejection.

func scopeSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: `Object identifying the memory owner, e.g. {"user_id": "alice123"}. All keys and values must be strings.`,
	}
}

func conversationSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Ordered conversation turns, oldest first. Each turn is an object with 'role' (user, assistant, or system) and 'content'.",
	}
}

func initializeMemoryBankSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"project_id": {
				Type:        "string",
				Description: "Google Cloud project ID",
			},
			"location": {
				Type:        "string",
				Description: "Google Cloud location (default: us-central1)",
			},
			"memory_topics": {
				Type:        "array",
				Description: "Optional memory topics to restrict extraction: USER_PREFERENCES, USER_PERSONAL_INFO, KEY_CONVERSATION_DETAILS, EXPLICIT_INSTRUCTIONS",
				Items:       &jsonschema.Schema{Type: "string"},
			},
			"agent_engine_name": {
				Type:        "string",
				Description: "Existing Agent Engine resource name to reuse. A new engine is created when omitted.",
			},
		},
		Required: []string{"project_id"},
	}
}

func generateMemoriesSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"conversation": conversationSchema(),
			"scope":        scopeSchema(),
			"wait_for_completion": {
				Type:        "boolean",
				Description: "Wait for memory generation to complete (default: true)",
			},
		},
		Required: []string{"conversation", "scope"},
	}
}

func retrieveMemoriesSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"scope": scopeSchema(),
			"search_query": {
				Type:        "string",
				Description: "Optional query for similarity search. All memories of the scope are returned when omitted.",
			},
			"top_k": {
				Type:        "integer",
				Description: "Number of search results to return (default: 5)",
			},
		},
		Required: []string{"scope"},
	}
}

func createMemorySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"fact": {
				Type:        "string",
				Description: "The information to remember",
			},
			"scope": scopeSchema(),
			"ttl_seconds": {
				Type:        "integer",
				Description: "Optional time-to-live in seconds",
			},
		},
		Required: []string{"fact", "scope"},
	}
}

func deleteMemorySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"memory_name": {
				Type:        "string",
				Description: "Full memory resource name",
			},
		},
		Required: []string{"memory_name"},
	}
}

func listMemoriesSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"page_size": {
				Type:        "integer",
				Description: "Memories per page while paginating (default: 50)",
			},
		},
	}
}
