package model

// Memory represents a single fact stored in a Memory Bank. Timestamps keep
// the textual representation the remote API yields.
type Memory struct {
	Name        string            `json:"name"`
	Fact        string            `json:"fact"`
	Scope       map[string]string `json:"scope"`
	CreateTime  string            `json:"createTime,omitempty"`
	UpdateTime  string            `json:"updateTime,omitempty"`
	ExpireTime  string            `json:"expireTime,omitempty"`
	Description string            `json:"description,omitempty"`
}

// RetrievedMemory is a memory returned by a retrieval call. Distance is only
// meaningful for similarity search results.
type RetrievedMemory struct {
	Memory      *Memory
	Distance    float64
	HasDistance bool
}

// GeneratedMemory is a single consolidation action reported by a completed
// generate-memories operation.
type GeneratedMemory struct {
	Action string
	Fact   string
}

// AgentEngine is the remote resource owning a Memory Bank.
type AgentEngine struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

// Operation is a long-running operation handle for memory generation and
// creation. GeneratedMemories is populated only once the operation is done
// and the remote response carries them.
type Operation struct {
	Name              string
	Done              bool
	Memory            *Memory
	GeneratedMemories []GeneratedMemory
}

// MemoryTopic values accepted by the remote customization config. The remote
// service is authoritative; unknown strings are passed through as-is.
const (
	TopicUserPreferences        = "USER_PREFERENCES"
	TopicUserPersonalInfo       = "USER_PERSONAL_INFO"
	TopicKeyConversationDetails = "KEY_CONVERSATION_DETAILS"
	TopicExplicitInstructions   = "EXPLICIT_INSTRUCTIONS"
)
