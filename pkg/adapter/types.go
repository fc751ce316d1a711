package adapter

import (
	"encoding/json"
	"strings"

	"github.com/membank-mcp/membank/pkg/model"
)

// Wire types for the Agent Engine Memory Bank REST API.

type restOperation struct {
	Name     string          `json:"name"`
	Done     bool            `json:"done"`
	Error    *restStatus     `json:"error,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

type restStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type managedMemoryTopic struct {
	ManagedTopicEnum string `json:"managedTopicEnum"`
}

type memoryTopic struct {
	ManagedMemoryTopic managedMemoryTopic `json:"managedMemoryTopic"`
}

type customizationConfig struct {
	MemoryTopics []memoryTopic `json:"memoryTopics"`
}

type memoryBankConfig struct {
	CustomizationConfigs []customizationConfig `json:"customizationConfigs,omitempty"`
}

type contextSpec struct {
	MemoryBankConfig *memoryBankConfig `json:"memoryBankConfig,omitempty"`
}

type createEngineRequest struct {
	DisplayName string       `json:"displayName,omitempty"`
	ContextSpec *contextSpec `json:"contextSpec,omitempty"`
}

type directContentsSource struct {
	Events []*model.Event `json:"events"`
}

type generateMemoriesRequest struct {
	DirectContentsSource *directContentsSource `json:"directContentsSource"`
	Scope                map[string]string     `json:"scope"`
}

type similaritySearchParams struct {
	SearchQuery string `json:"searchQuery"`
	TopK        int    `json:"topK,omitempty"`
}

type retrieveMemoriesRequest struct {
	Scope                  map[string]string       `json:"scope"`
	SimilaritySearchParams *similaritySearchParams `json:"similaritySearchParams,omitempty"`
}

type restRetrievedMemory struct {
	Memory   *model.Memory `json:"memory"`
	Distance *float64      `json:"distance,omitempty"`
}

type retrieveMemoriesResponse struct {
	RetrievedMemories []restRetrievedMemory `json:"retrievedMemories"`
}

type createMemoryRequest struct {
	Fact       string            `json:"fact"`
	Scope      map[string]string `json:"scope"`
	ExpireTime string            `json:"expireTime,omitempty"`
}

type listMemoriesResponse struct {
	Memories      []*model.Memory `json:"memories"`
	NextPageToken string          `json:"nextPageToken"`
}

// generatedMemoryKeys lists the field names the API has used for generated
// memory results, newest first. Extend this list if the schema shifts again.
var generatedMemoryKeys = []string{"generatedMemories", "generated_memories"}

type restGeneratedMemory struct {
	Action string        `json:"action"`
	Fact   string        `json:"fact"`
	Memory *model.Memory `json:"memory"`
}

func (g *restGeneratedMemory) toModel() model.GeneratedMemory {
	fact := g.Fact
	if g.Memory != nil {
		fact = g.Memory.Fact
	}
	return model.GeneratedMemory{
		Action: g.Action,
		Fact:   fact,
	}
}

// generateMemoriesResponse normalizes the operation response across the
// known field name variants, so nothing outside this file sees the raw
// shape.
type generateMemoriesResponse struct {
	entries []restGeneratedMemory
}

func (r *generateMemoriesResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, key := range generatedMemoryKeys {
		if v, ok := raw[key]; ok {
			return json.Unmarshal(v, &r.entries)
		}
	}

	return nil
}

// operationResource derives the owning resource name from an operation name
// like ".../reasoningEngines/123/operations/456".
func operationResource(opName string) string {
	if idx := strings.Index(opName, "/operations/"); idx >= 0 {
		return opName[:idx]
	}
	return opName
}
