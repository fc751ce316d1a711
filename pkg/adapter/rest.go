package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/membank-mcp/membank/pkg/model"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Client talks to the Agent Engine Memory Bank REST API (v1beta1).
type Client struct {
	httpClient   *http.Client
	endpoint     string
	projectID    string
	location     string
	pollInterval time.Duration
}

type Option func(*Client)

// WithHTTPClient overrides the authenticated HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithEndpoint overrides the API base URL (including the version prefix).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithPollInterval sets the wait between long-running operation polls.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// New creates a Memory Bank client. Authentication uses the API key when
// configured, otherwise Application Default Credentials with the
// cloud-platform scope.
func New(ctx context.Context, cfg *model.Config, opts ...Option) (*Client, error) {
	if cfg.ProjectID == "" && cfg.APIKey == "" {
		return nil, goerr.New("project or api-key is required")
	}

	location := cfg.Location
	if location == "" {
		location = "us-central1"
	}

	c := &Client{
		endpoint:     fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1beta1", location),
		projectID:    cfg.ProjectID,
		location:     location,
		pollInterval: 3 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		clientOpts := []option.ClientOption{option.WithScopes(cloudPlatformScope)}
		if cfg.APIKey != "" {
			clientOpts = []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
		}

		hc, _, err := htransport.NewClient(ctx, clientOpts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create authenticated HTTP client")
		}
		c.httpClient = hc
	}

	return c, nil
}

func (c *Client) CreateAgentEngine(ctx context.Context, topics []string) (*model.AgentEngine, error) {
	req := &createEngineRequest{}
	if len(topics) > 0 {
		cfg := customizationConfig{}
		for _, topic := range topics {
			cfg.MemoryTopics = append(cfg.MemoryTopics, memoryTopic{
				ManagedMemoryTopic: managedMemoryTopic{ManagedTopicEnum: topic},
			})
		}
		req.ContextSpec = &contextSpec{
			MemoryBankConfig: &memoryBankConfig{
				CustomizationConfigs: []customizationConfig{cfg},
			},
		}
	}

	url := fmt.Sprintf("%s/projects/%s/locations/%s/reasoningEngines", c.endpoint, c.projectID, c.location)

	var op restOperation
	if err := c.doJSON(ctx, http.MethodPost, url, req, &op); err != nil {
		return nil, goerr.Wrap(err, "failed to create agent engine")
	}

	done, err := c.waitOperation(ctx, &op)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to wait for agent engine creation")
	}

	var engine model.AgentEngine
	if len(done.Response) > 0 {
		if err := json.Unmarshal(done.Response, &engine); err != nil {
			return nil, goerr.Wrap(err, "failed to decode agent engine")
		}
	}
	if engine.Name == "" {
		// Engine resource name is the operation name without the
		// "/operations/{id}" suffix.
		engine.Name = operationResource(done.Name)
	}

	return &engine, nil
}

func (c *Client) GetAgentEngine(ctx context.Context, name string) (*model.AgentEngine, error) {
	var engine model.AgentEngine
	if err := c.doJSON(ctx, http.MethodGet, c.resourceURL(name), nil, &engine); err != nil {
		return nil, goerr.Wrap(err, "failed to get agent engine", goerr.V("name", name))
	}
	return &engine, nil
}

func (c *Client) GenerateMemories(ctx context.Context, input *GenerateMemoriesInput) (*model.Operation, error) {
	req := &generateMemoriesRequest{
		DirectContentsSource: &directContentsSource{Events: input.Events},
		Scope:                input.Scope,
	}

	url := c.resourceURL(input.Engine) + "/memories:generate"

	var op restOperation
	if err := c.doJSON(ctx, http.MethodPost, url, req, &op); err != nil {
		return nil, goerr.Wrap(err, "failed to generate memories")
	}

	if input.WaitForCompletion && !op.Done {
		done, err := c.waitOperation(ctx, &op)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to wait for memory generation")
		}
		op = *done
	}

	result := &model.Operation{
		Name: op.Name,
		Done: op.Done,
	}

	if op.Done && len(op.Response) > 0 {
		var resp generateMemoriesResponse
		if err := json.Unmarshal(op.Response, &resp); err != nil {
			return nil, goerr.Wrap(err, "failed to decode generated memories")
		}
		for _, entry := range resp.entries {
			result.GeneratedMemories = append(result.GeneratedMemories, entry.toModel())
		}
	}

	return result, nil
}

func (c *Client) RetrieveMemories(ctx context.Context, input *RetrieveMemoriesInput) ([]*model.RetrievedMemory, error) {
	req := &retrieveMemoriesRequest{Scope: input.Scope}
	if input.SearchQuery != "" {
		req.SimilaritySearchParams = &similaritySearchParams{
			SearchQuery: input.SearchQuery,
			TopK:        input.TopK,
		}
	}

	url := c.resourceURL(input.Engine) + "/memories:retrieve"

	var resp retrieveMemoriesResponse
	if err := c.doJSON(ctx, http.MethodPost, url, req, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to retrieve memories")
	}

	memories := make([]*model.RetrievedMemory, 0, len(resp.RetrievedMemories))
	for _, item := range resp.RetrievedMemories {
		retrieved := &model.RetrievedMemory{Memory: item.Memory}
		if item.Distance != nil {
			retrieved.Distance = *item.Distance
			retrieved.HasDistance = true
		}
		memories = append(memories, retrieved)
	}

	return memories, nil
}

func (c *Client) CreateMemory(ctx context.Context, input *CreateMemoryInput) (*model.Operation, error) {
	req := &createMemoryRequest{
		Fact:       input.Fact,
		Scope:      input.Scope,
		ExpireTime: input.ExpireTime,
	}

	url := c.resourceURL(input.Engine) + "/memories"

	var op restOperation
	if err := c.doJSON(ctx, http.MethodPost, url, req, &op); err != nil {
		return nil, goerr.Wrap(err, "failed to create memory")
	}

	if !op.Done {
		done, err := c.waitOperation(ctx, &op)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to wait for memory creation")
		}
		op = *done
	}

	result := &model.Operation{
		Name: op.Name,
		Done: op.Done,
	}
	if len(op.Response) > 0 {
		var memory model.Memory
		if err := json.Unmarshal(op.Response, &memory); err != nil {
			return nil, goerr.Wrap(err, "failed to decode created memory")
		}
		result.Memory = &memory
	}

	return result, nil
}

func (c *Client) DeleteMemory(ctx context.Context, memoryName string) error {
	var op restOperation
	if err := c.doJSON(ctx, http.MethodDelete, c.resourceURL(memoryName), nil, &op); err != nil {
		return goerr.Wrap(err, "failed to delete memory", goerr.V("name", memoryName))
	}
	return nil
}

func (c *Client) ListMemories(ctx context.Context, engineName string, pageSize int) ([]*model.Memory, error) {
	var memories []*model.Memory
	pageToken := ""

	for {
		url := c.resourceURL(engineName) + "/memories"
		sep := "?"
		if pageSize > 0 {
			url += fmt.Sprintf("%spageSize=%d", sep, pageSize)
			sep = "&"
		}
		if pageToken != "" {
			url += sep + "pageToken=" + pageToken
		}

		var resp listMemoriesResponse
		if err := c.doJSON(ctx, http.MethodGet, url, nil, &resp); err != nil {
			return nil, goerr.Wrap(err, "failed to list memories")
		}

		memories = append(memories, resp.Memories...)
		if resp.NextPageToken == "" {
			return memories, nil
		}
		pageToken = resp.NextPageToken
	}
}

// waitOperation polls a long-running operation until it completes or the
// context is cancelled.
func (c *Client) waitOperation(ctx context.Context, op *restOperation) (*restOperation, error) {
	current := op
	for {
		if current.Done {
			if current.Error != nil {
				return nil, goerr.New(current.Error.Message,
					goerr.V("operation", current.Name),
					goerr.V("status", current.Error.Status))
			}
			return current, nil
		}

		select {
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "operation wait cancelled", goerr.V("operation", current.Name))
		case <-time.After(c.pollInterval):
		}

		var next restOperation
		if err := c.doJSON(ctx, http.MethodGet, c.resourceURL(current.Name), nil, &next); err != nil {
			return nil, goerr.Wrap(err, "failed to poll operation", goerr.V("operation", current.Name))
		}
		current = &next
	}
}

func (c *Client) resourceURL(name string) string {
	return c.endpoint + "/" + name
}

func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return goerr.New(apiErrorMessage(data, resp.StatusCode),
			goerr.V("status_code", resp.StatusCode),
			goerr.V("url", url))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return goerr.Wrap(err, "failed to decode response body")
		}
	}

	return nil
}

// apiErrorMessage extracts the message from a googleapis error body, falling
// back to the HTTP status.
func apiErrorMessage(body []byte, statusCode int) string {
	var apiErr struct {
		Error restStatus `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}
