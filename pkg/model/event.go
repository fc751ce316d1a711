package model

import "google.golang.org/genai"

// Event wraps a single conversation content in the shape the Memory Bank
// generate-memories API expects for direct content sources.
type Event struct {
	Content *genai.Content `json:"content"`
}
