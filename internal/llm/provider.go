// Package llm is a thin, provider-neutral layer over hosted language models.
// Practice question synthesis is its only consumer; every call asks for a
// JSON document matching a schema and gets back validated JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the Content is JSON that already passed schema validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the provider's native structured output.
	Schema *Schema

	MaxTokens int

	// Temperature in [0,1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case, e.g. "practice-question". It doubles as the
	// cache key for the compiled schema.
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons after normalization.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response holds the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
