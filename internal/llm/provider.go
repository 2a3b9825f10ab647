package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a single structured reply.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// reply is JSON that validates against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider is configured to use.
	ModelID() string
}

// Request is one single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the provider for JSON output and is used to
	// validate the reply.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema.
type Schema struct {
	// Name identifies the schema to the provider, e.g. "result-narrative".
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request, which may differ from
	// the configured alias.
	Model string

	// Truncated is set when generation stopped at MaxTokens.
	Truncated bool
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// finish applies the checks every adapter shares: a truncated structured
// reply is an error and a structured reply must match its schema.
func finish(req Request, resp *Response) (*Response, error) {
	if req.Schema == nil {
		return resp, nil
	}
	if resp.Truncated {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := ValidateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}

// resolveModel maps a short alias to a provider model id. Unknown names
// pass through so full ids work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
