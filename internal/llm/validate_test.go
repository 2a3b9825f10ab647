package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var verdictSchema = &Schema{
	Name: "test-verdict",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
			"level":   map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
			"flags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"score": map[string]any{"type": "number", "minimum": 0, "maximum": 10},
		},
		"required":             []string{"summary", "level"},
		"additionalProperties": false,
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"summary":"ok","level":"high","flags":["fatigue"],"score":7.5}`, true},
		{"optional fields omitted", `{"summary":"ok","level":"low"}`, true},
		{"missing required", `{"summary":"ok"}`, false},
		{"unknown enum value", `{"summary":"ok","level":"extreme"}`, false},
		{"wrong item type", `{"summary":"ok","level":"low","flags":[1,2]}`, false},
		{"out of range", `{"summary":"ok","level":"low","score":11}`, false},
		{"extra property", `{"summary":"ok","level":"low","mood":"fine"}`, false},
		{"malformed", `{summary:`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponse(verdictSchema, json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("err = %v (%T), want *ErrInvalidResponse", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("Content = %q, want the raw reply", inv.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := ValidateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
