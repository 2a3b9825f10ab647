package interpret

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/memoriz/internal/llm"
	"github.com/abhisek/memoriz/internal/predict"
	"github.com/abhisek/memoriz/internal/results"
)

const systemPrompt = `You write short, plain-language interpretations of cognitive screening results.
Scores are on a 0-10 scale. Do not diagnose. Keep the summary under 60 words and each list item under 12 words.`

// narrativeSchema constrains the model output to a Narrative.
var narrativeSchema = &llm.Schema{
	Name:        "result-narrative",
	Description: "Interpretation of a memory and attention assessment result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":        map[string]any{"type": "string", "minLength": 1},
			"strengths":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"concerns":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"recommendation": map[string]any{"type": "string", "minLength": 1},
		},
		"required":             []any{"summary", "strengths", "concerns", "recommendation"},
		"additionalProperties": false,
	},
}

// Interpreter writes narratives, preferring the LLM when one is set.
type Interpreter struct {
	provider llm.Provider
}

// New creates an Interpreter. A nil provider means rules only.
func New(p llm.Provider) *Interpreter {
	return &Interpreter{provider: p}
}

// Explain returns a narrative for r. When the LLM fails the rule-based
// narrative is returned together with the error, so callers can warn and
// still show something.
func (i *Interpreter) Explain(ctx context.Context, r results.TestResult) (Narrative, error) {
	if i.provider == nil {
		return Rules(r), nil
	}

	prompt, err := buildPrompt(r)
	if err != nil {
		return Rules(r), err
	}
	if llm.PurposeFrom(ctx) == "unknown" {
		ctx = llm.WithPurpose(ctx, llm.PurposeNarrative)
	}
	resp, err := i.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      prompt,
		Schema:      narrativeSchema,
		MaxTokens:   400,
		Temperature: 0.2,
	})
	if err != nil {
		return Rules(r), fmt.Errorf("generate narrative: %w", err)
	}

	var n Narrative
	if err := json.Unmarshal(resp.Content, &n); err != nil {
		return Rules(r), fmt.Errorf("decode narrative: %w", err)
	}
	n.Source = i.provider.ModelID()
	return n, nil
}

type promptInput struct {
	Result     results.TestResult `json:"result"`
	Category   string             `json:"predicted_category"`
	Confidence float64            `json:"confidence"`
	WMBand     string             `json:"working_memory_band"`
}

func buildPrompt(r results.TestResult) (string, error) {
	pred := predict.Predict(predict.FromResult(r))
	in := promptInput{
		Result:     r,
		Category:   pred.Category.String(),
		Confidence: pred.Confidence,
		WMBand:     WorkingMemoryBand(r.WorkingMemory / results.MaxScore).String(),
	}
	b, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return "Interpret this assessment result. Field names are in Spanish; " +
		"memoria_* are memory subscales, atencion_sostenida is sustained attention, " +
		"tiempo_reaccion is in milliseconds.\n\n" + string(b), nil
}
