package llm

import "context"

// Purposes label LLM request events by what the reply was for.
const (
	PurposeNarrative = "narrative" // result interpretation
	PurposeProbe     = "probe"     // `memoriz llm test`
)

type purposeKey struct{}

// WithPurpose tags ctx so LoggingProvider can record why a request was made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}
