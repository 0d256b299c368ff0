package llm

import "context"

type contextKey int

const (
	purposeKey contextKey = iota
	conceptKey
)

// WithPurpose labels the calls made under ctx, e.g. "practice-question".
// The label is stored with every recorded request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label of ctx or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithConcept attaches the concept a call generates material for.
func WithConcept(ctx context.Context, conceptID string) context.Context {
	return context.WithValue(ctx, conceptKey, conceptID)
}

// ConceptFrom returns the concept set by WithConcept, or "".
func ConceptFrom(ctx context.Context) string {
	v, _ := ctx.Value(conceptKey).(string)
	return v
}
