package llm

import "context"

type purposeKey struct{}

// WithPurpose labels the calls made with ctx, e.g. "quiz-grade". The label
// is stored with each request event and grouped on by `llm stats`.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
