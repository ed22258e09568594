package services

import "context"

type contextKey string

const (
	toolKey      contextKey = "tool"
	providerKey  contextKey = "provider"
	requestIDKey contextKey = "request_id"
)

// WithTool annotates context with the study tool handling the request.
func WithTool(ctx context.Context, tool string) context.Context {
	return withString(ctx, toolKey, tool)
}

// ToolFromContext returns the tool name if present.
func ToolFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, toolKey)
}

// WithProvider annotates context with the completion provider name.
func WithProvider(ctx context.Context, provider string) context.Context {
	return withString(ctx, providerKey, provider)
}

// ProviderFromContext returns the provider name if present.
func ProviderFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, providerKey)
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey)
}

// withString leaves ctx untouched for empty values so an outer annotation
// is never masked by a blank one.
func withString(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
