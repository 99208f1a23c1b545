package kit

import "context"

type contextKey string

const (
	RunIDKey     contextKey = "kit_run_id"
	SessionIDKey contextKey = "kit_session_id"
	TestNameKey  contextKey = "kit_test_name"
	TransportKey contextKey = "kit_transport" // "go", "mcp", "http"
	RequestIDKey contextKey = "kit_request_id"
)

func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}
func GetRunID(ctx context.Context) string {
	v, _ := ctx.Value(RunIDKey).(string)
	return v
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}
func GetSessionID(ctx context.Context) string {
	v, _ := ctx.Value(SessionIDKey).(string)
	return v
}

func WithTestName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, TestNameKey, name)
}
func GetTestName(ctx context.Context) string {
	v, _ := ctx.Value(TestNameKey).(string)
	return v
}

func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, TransportKey, t)
}
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(TransportKey).(string); ok {
		return v
	}
	return "go"
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}
