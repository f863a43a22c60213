// Package kit carries request-scoped values and transport glue shared by
// lectio's MCP surface. A voice command travels: transcript → classify →
// dispatch → speak; the session identifier rides the context.
package kit

import "context"

type contextKey string

// SessionIDKey holds the transport session identifier: the conversation
// ID on the stdio path, a generated quic_ ID on the QUIC path.
const SessionIDKey contextKey = "lectio_session_id"

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

func GetSessionID(ctx context.Context) string {
	v, _ := ctx.Value(SessionIDKey).(string)
	return v
}
