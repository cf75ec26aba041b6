package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	claimsKey    contextKey = "auth_claims"
)

const RequestIDHeader = "X-Request-ID"

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func requestID(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}

func writeJSONError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
