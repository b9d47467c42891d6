package testutil

import (
	"net/http"
	"time"

	"distributors/pkg/requestcontext"
)

// WithRequestID stamps req with a correlation ID the way the request ID
// middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithRequestTime pins the request-scoped clock. Intake dates of distributors
// created through req are derived from t.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithRequestScope applies both the correlation ID and the pinned clock.
func WithRequestScope(req *http.Request, requestID string, t time.Time) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	ctx = requestcontext.WithTime(ctx, t)
	return req.WithContext(ctx)
}
