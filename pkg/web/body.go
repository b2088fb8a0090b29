package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

type bodyKey struct{}

// ParsedBody carries the raw bytes and the decoded top-level JSON object of a
// request body through the middleware chain.
type ParsedBody struct {
	Raw    []byte
	Fields map[string]any
}

// WithBody adds a parsed request body to the context.
func WithBody(ctx context.Context, body *ParsedBody) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

// BodyFromContext retrieves the parsed request body from the context.
// Returns the body and a boolean indicating whether it was found.
func BodyFromContext(ctx context.Context) (*ParsedBody, bool) {
	body, ok := ctx.Value(bodyKey{}).(*ParsedBody)
	return body, ok
}

// JSONBodyParser decodes the JSON body of mutating requests once, before any
// validation rule or handler runs. Malformed JSON is rejected with 400 here so
// downstream code only ever sees a well-formed object. Requests without a body
// pass through untouched.
func JSONBodyParser(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(r.Body)
			if err != nil {
				RespondError(w, logger, http.StatusBadRequest, "Failed to read request body")
				return
			}
			if len(bytes.TrimSpace(raw)) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var fields map[string]any
			if err := json.Unmarshal(raw, &fields); err != nil {
				RespondError(w, logger, http.StatusBadRequest, "Invalid JSON body")
				return
			}

			ctx := WithBody(r.Context(), &ParsedBody{Raw: raw, Fields: fields})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
