package middleware

import (
	"net/http"

	"github.com/dd0wney/talentgraph/pkg/session"
)

// SessionIDHeader selects the viewer session.
const SessionIDHeader = "X-Session-ID"

// Session puts the sanitized X-Session-ID header value into the request
// context. Requests without one use the default session.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sanitizeRequestID(r.Header.Get(SessionIDHeader))
			ctx := session.NewContext(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
