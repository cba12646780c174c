package middleware

import (
	"net/http"
	"strings"

	"docvault/internal/httputil"
)

// UserIDHeader names the acting user. This is identification only; there is
// no authentication.
const UserIDHeader = "X-User-ID"

// Identity puts the acting user's id into the request context, falling back
// to defaultUserID when the header is absent
func Identity(defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if userID == "" {
				userID = defaultUserID
			}
			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
