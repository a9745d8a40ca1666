package middleware

import (
	"net/http"
	"strings"

	"newsstand/internal/platform/logger"
	pnet "newsstand/internal/platform/net"
)

// Identity lifts the caller identity resolved by the external session
// provider onto the request context. The gateway forwards it as headers;
// absent headers mean an unauthenticated guest.
//
//	X-User-ID    opaque user id, empty for guests
//	X-User-Tier  guest|free|premium|pro (raw string, parsed in core/access)
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
			tier := strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Tier")))

			ctx := pnet.WithUser(r.Context(), userID, tier)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
