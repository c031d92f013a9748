package middleware

import (
	"net/http"

	"github.com/angelmondragon/bestprice-backend/pkg/logger"
)

// SessionHeader carries the caller's cart session id.
const SessionHeader = "X-Session-Id"

const maxSessionIDLen = 128

// Session resolves the cart session from X-Session-Id, minting a new id when
// the header is absent or unusable, and echoes it on the response.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := headerToken(r, SessionHeader, maxSessionIDLen)
			w.Header().Set(SessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
