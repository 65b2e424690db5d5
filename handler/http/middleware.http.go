// handler/http/middleware.http.go
package httpServer

import (
	"context"
	"net/http"
	"strings"

	"github.com/TradeLite0/logistics-v2-api/internal/domain/principal"
)

type principalKey struct{}

// authenticate extracts the bearer token, verifies it and stashes the
// principal in the request context. Requests without a valid token
// never reach the handlers behind it.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeUnauthorized(w)
			return
		}

		p, err := s.verifier.Verify(r.Context(), token)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func principalFrom(ctx context.Context) (principal.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(principal.Principal)
	return p, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	writeErrorMessage(w, http.StatusUnauthorized, "missing or invalid credentials")
}
