package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/auth"
	"github.com/valtteripyyhtia/book-library/pkg/service/token"
	"github.com/valtteripyyhtia/book-library/pkg/utils/logging"
)

func panicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				panicErr := goerr.New("panic recovered",
					goerr.V("panic", fmt.Sprintf("%v", err)),
					goerr.V("stack", string(debug.Stack())),
					goerr.V("method", r.Method),
					goerr.V("path", r.URL.Path),
				)

				handleError(w, r, panicErr)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// bearerPrefix is matched case-sensitively.
const bearerPrefix = "Bearer "

// authMiddleware validates the bearer token and injects the verified subject
// into the request context. Every failure mode gets the same response so a
// caller cannot distinguish a missing header from a bad signature or an
// expired token.
func authMiddleware(tokenSvc *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, goerr.New("missing authorization header"))
				return
			}

			if !strings.HasPrefix(authHeader, bearerPrefix) {
				unauthorized(w, r, goerr.New("authorization header is not a bearer token"))
				return
			}

			sub, err := tokenSvc.Verify(r.Context(), strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSub(r.Context(), sub)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	logging.From(r.Context()).Warn("Unauthorized", logging.ErrAttr(err))
	http.Error(w, `{"error": "Authentication required"}`, http.StatusUnauthorized)
}
