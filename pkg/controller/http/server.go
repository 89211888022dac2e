package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/valtteripyyhtia/book-library/pkg/domain/interfaces"
	"github.com/valtteripyyhtia/book-library/pkg/service/token"
	"github.com/valtteripyyhtia/book-library/pkg/utils/safe"
)

type Server struct {
	router          *chi.Mux
	tokenSvc        *token.Service
	enableTestLogin bool
}

type Options func(*Server)

// WithTestLogin exposes POST /login, which issues a token for any posted user
// without credentials. Development and test use only.
func WithTestLogin(enabled bool) Options {
	return func(s *Server) {
		s.enableTestLogin = enabled
	}
}

func New(uc interfaces.BookUsecases, tokenSvc *token.Service, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		tokenSvc: tokenSvc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)

	r.Get("/", landingHandler())

	if s.enableTestLogin {
		r.Post("/login", loginHandler(tokenSvc))
	}

	r.Route("/books", func(r chi.Router) {
		r.Use(authMiddleware(s.tokenSvc))

		r.Post("/", createBookHandler(uc))
		r.Get("/", listBooksHandler(uc))
		r.Get("/{bookID}", getBookHandler(uc))
		r.Delete("/{bookID}", deleteBookHandler(uc))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func landingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte(`{"message": "Welcome to book-library"}`))
	}
}
