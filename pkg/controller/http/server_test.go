package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/valtteripyyhtia/book-library/pkg/controller/http"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/book"
	"github.com/valtteripyyhtia/book-library/pkg/repository"
	"github.com/valtteripyyhtia/book-library/pkg/service/token"
	"github.com/valtteripyyhtia/book-library/pkg/usecase"
)

const (
	user1 = "user1@example.com"
	user2 = "user2@example.com"
)

type testServer struct {
	srv      *server.Server
	repo     *repository.Memory
	tokenSvc *token.Service
}

func newTestServer(t *testing.T, opts ...server.Options) *testServer {
	t.Helper()

	repo := repository.NewMemory()
	tokenSvc := token.New([]byte("test-secret"))
	uc := usecase.New(usecase.WithRepository(repo))

	return &testServer{
		srv:      server.New(uc, tokenSvc, opts...),
		repo:     repo,
		tokenSvc: tokenSvc,
	}
}

func (x *testServer) bearer(t *testing.T, sub string) string {
	t.Helper()
	raw, err := x.tokenSvc.Issue(context.Background(), sub)
	gt.NoError(t, err)
	return "Bearer " + raw
}

func (x *testServer) do(method, path, auth string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	x.srv.ServeHTTP(rec, req)
	return rec
}

func (x *testServer) createBook(t *testing.T, sub, name string) *book.Book {
	t.Helper()

	rec := x.do(http.MethodPost, "/books", x.bearer(t, sub), `{"name": "`+name+`"}`)
	gt.Equal(t, rec.Code, http.StatusCreated)

	var b book.Book
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
	return &b
}

func TestCreateBook(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/books", ts.bearer(t, user1), `{"name": "My best book"}`)
	gt.Equal(t, rec.Code, http.StatusCreated)

	var b book.Book
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
	gt.Equal(t, b.Name, "My best book")
	gt.Equal(t, b.User, user1)
	gt.NoError(t, b.ID.Validate())

	t.Run("empty name is a bad request", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/books", ts.bearer(t, user1), `{"name": ""}`)
		gt.Equal(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("broken body is a bad request", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/books", ts.bearer(t, user1), `{`)
		gt.Equal(t, rec.Code, http.StatusBadRequest)
	})
}

func TestListBooks(t *testing.T) {
	ts := newTestServer(t)

	ts.createBook(t, user1, "user1 book A")
	ts.createBook(t, user1, "user1 book B")
	ts.createBook(t, user2, "user2 book A")
	ts.createBook(t, user2, "user2 book B")
	ts.createBook(t, user2, "user2 book C")

	// An unowned record inserted outside the authenticated path
	orphan, err := book.New(t.Context(), "Orphan book", "")
	gt.NoError(t, err)
	gt.NoError(t, ts.repo.PutBook(t.Context(), orphan))

	rec := ts.do(http.MethodGet, "/books", ts.bearer(t, user1), "")
	gt.Equal(t, rec.Code, http.StatusOK)

	var books []*book.Book
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(&books))
	gt.Equal(t, len(books), 2)
	for _, b := range books {
		gt.Value(t, b.User).Equal(user1)
	}

	t.Run("empty listing is an empty array", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/books", ts.bearer(t, "user3@example.com"), "")
		gt.Equal(t, rec.Code, http.StatusOK)
		gt.Equal(t, strings.TrimSpace(rec.Body.String()), "[]")
	})
}

func TestGetBook(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createBook(t, user1, "My best book")

	t.Run("owner can fetch by ID", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/books/"+created.ID.String(), ts.bearer(t, user1), "")
		gt.Equal(t, rec.Code, http.StatusOK)

		var b book.Book
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
		gt.Value(t, b.ID).Equal(created.ID)
		gt.Equal(t, b.Name, "My best book")
	})

	t.Run("foreign and unknown IDs look identical", func(t *testing.T) {
		foreign := ts.do(http.MethodGet, "/books/"+created.ID.String(), ts.bearer(t, user2), "")
		unknown := ts.do(http.MethodGet, "/books/0195c2a2-0000-7000-8000-000000000000", ts.bearer(t, user2), "")

		gt.Equal(t, foreign.Code, http.StatusNotFound)
		gt.Equal(t, unknown.Code, http.StatusNotFound)
		gt.Equal(t, foreign.Body.String(), unknown.Body.String())
	})
}

func TestDeleteBook(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createBook(t, user1, "My best book")

	t.Run("other subjects cannot delete", func(t *testing.T) {
		rec := ts.do(http.MethodDelete, "/books/"+created.ID.String(), ts.bearer(t, user2), "")
		gt.Equal(t, rec.Code, http.StatusNotFound)

		// The book is still there for its owner
		rec = ts.do(http.MethodGet, "/books/"+created.ID.String(), ts.bearer(t, user1), "")
		gt.Equal(t, rec.Code, http.StatusOK)
	})

	t.Run("owner delete succeeds once", func(t *testing.T) {
		rec := ts.do(http.MethodDelete, "/books/"+created.ID.String(), ts.bearer(t, user1), "")
		gt.Equal(t, rec.Code, http.StatusOK)
		gt.Equal(t, strings.TrimSpace(rec.Body.String()), `{"success": true}`)

		rec = ts.do(http.MethodDelete, "/books/"+created.ID.String(), ts.bearer(t, user1), "")
		gt.Equal(t, rec.Code, http.StatusNotFound)
	})
}

func TestAuthentication(t *testing.T) {
	ts := newTestServer(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/books"},
		{http.MethodGet, "/books"},
		{http.MethodGet, "/books/some-id"},
		{http.MethodDelete, "/books/some-id"},
	}

	t.Run("missing authorization header", func(t *testing.T) {
		for _, route := range protected {
			rec := ts.do(route.method, route.path, "", "")
			gt.Equal(t, rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		raw, err := ts.tokenSvc.Issue(context.Background(), user1, token.WithSigningSecret([]byte("wrong-secret")))
		gt.NoError(t, err)

		for _, route := range protected {
			rec := ts.do(route.method, route.path, "Bearer "+raw, "")
			gt.Equal(t, rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/books", "Bearer garbage", "")
		gt.Equal(t, rec.Code, http.StatusUnauthorized)
	})

	t.Run("scheme prefix is case-sensitive", func(t *testing.T) {
		raw, err := ts.tokenSvc.Issue(context.Background(), user1)
		gt.NoError(t, err)

		rec := ts.do(http.MethodGet, "/books", "bearer "+raw, "")
		gt.Equal(t, rec.Code, http.StatusUnauthorized)
	})

	t.Run("all failures share the same response body", func(t *testing.T) {
		missing := ts.do(http.MethodGet, "/books", "", "")

		raw, err := ts.tokenSvc.Issue(context.Background(), user1, token.WithSigningSecret([]byte("wrong-secret")))
		gt.NoError(t, err)
		badSig := ts.do(http.MethodGet, "/books", "Bearer "+raw, "")

		gt.Equal(t, missing.Body.String(), badSig.Body.String())
	})
}

func TestLanding(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/", "", "")
	gt.Equal(t, rec.Code, http.StatusOK)

	var msg map[string]string
	gt.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	gt.Value(t, msg["message"]).NotEqual("")
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/no/such/route", ts.bearer(t, user1), "")
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestTestLogin(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		ts := newTestServer(t)
		rec := ts.do(http.MethodPost, "/login", "", `{"user": "user1@example.com"}`)
		gt.Equal(t, rec.Code, http.StatusNotFound)
	})

	t.Run("enabled login issues a usable token", func(t *testing.T) {
		ts := newTestServer(t, server.WithTestLogin(true))

		rec := ts.do(http.MethodPost, "/login", "", `{"user": "user1@example.com"}`)
		gt.Equal(t, rec.Code, http.StatusOK)

		var resp struct {
			Token string `json:"token"`
		}
		gt.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		gt.Value(t, resp.Token).NotEqual("")

		listed := ts.do(http.MethodGet, "/books", "Bearer "+resp.Token, "")
		gt.Equal(t, listed.Code, http.StatusOK)
	})

	t.Run("empty user is rejected", func(t *testing.T) {
		ts := newTestServer(t, server.WithTestLogin(true))
		rec := ts.do(http.MethodPost, "/login", "", `{"user": ""}`)
		gt.Equal(t, rec.Code, http.StatusBadRequest)
	})
}
