package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/interfaces"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/auth"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/errs"
	"github.com/valtteripyyhtia/book-library/pkg/domain/types"
	"github.com/valtteripyyhtia/book-library/pkg/utils/safe"
)

type createBookRequest struct {
	Name string `json:"name"`
}

func createBookHandler(uc interfaces.BookUsecases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := auth.SubFromContext(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		var req createBookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(err, "failed to decode request body",
				goerr.T(errs.TagInvalidRequest),
			))
			return
		}

		b, err := uc.CreateBook(r.Context(), req.Name, sub)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusCreated, b)
	}
}

func listBooksHandler(uc interfaces.BookUsecases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := auth.SubFromContext(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		books, err := uc.ListOwnedBooks(r.Context(), sub)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, books)
	}
}

func getBookHandler(uc interfaces.BookUsecases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := auth.SubFromContext(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		b, err := uc.GetOwnedBook(r.Context(), sub, types.BookID(chi.URLParam(r, "bookID")))
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, b)
	}
}

func deleteBookHandler(uc interfaces.BookUsecases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := auth.SubFromContext(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		if err := uc.DeleteOwnedBook(r.Context(), sub, types.BookID(chi.URLParam(r, "bookID"))); err != nil {
			handleError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte(`{"success": true}`))
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		handleError(w, r, goerr.Wrap(err, "failed to encode response", goerr.T(errs.TagInternal)))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, body)
}
