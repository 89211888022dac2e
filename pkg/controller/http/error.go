package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/errs"
	"github.com/valtteripyyhtia/book-library/pkg/utils/logging"
)

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.From(r.Context())

	switch {
	case goerr.HasTag(err, errs.TagNotFound):
		logger.Warn("Not Found", "error", err)
		http.Error(w, err.Error(), http.StatusNotFound)

	case goerr.HasTag(err, errs.TagValidation), goerr.HasTag(err, errs.TagInvalidRequest):
		logger.Warn("Bad Request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)

	case goerr.HasTag(err, errs.TagUnauthorized):
		unauthorized(w, r, err)

	case goerr.HasTag(err, errs.TagDatabase), goerr.HasTag(err, errs.TagInternal):
		errs.Handle(r.Context(), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

	default:
		errs.Handle(r.Context(), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
