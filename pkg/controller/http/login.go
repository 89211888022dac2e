package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/errs"
	"github.com/valtteripyyhtia/book-library/pkg/service/token"
)

type loginRequest struct {
	User string `json:"user"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// loginHandler issues a token for the posted user with no credential check.
// The route is only mounted when test login is explicitly enabled.
func loginHandler(tokenSvc *token.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(err, "failed to decode request body",
				goerr.T(errs.TagInvalidRequest),
			))
			return
		}

		if req.User == "" {
			handleError(w, r, goerr.New("empty user", goerr.T(errs.TagInvalidRequest)))
			return
		}

		tok, err := tokenSvc.Issue(r.Context(), req.User)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, loginResponse{Token: tok})
	}
}
