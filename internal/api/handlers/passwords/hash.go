package passwords

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/pwstrength/internal/api/apperr"
	"github.com/5w1tchy/pwstrength/internal/api/httpx"
	"github.com/5w1tchy/pwstrength/internal/security/password"
	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/5w1tchy/pwstrength/internal/strength"
)

type hashResponse struct {
	Hash       string              `json:"hash"`
	Assessment strength.Assessment `json:"assessment"`
}

// POST /v1/passwords/hash
func (h *Handler) Hash(w http.ResponseWriter, r *http.Request) {
	pwd, err := decodePassword(r)
	if err != nil {
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", badBody(err))
		return
	}

	phc, a, err := h.Policy.HashIfAccepted(pwd)
	h.observe(a, assessments.SourceHash)
	switch {
	case errors.Is(err, password.ErrTooWeak):
		h.countHash("rejected")
		apperr.Write(w, r, apperr.Problem{
			Status:      http.StatusUnprocessableEntity,
			Title:       "Unprocessable Entity",
			Detail:      "password rated " + a.Strength.String(),
			FieldErrors: []apperr.FieldError{{Field: "password", Code: "weak", Message: "password is too weak"}},
			Suggestions: a.Suggestions,
		})
		return
	case err != nil:
		h.countHash("error")
		h.Log.Error().Err(err).Msg("hash failed")
		apperr.WriteStatus(w, r, http.StatusInternalServerError, "Internal Server Error", "hash failed")
		return
	}

	h.countHash("accepted")
	httpx.OK(w, hashResponse{Hash: phc, Assessment: a})
}
