package passwords

import (
	"net/http"

	"github.com/5w1tchy/pwstrength/internal/api/apperr"
	"github.com/5w1tchy/pwstrength/internal/api/httpx"
	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/5w1tchy/pwstrength/internal/strength"
)

// POST /v1/strength
func (h *Handler) Strength(w http.ResponseWriter, r *http.Request) {
	pwd, err := decodePassword(r)
	if err != nil {
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", badBody(err))
		return
	}

	a := strength.Check(pwd)
	h.observe(a, assessments.SourceAPI)
	httpx.OK(w, a)
}
