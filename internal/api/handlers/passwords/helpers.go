package passwords

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/5w1tchy/pwstrength/internal/strength"
	"github.com/5w1tchy/pwstrength/internal/store/assessments"
)

var errMissingPassword = errors.New(`"password" is required`)

type passwordBody struct {
	Password *string `json:"password"`
}

// decodePassword reads {"password": "..."}. An empty string is a valid
// password; a missing field is not.
func decodePassword(r *http.Request) (string, error) {
	defer r.Body.Close()

	var body passwordBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return "", err
	}
	if dec.Decode(&struct{}{}) != io.EOF {
		return "", errors.New("body must contain a single JSON object")
	}
	if body.Password == nil {
		return "", errMissingPassword
	}
	return *body.Password, nil
}

func badBody(err error) string {
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		return "request body too large"
	case errors.Is(err, errMissingPassword):
		return err.Error()
	default:
		return "invalid JSON"
	}
}

// observe counts the assessment and queues a record of it.
func (h *Handler) observe(a strength.Assessment, src assessments.Source) {
	h.Metrics.ObserveAssessment(a.Strength.String(), a.Codes)
	if h.Rec == nil {
		return
	}
	if !h.Rec.Enqueue(assessments.NewRecord(a, src)) {
		if h.Metrics != nil {
			h.Metrics.RecorderDropped.Inc()
		}
		h.Log.Debug().Str("source", string(src)).Msg("assessment record dropped")
	}
}

func (h *Handler) countHash(outcome string) {
	if h.Metrics != nil {
		h.Metrics.HashRequests.WithLabelValues(outcome).Inc()
	}
}
