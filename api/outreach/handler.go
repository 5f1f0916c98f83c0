package outreach

import (
	"encoding/json"
	"errors"
	"net/http"

	coreoutreach "github.com/freightops/loadmatch/core/outreach"
)

type errorResponse struct {
	Error      string  `json:"error"`
	InvalidIDs []int64 `json:"invalidIds,omitempty"`
}

// NewSendHandler returns an HTTP handler dispatching outreach messages via
// POST /api/freight/outreach/send.
func NewSendHandler(dispatcher *coreoutreach.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req coreoutreach.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if req.CreatedBy == "" {
			req.CreatedBy = r.Header.Get("X-User")
		}

		resp, err := dispatcher.Dispatch(r.Context(), req)
		if err != nil {
			writeDispatchError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func writeDispatchError(w http.ResponseWriter, err error) {
	var capErr *coreoutreach.CapExceededError
	var inelErr *coreoutreach.IneligibleRecipientsError
	switch {
	case errors.Is(err, coreoutreach.ErrConfirmRequired),
		errors.Is(err, coreoutreach.ErrNoValidRecipients),
		errors.Is(err, coreoutreach.ErrEmptyBody):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &capErr):
		writeError(w, http.StatusBadRequest, capErr.Error(), nil)
	case errors.As(err, &inelErr):
		writeError(w, http.StatusBadRequest, inelErr.Error(), inelErr.CarrierIDs)
	case errors.Is(err, coreoutreach.ErrLoadNotFound):
		writeError(w, http.StatusNotFound, "load not found", nil)
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
	}
}

func writeError(w http.ResponseWriter, code int, msg string, invalidIDs []int64) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, InvalidIDs: invalidIDs})
}
