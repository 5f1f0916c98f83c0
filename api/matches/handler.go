package matches

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/freightops/loadmatch/core/matching"
	"github.com/freightops/loadmatch/core/outreach"
)

// DefaultLimit caps how many matches are returned unless the caller asks
// for fewer.
const DefaultLimit = 15

// NewHandler returns an HTTP handler serving ranked carrier matches via
// GET /api/freight/matches?load_id=N&limit=N.
func NewHandler(engine *matching.Engine, loads outreach.LoadSource) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		loadID, err := strconv.ParseInt(r.URL.Query().Get("load_id"), 10, 64)
		if err != nil || loadID <= 0 {
			http.Error(w, "load_id must be a positive integer", http.StatusBadRequest)
			return
		}
		limit := DefaultLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = v
		}

		load, err := loads.Load(r.Context(), loadID)
		if err != nil {
			if errors.Is(err, outreach.ErrLoadNotFound) {
				http.Error(w, "load not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		result, err := engine.Match(r.Context(), load, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
