package handle

import (
	"context"
	"errors"
	"net/http"

	"grader-bot/api/internal/store"
)

// Debug exposes read-only lookups against the session store for operators.
type Debug struct {
	Sessions *store.SessionStore
}

func NewDebug(s *store.SessionStore) *Debug { return &Debug{Sessions: s} }

// GetAnswerKey serves GET /getAnswerKey?exercise_id=<id>.
func (h *Debug) GetAnswerKey(w http.ResponseWriter, r *http.Request) {
	h.serveJSON(w, r, h.Sessions.RawAnswerKey)
}

// GetSubmissions serves GET /getSubmissions?exercise_id=<id>.
func (h *Debug) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	h.serveJSON(w, r, h.Sessions.RawSubmissions)
}

func (h *Debug) serveJSON(w http.ResponseWriter, r *http.Request,
	lookup func(ctx context.Context, id string) (string, error),
) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("exercise_id")
	if id == "" {
		http.Error(w, "exercise_id is required", http.StatusBadRequest)
		return
	}
	if h.Sessions.Degraded() {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	js, err := lookup(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(js))
}
