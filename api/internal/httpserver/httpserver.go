package httpserver

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"grader-bot/api/internal/handle"
)

// Register wires the health and debug endpoints onto the default mux. The
// default mux is deliberate: tgbotapi's ListenForWebhook registers there too.
func Register(db *sql.DB, debug *handle.Debug) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	})
	http.HandleFunc("/getAnswerKey", debug.GetAnswerKey)
	http.HandleFunc("/getSubmissions", debug.GetSubmissions)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("telegram grading bot"))
	})
}
