package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/sluice/pkg/domain"
)

// Inspector is the slice of the engine the debug server needs: a detached,
// serializable view of the scope tree. Taking the tree snapshot is only safe
// between digests; the handler assumes the caller respects that.
type Inspector interface {
	Inspect() domain.ScopeInfo
}

// NewHandler creates the debug HTTP handler: tree introspection, health and
// Prometheus metrics.
func NewHandler(engine Inspector) http.Handler {
	r := chi.NewRouter()

	r.Get("/tree", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(engine.Inspect()); err != nil {
			slog.Error("Failed to encode tree snapshot", "error", err)
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
