package http

import (
	"encoding/json"
	"net/http"
)

// Status тело ответа health endpoint
type Status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Handler возвращает HTTP handler для health check endpoint.
// 200 {"status":"ok"} если readiness не указана или возвращает true,
// 503 {"status":"not ready"} если readiness возвращает false.
func Handler(service string, readiness func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if readiness != nil && !readiness() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(Status{Status: "not ready", Service: service})
			return
		}
		_ = json.NewEncoder(w).Encode(Status{Status: "ok", Service: service})
	}
}

// NewRouter возвращает mux с /health
func NewRouter(service string, readiness func() bool) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/health", Handler(service, readiness))
	return mux
}
