package handlers

import (
	"encoding/json"
	"net/http"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"service": "socialCPT"})
}

// HealthHandler - liveness-проверка, без обращения к зависимостям
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, HealthResponse{Status: "ok"}, http.StatusOK)
}

type Pinger interface {
	HealthCheck() error
}

// DBHealthHandler дополнительно проверяет доступность БД
func DBHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
			return
		}
		WriteSuccess(w, HealthResponse{Status: "ok"}, http.StatusOK)
	}
}

func (h *Handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}
