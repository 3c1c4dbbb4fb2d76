package main

import (
	"encoding/json"
	"net/http"
	"time"
)

func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "ok",
		"database":  "connected",
		"timestamp": time.Now(),
	}
	code := http.StatusOK
	if err := app.db.PingContext(r.Context()); err != nil {
		status["status"] = "error"
		status["database"] = "disconnected"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
