package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"shrike/internal/auth"
	"shrike/internal/scan"
)

// scanEngine is shared by every request; it is set once before the server
// starts accepting connections.
var scanEngine *scan.Engine

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*") // Allow any origin
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func OpenRoutes(port int, engine *scan.Engine) error {
	scanEngine = engine

	router := http.NewServeMux()
	router.HandleFunc("POST /register", registerOperator)
	router.HandleFunc("POST /login", loginOperator)
	router.Handle("GET /checkLogin", auth.RequireAuth(http.HandlerFunc(checkLogin)))

	router.Handle("POST /scan", auth.RequireAuth(http.HandlerFunc(scanContent)))

	router.Handle("POST /entities", auth.RequireAuth(http.HandlerFunc(createEntity)))
	router.Handle("GET /entities/{uuid}", auth.RequireAuth(http.HandlerFunc(getEntity)))
	router.Handle("DELETE /entities/{uuid}", auth.IsAdmin(http.HandlerFunc(deleteEntity)))

	router.Handle("POST /blacklist", auth.RequireAuth(http.HandlerFunc(createBlacklistRecord)))
	router.Handle("POST /blacklist/{uuid}/lift", auth.RequireAuth(http.HandlerFunc(liftBlacklistRecord)))

	router.Handle("POST /evidence", auth.RequireAuth(http.HandlerFunc(createEvidence)))
	router.Handle("GET /auditLogs/{uuid}", auth.RequireAuth(http.HandlerFunc(getAuditLogs)))

	router.Handle("GET /global/settings", auth.IsAdmin(http.HandlerFunc(getGlobalSettings)))
	router.Handle("POST /saveSettings", auth.IsAdmin(http.HandlerFunc(saveSettings)))
	router.HandleFunc("GET /version", getVersion)

	log.Debug("Routes opened")

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: enableCORS(router),
	}

	log.Infof("Starting shrike registry on port :%d", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
