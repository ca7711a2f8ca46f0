package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shrike/internal/api/dto"
	"shrike/internal/auth"
	"shrike/internal/config"
	"shrike/internal/scan"
)

func scanContent(w http.ResponseWriter, r *http.Request) {
	var request dto.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	cfg := config.GetConfig()
	if max := cfg.Scanner.MaxContentSize; max > 0 && len(request.Text) > int(max) {
		writeError(w, "Content too large", http.StatusRequestEntityTooLarge)
		return
	}

	// Confidential evidence is only surfaced to admins.
	role, err := auth.GetRoleFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	includeConfidential := role == "admin"

	ctx := r.Context()
	if timeout := cfg.Scanner.LookupTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	entities, err := scanEngine.ScanContent(ctx, request.Text, includeConfidential)
	if err != nil {
		if errors.Is(err, scan.ErrStoreUnavailable) {
			writeError(w, "Registry temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		writeError(w, "Scan failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entities)
}
