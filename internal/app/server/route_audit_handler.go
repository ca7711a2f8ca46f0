package server

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"shrike/internal/database"
)

func getAuditLogs(w http.ResponseWriter, r *http.Request) {
	entity, err := database.GetEntityByUUID(r.Context(), r.PathValue("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Entity not found", http.StatusNotFound)
			return
		}
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}

	entries, err := database.ListAuditLogs(r.Context(), entity.ID)
	if err != nil {
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
