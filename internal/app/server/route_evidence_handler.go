package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"shrike/internal/api/dto"
	"shrike/internal/auth"
	"shrike/internal/database"
	"shrike/internal/domain"
)

func createEvidence(w http.ResponseWriter, r *http.Request) {
	operatorID, err := auth.GetOperatorIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request dto.EvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(request.Title) == "" {
		writeError(w, "Title is required", http.StatusBadRequest)
		return
	}

	entity, err := database.GetEntityByUUID(r.Context(), request.EntityUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Entity not found", http.StatusNotFound)
			return
		}
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}

	evidence := domain.Evidence{
		EntityID:     entity.ID,
		Title:        request.Title,
		Description:  request.Description,
		ContentHash:  request.ContentHash,
		Confidential: request.Confidential,
		CreatedByID:  operatorID,
	}

	if err := database.CreateEvidence(r.Context(), &evidence); err != nil {
		writeError(w, "Failed to create evidence", http.StatusInternalServerError)
		return
	}

	database.AppendAuditLog(r.Context(), entity.ID, operatorID, "evidence.create", evidence.Title)

	writeJSON(w, http.StatusCreated, evidence)
}
