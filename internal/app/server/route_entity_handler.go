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
	"shrike/internal/scan"
)

func createEntity(w http.ResponseWriter, r *http.Request) {
	operatorID, err := auth.GetOperatorIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request dto.EntityRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	host := strings.TrimSpace(request.Host)
	localID := strings.TrimSpace(request.LocalID)
	if err := scan.ValidateAddress(host, localID); err != nil {
		writeError(w, "Invalid entity address", http.StatusBadRequest)
		return
	}

	entity := domain.Entity{
		Host:    host,
		LocalID: localID,
	}

	if err := database.CreateEntity(r.Context(), &entity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeError(w, "Entity already registered", http.StatusConflict)
			return
		}
		writeError(w, "Failed to create entity", http.StatusInternalServerError)
		return
	}

	database.AppendAuditLog(r.Context(), entity.ID, operatorID, "entity.create", entity.Host)

	writeJSON(w, http.StatusCreated, entity)
}

func getEntity(w http.ResponseWriter, r *http.Request) {
	entity, err := database.GetEntityByUUID(r.Context(), r.PathValue("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Entity not found", http.StatusNotFound)
			return
		}
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

func deleteEntity(w http.ResponseWriter, r *http.Request) {
	operatorID, err := auth.GetOperatorIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	uuid := r.PathValue("uuid")
	entity, err := database.GetEntityByUUID(r.Context(), uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Entity not found", http.StatusNotFound)
			return
		}
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}

	if err := database.DeleteEntityByUUID(r.Context(), uuid); err != nil {
		writeError(w, "Failed to delete entity", http.StatusInternalServerError)
		return
	}

	database.AppendAuditLog(r.Context(), entity.ID, operatorID, "entity.delete", entity.Host)

	w.WriteHeader(http.StatusNoContent)
}
