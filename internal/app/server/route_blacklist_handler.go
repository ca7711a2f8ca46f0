package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"shrike/internal/api/dto"
	"shrike/internal/auth"
	"shrike/internal/database"
	"shrike/internal/domain"
)

func createBlacklistRecord(w http.ResponseWriter, r *http.Request) {
	operatorID, err := auth.GetOperatorIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var request dto.BlacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if !domain.IsValidBlacklistType(request.Type) {
		writeError(w, "Invalid blacklist type", http.StatusBadRequest)
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

	record := domain.BlacklistRecord{
		EntityID:  entity.ID,
		Type:      request.Type,
		ExpiresAt: request.ExpiresAt,
	}

	if request.EvidenceUUID != "" {
		evidence, err := database.GetEvidenceByUUID(r.Context(), request.EvidenceUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				writeError(w, "Evidence not found", http.StatusNotFound)
				return
			}
			writeError(w, "Failed to query database", http.StatusInternalServerError)
			return
		}
		if evidence.EntityID != entity.ID {
			writeError(w, "Evidence belongs to a different entity", http.StatusBadRequest)
			return
		}
		record.EvidenceID = &evidence.ID
	}

	if err := database.CreateBlacklistRecord(r.Context(), &record); err != nil {
		writeError(w, "Failed to create blacklist record", http.StatusInternalServerError)
		return
	}

	database.AppendAuditLog(r.Context(), entity.ID, operatorID, "blacklist.create", record.Type)

	writeJSON(w, http.StatusCreated, record)
}

func liftBlacklistRecord(w http.ResponseWriter, r *http.Request) {
	operatorID, err := auth.GetOperatorIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	uuid := r.PathValue("uuid")

	entity, err := database.GetBlacklistRecordEntity(r.Context(), uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, "Blacklist record not found", http.StatusNotFound)
			return
		}
		writeError(w, "Failed to query database", http.StatusInternalServerError)
		return
	}

	record, err := database.LiftBlacklistRecord(r.Context(), uuid, operatorID)
	if err != nil {
		writeError(w, "Failed to lift blacklist record", http.StatusInternalServerError)
		return
	}

	database.AppendAuditLog(r.Context(), entity.ID, operatorID, "blacklist.lift", record.Type)

	writeJSON(w, http.StatusOK, record)
}
