package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dangerclosesec/ciclo/internal/model"
	"github.com/dangerclosesec/ciclo/internal/repository"
	"github.com/dangerclosesec/ciclo/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AuditLogHandler handles API requests related to analysis audit logs
type AuditLogHandler struct {
	auditLogService *service.AnalysisAuditLogService
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(auditLogService *service.AnalysisAuditLogService) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogService: auditLogService,
	}
}

type AuditLogsResponse struct {
	BaseResponse
	Logs  []model.AnalysisAuditLog `json:"logs"`
	Total int64                    `json:"total"`
}

type AuditLogResponse struct {
	BaseResponse
	Log *model.AnalysisAuditLog `json:"log"`
}

// GetAuditLogs handles requests to retrieve audit logs with filtering
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	params := repository.QueryParams{}
	query := r.URL.Query()

	if operation := query.Get("operation"); operation != "" {
		params.Operation = operation
	}

	if successStr := query.Get("success"); successStr != "" {
		success, err := strconv.ParseBool(successStr)
		if err == nil {
			params.Success = &success
		}
	}

	if cacheHitStr := query.Get("cache_hit"); cacheHitStr != "" {
		cacheHit, err := strconv.ParseBool(cacheHitStr)
		if err == nil {
			params.CacheHit = &cacheHit
		}
	}

	if startTimeStr := query.Get("start_time"); startTimeStr != "" {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err == nil {
			params.StartTime = startTime
		}
	}

	if endTimeStr := query.Get("end_time"); endTimeStr != "" {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err == nil {
			params.EndTime = endTime
		}
	}

	// Pagination
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err == nil && limit > 0 {
			params.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	logs, total, err := h.auditLogService.GetAuditLogs(r.Context(), params)
	if err != nil {
		respondWithDomainError(w, r, "audit_query", err)
		return
	}

	if logs == nil {
		logs = []model.AnalysisAuditLog{}
	}
	respondWithJSON(w, http.StatusOK, AuditLogsResponse{
		BaseResponse: BaseResponse{Ok: true},
		Logs:         logs,
		Total:        total,
	})
}

// GetAuditLogByID handles requests to retrieve a specific audit log by ID
func (h *AuditLogHandler) GetAuditLogByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		respondWithError(w, http.StatusBadRequest, "Missing audit log ID")
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid audit log ID format")
		return
	}

	log, err := h.auditLogService.GetAuditLogByID(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, "audit_get", err)
		return
	}

	respondWithJSON(w, http.StatusOK, AuditLogResponse{BaseResponse: BaseResponse{Ok: true}, Log: log})
}

type PurgeAuditLogsResponse struct {
	BaseResponse
	Removed int64 `json:"removed"`
}

// PurgeAuditLogs deletes entries older than the older_than duration
func (h *AuditLogHandler) PurgeAuditLogs(w http.ResponseWriter, r *http.Request) {
	maxAge, err := time.ParseDuration(r.URL.Query().Get("older_than"))
	if err != nil || maxAge <= 0 {
		respondWithError(w, http.StatusBadRequest, "older_than must be a positive duration")
		return
	}

	removed, err := h.auditLogService.Purge(r.Context(), maxAge)
	if err != nil {
		respondWithDomainError(w, r, "audit_purge", err)
		return
	}

	respondWithJSON(w, http.StatusOK, PurgeAuditLogsResponse{BaseResponse: BaseResponse{Ok: true}, Removed: removed})
}
