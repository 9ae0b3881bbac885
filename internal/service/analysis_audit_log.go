package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dangerclosesec/ciclo/internal/audit"
	"github.com/dangerclosesec/ciclo/internal/model"
	"github.com/dangerclosesec/ciclo/internal/repository"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Ensure AnalysisAuditLogService implements the audit.Logger interface
var _ audit.Logger = (*AnalysisAuditLogService)(nil)

// AnalysisAuditLogService handles operations related to analysis audit logs
type AnalysisAuditLogService struct {
	repo repository.AnalysisAuditLogRepositoryIface
}

// NewAnalysisAuditLogService creates a new AnalysisAuditLogService
func NewAnalysisAuditLogService(repo repository.AnalysisAuditLogRepositoryIface) *AnalysisAuditLogService {
	return &AnalysisAuditLogService{
		repo: repo,
	}
}

// LogAnalysis stores one audit entry
func (s *AnalysisAuditLogService) LogAnalysis(ctx context.Context, entry audit.Entry, req *http.Request) error {
	log := &model.AnalysisAuditLog{
		Operation:    entry.Operation,
		Success:      entry.Success,
		SourceBytes:  entry.SourceBytes,
		SourceDigest: entry.SourceDigest,
		DurationMS:   entry.Duration.Milliseconds(),
		CacheHit:     entry.CacheHit,
		Stats:        model.JSONMap(entry.Stats),
		ErrorMessage: entry.Error,
		Timestamp:    time.Now().UTC(),
	}

	if req != nil {
		log.RequestID = middleware.GetReqID(ctx)
		log.ClientIP = req.RemoteAddr
		log.UserAgent = req.UserAgent()
	}

	return s.repo.Create(ctx, log)
}

// GetAuditLogs retrieves audit logs based on query parameters
func (s *AnalysisAuditLogService) GetAuditLogs(
	ctx context.Context,
	params repository.QueryParams,
) ([]model.AnalysisAuditLog, int64, error) {
	return s.repo.Query(ctx, params)
}

// GetAuditLogByID retrieves an audit log by ID
func (s *AnalysisAuditLogService) GetAuditLogByID(
	ctx context.Context,
	id uuid.UUID,
) (*model.AnalysisAuditLog, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log by ID: %w", err)
	}

	return log, nil
}

// Purge removes audit logs older than maxAge
func (s *AnalysisAuditLogService) Purge(ctx context.Context, maxAge time.Duration) (int64, error) {
	removed, err := s.repo.DeleteBefore(ctx, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("failed to purge audit logs: %w", err)
	}
	return removed, nil
}
