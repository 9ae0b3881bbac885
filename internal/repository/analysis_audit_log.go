package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/ciclo/internal/domain"
	"github.com/dangerclosesec/ciclo/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisAuditLogRepositoryIface interface {
	Create(ctx context.Context, log *model.AnalysisAuditLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AnalysisAuditLog, error)
	Query(ctx context.Context, params QueryParams) ([]model.AnalysisAuditLog, int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AnalysisAuditLogRepository handles database operations for analysis audit logs
type AnalysisAuditLogRepository struct {
	db *gorm.DB
}

// NewAnalysisAuditLogRepository creates a new AnalysisAuditLogRepository
func NewAnalysisAuditLogRepository(db *gorm.DB) *AnalysisAuditLogRepository {
	return &AnalysisAuditLogRepository{
		db: db,
	}
}

// Create inserts a new audit log entry
func (r *AnalysisAuditLogRepository) Create(ctx context.Context, log *model.AnalysisAuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).Create(log)
	if result.Error != nil {
		return fmt.Errorf("failed to create analysis audit log: %w", result.Error)
	}

	return nil
}

// FindByID retrieves an audit log entry by its ID
func (r *AnalysisAuditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AnalysisAuditLog, error) {
	var log model.AnalysisAuditLog
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&log)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAuditLogNotFound
		}
		return nil, fmt.Errorf("failed to find analysis audit log: %w", result.Error)
	}

	return &log, nil
}

// QueryParams holds parameters for querying audit logs
type QueryParams struct {
	Operation string
	Success   *bool
	CacheHit  *bool
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// DefaultQueryLimit caps a query that does not set its own limit
const DefaultQueryLimit = 100

// Query retrieves audit logs based on the provided query parameters
func (r *AnalysisAuditLogRepository) Query(ctx context.Context, params QueryParams) ([]model.AnalysisAuditLog, int64, error) {
	var logs []model.AnalysisAuditLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.AnalysisAuditLog{})

	// Apply filters
	if params.Operation != "" {
		query = query.Where("operation = ?", params.Operation)
	}
	if params.Success != nil {
		query = query.Where("success = ?", *params.Success)
	}
	if params.CacheHit != nil {
		query = query.Where("cache_hit = ?", *params.CacheHit)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	// Get total count for pagination
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count analysis audit logs: %w", err)
	}

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	} else {
		query = query.Limit(DefaultQueryLimit)
	}

	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	result := query.Order("timestamp DESC").Find(&logs)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to query analysis audit logs: %w", result.Error)
	}

	return logs, count, nil
}

// DeleteBefore removes every entry older than cutoff inside one transaction
// and reports how many were removed
func (r *AnalysisAuditLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	db := r.db.WithContext(ctx).Begin()
	if db.Error != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", db.Error)
	}
	tx := &gormTransaction{tx: db}

	result := db.Where("timestamp < ?", cutoff).Delete(&model.AnalysisAuditLog{})
	if result.Error != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to delete analysis audit logs: %w", result.Error)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit audit log deletion: %w", err)
	}

	return result.RowsAffected, nil
}
