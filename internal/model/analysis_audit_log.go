package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AnalysisAuditLog records one run of a front end operation. The source text
// itself is never stored, only its size and digest.
type AnalysisAuditLog struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Timestamp    time.Time `json:"timestamp" gorm:"default:CURRENT_TIMESTAMP"`
	Operation    string    `json:"operation"`
	Success      bool      `json:"success"`
	SourceBytes  int       `json:"source_bytes"`
	SourceDigest string    `json:"source_digest"`
	DurationMS   int64     `json:"duration_ms"`
	CacheHit     bool      `json:"cache_hit"`
	Stats        JSONMap   `json:"stats" gorm:"type:jsonb"`
	ErrorMessage string    `json:"error_message,omitempty"`
	RequestID    string    `json:"request_id"`
	ClientIP     string    `json:"client_ip"`
	UserAgent    string    `json:"user_agent"`
	CreatedAt    time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for AnalysisAuditLog
func (AnalysisAuditLog) TableName() string {
	return "analysis_audit_logs"
}

// JSONMap represents a generic map stored as JSONB in the database
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}

// Operations recorded in the audit log
const (
	OperationTokenize = "tokenize"
	OperationParse    = "parse"
	OperationValidate = "validate"
	OperationOptimize = "optimize"
	OperationConvert  = "convert"
	OperationPrefix   = "prefix"
)

// Operations lists every auditable operation
var Operations = []string{
	OperationTokenize,
	OperationParse,
	OperationValidate,
	OperationOptimize,
	OperationConvert,
	OperationPrefix,
}
