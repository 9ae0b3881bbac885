package audit

import (
	"context"
	"net/http"
	"time"
)

// Entry describes one completed front end operation
type Entry struct {
	Operation    string
	Success      bool
	SourceBytes  int
	SourceDigest string
	Duration     time.Duration
	CacheHit     bool
	Stats        map[string]interface{}
	Error        string
}

// Logger defines the interface for auditing operations
type Logger interface {
	// LogAnalysis records an operation run on behalf of req. req may be nil.
	LogAnalysis(ctx context.Context, entry Entry, req *http.Request) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogAnalysis implements Logger.LogAnalysis
func (l *NoOpLogger) LogAnalysis(ctx context.Context, entry Entry, req *http.Request) error {
	return nil
}
