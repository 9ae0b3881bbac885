package ciclo

import (
	"context"
	"log/slog"
)

// DefaultMaxSourceBytes is the largest source accepted by a Frontend unless
// configured otherwise.
const DefaultMaxSourceBytes = 1 << 20

// Config holds the configuration settings for a Frontend.
type Config struct {
	// ctx is the context for all operations.
	ctx context.Context

	// logger is the logger used for logging messages.
	logger *slog.Logger

	// MaxSourceBytes bounds the size of the source handed to any operation.
	// Zero or negative disables the check.
	MaxSourceBytes int
}

func NewConfig(ctx context.Context) *Config {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Config{
		ctx:            ctx,
		logger:         slog.Default(),
		MaxSourceBytes: DefaultMaxSourceBytes,
	}
}

// SetLogger sets the logger.
func (c *Config) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	c.logger = logger
}

// SetMaxSourceBytes sets the source size limit.
func (c *Config) SetMaxSourceBytes(n int) {
	c.MaxSourceBytes = n
}
