// internal/domain/errors.go
package domain

import (
	"errors"

	"github.com/dangerclosesec/ciclo"
)

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Analysis-related errors
	ErrSourceTooLarge = ciclo.ErrSourceTooLarge
	ErrSyntax         = errors.New("syntax error")
	ErrUnknownOp      = errors.New("unknown operation")

	// Audit-related errors
	ErrAuditLogNotFound = errors.New("audit log not found")
)
