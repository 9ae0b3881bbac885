package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaMatchesAuditModel(t *testing.T) {
	table := schema[1]

	for _, column := range []string{
		"id", "timestamp", "operation", "success", "source_bytes", "source_digest",
		"duration_ms", "cache_hit", "stats", "error_message", "request_id",
		"client_ip", "user_agent", "created_at", "updated_at",
	} {
		assert.Contains(t, table, "\t"+column+" ", column)
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	for _, stmt := range schema {
		assert.True(t, strings.Contains(stmt, "IF NOT EXISTS"), stmt)
	}
}

func TestOpenDoesNotConnect(t *testing.T) {
	db, err := Open("host=127.0.0.1 port=1 sslmode=disable")
	if assert.NoError(t, err) {
		db.Close()
	}
}
