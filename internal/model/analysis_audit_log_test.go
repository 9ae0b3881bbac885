package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapValue(t *testing.T) {
	v, err := JSONMap{"tokens": 3}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"tokens":3}`, string(v.([]byte)))

	v, err = JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestJSONMapScan(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"cycles":2}`)))
	assert.Equal(t, float64(2), m["cycles"])

	require.NoError(t, m.Scan(`{"errors":0}`))
	assert.Equal(t, float64(0), m["errors"])

	require.NoError(t, m.Scan(nil))
	assert.Empty(t, m)

	assert.Error(t, m.Scan(42))
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "analysis_audit_logs", AnalysisAuditLog{}.TableName())
}
