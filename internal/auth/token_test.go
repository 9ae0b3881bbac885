package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test_secret", time.Hour)

	token, err := tm.Generate("ops", RoleAdmin)
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateRejects(t *testing.T) {
	tm := NewTokenManager("test_secret", time.Hour)

	other, err := NewTokenManager("other_secret", time.Hour).Generate("ops", RoleAdmin)
	require.NoError(t, err)
	_, err = tm.Validate(other)
	assert.Error(t, err)

	expired, err := NewTokenManager("test_secret", -time.Minute).Generate("ops", RoleAdmin)
	require.NoError(t, err)
	_, err = tm.Validate(expired)
	assert.Error(t, err)

	_, err = tm.Validate("not-a-token")
	assert.Error(t, err)
}
