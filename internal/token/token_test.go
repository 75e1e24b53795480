package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("secret", time.Hour, "task-manager")

	signed, err := m.Issue("user-1", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "task-manager", claims.Issuer)
}

func TestVerify_ExpiredToken(t *testing.T) {
	m := NewManager("secret", -time.Minute, "task-manager")

	signed, err := m.Issue("user-1", models.RoleMember)
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	m := NewManager("secret", time.Hour, "task-manager")
	other := NewManager("different", time.Hour, "task-manager")

	signed, err := m.Issue("user-1", models.RoleMember)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager("secret", time.Hour, "task-manager")
	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
