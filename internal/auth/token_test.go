package auth

import (
	"testing"
	"time"

	"go-gin-ticket-store/internal/model"
	apperrors "go-gin-ticket-store/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	user := &model.User{ID: 42, Email: "alice@test.com", Role: model.RoleOrganizer}

	tokenString, err := manager.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	authUser, err := manager.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, 42, authUser.UserID)
	assert.Equal(t, "alice@test.com", authUser.Email)
	assert.Equal(t, model.RoleOrganizer, authUser.Role)
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	tokenString, err := issuer.Issue(&model.User{ID: 1, Email: "bob@test.com", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Parse(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_Parse_Expired(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	tokenString, err := manager.Issue(&model.User{ID: 1, Email: "bob@test.com", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = manager.Parse(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_Parse_Garbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.Parse("not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_Parse_EmptyRoleDefaultsToUser(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	tokenString, err := manager.Issue(&model.User{ID: 7, Email: "carol@test.com"})
	require.NoError(t, err)

	authUser, err := manager.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, authUser.Role)
}
