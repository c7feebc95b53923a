package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zvrva/transitline/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Generate(&domain.User{ID: 7, Username: "rider", IsStaff: true})
	assert.NoError(t, err)

	userID, isStaff, err := manager.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.True(t, isStaff)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Generate(&domain.User{ID: 7})
	assert.NoError(t, err)

	_, _, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Generate(&domain.User{ID: 7})
	assert.NoError(t, err)

	_, _, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, _, err := manager.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
