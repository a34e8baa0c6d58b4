package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTServiceRoundTrip(t *testing.T) {
	t.Parallel()
	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()
	_, err := NewJWTService("too-short", time.Hour)
	assert.Error(t, err)
}

func TestJWTServiceExpiredToken(t *testing.T) {
	t.Parallel()
	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	impl := svc.(*hmacJWTService)
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	impl.timeFunc = func() time.Time { return issued }

	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	impl.timeFunc = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTServiceRejectsTamperedToken(t *testing.T) {
	t.Parallel()
	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	other, err := NewJWTService("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)

	token, err := other.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()
	hasher := NewBcryptHasher(bcryptTestCost)

	hashed, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.NoError(t, hasher.Compare(hashed, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(hashed, "wrong password"))
}

// bcryptTestCost keeps the hashing test fast.
const bcryptTestCost = 4
