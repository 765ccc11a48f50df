package services

import (
	"context"
	"testing"
	"time"

	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestHashPassword_Verify(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
	assert.False(t, VerifyPassword("password123", "not-a-hash"))
}

func testIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", "HS256", time.Hour)
	require.NoError(t, err)
	return issuer
}

func userDoc(id, email, passwordHash string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "email", Value: email},
		{Key: "password_hash", Value: passwordHash},
		{Key: "name", Value: "Test User"},
		{Key: "created_at", Value: time.Now().UTC()},
		{Key: "subscription_tier", Value: "free"},
	}
}

func TestAuthService_Register(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowfunnels.users", mtest.FirstBatch,
			userDoc("u1", "taken@example.com", "hash")))

		svc := NewAuthService(mt.DB, testIssuer(mt.T))
		_, err := svc.Register(context.Background(), "taken@example.com", "password123", "Someone")
		assert.ErrorIs(mt.T, err, apperr.ErrDuplicate)
	})

	mt.Run("success returns verifiable token", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "flowfunnels.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		issuer := testIssuer(mt.T)
		svc := NewAuthService(mt.DB, issuer)
		token, err := svc.Register(context.Background(), "new@example.com", "password123", "Someone")
		require.NoError(mt.T, err)

		sub, err := issuer.Verify(token)
		require.NoError(mt.T, err)
		assert.NotEmpty(mt.T, sub)
	})
}

func TestAuthService_Login(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	hash, err := HashPassword("password123")
	require.NoError(t, err)

	mt.Run("unknown email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowfunnels.users", mtest.FirstBatch))

		svc := NewAuthService(mt.DB, testIssuer(mt.T))
		_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
		assert.ErrorIs(mt.T, err, apperr.ErrUnauthenticated)
	})

	mt.Run("wrong password", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowfunnels.users", mtest.FirstBatch,
			userDoc("u1", "user@example.com", hash)))

		svc := NewAuthService(mt.DB, testIssuer(mt.T))
		_, err := svc.Login(context.Background(), "user@example.com", "wrong-password")
		assert.ErrorIs(mt.T, err, apperr.ErrUnauthenticated)
	})

	mt.Run("success token carries user id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowfunnels.users", mtest.FirstBatch,
			userDoc("u1", "user@example.com", hash)))

		issuer := testIssuer(mt.T)
		svc := NewAuthService(mt.DB, issuer)
		token, err := svc.Login(context.Background(), "user@example.com", "password123")
		require.NoError(mt.T, err)

		sub, err := issuer.Verify(token)
		require.NoError(mt.T, err)
		assert.Equal(mt.T, "u1", sub)
	})
}

func TestAuthService_Profile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowfunnels.users", mtest.FirstBatch))

		svc := NewAuthService(mt.DB, testIssuer(mt.T))
		_, err := svc.Profile(context.Background(), "ghost")
		assert.ErrorIs(mt.T, err, apperr.ErrNotFound)
	})

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowfunnels.users", mtest.FirstBatch,
			userDoc("u1", "user@example.com", "hash")))

		svc := NewAuthService(mt.DB, testIssuer(mt.T))
		user, err := svc.Profile(context.Background(), "u1")
		require.NoError(mt.T, err)
		assert.Equal(mt.T, "user@example.com", user.Email)
		assert.Equal(mt.T, "free", user.SubscriptionTier)
	})
}
