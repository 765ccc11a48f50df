package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/db"
	"github.com/flowfunnels/flowfunnels-api/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type AuthService struct {
	users  *mongo.Collection
	tokens *TokenIssuer
}

func NewAuthService(database *mongo.Database, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		users:  database.Collection(db.UsersCollection),
		tokens: tokens,
	}
}

// Register creates a new user and returns a signed access token.
// Email uniqueness is checked at the application layer.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, error) {
	var existing models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return "", fmt.Errorf("%w: email already registered", apperr.ErrDuplicate)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:               uuid.NewString(),
		Email:            email,
		PasswordHash:     hashed,
		Name:             name,
		CreatedAt:        time.Now().UTC(),
		SubscriptionTier: "free",
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID)
}

// Login authenticates a user and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return "", fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthenticated)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthenticated)
	}

	return s.tokens.Issue(user.ID)
}

// Profile returns the caller's user document.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}
	return user, nil
}
