package service

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"files-manager/internal/apperr"
	"files-manager/internal/models"
	"files-manager/internal/repository"
)

type TokenStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByCredentials(ctx context.Context, email, passwordHash string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// AuthService covers sign-in/sign-out sessions and user registration.
type AuthService struct {
	users  UserRepository
	tokens TokenStore
}

func NewAuthService(users UserRepository, tokens TokenStore) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Connect checks a Basic auth header against stored credentials and
// issues a session token.
func (s *AuthService) Connect(ctx context.Context, authHeader string) (string, error) {
	email, password, ok := decodeBasicAuth(authHeader)
	if !ok {
		return "", apperr.Unauthenticated()
	}
	user, err := s.users.FindByCredentials(ctx, email, HashPassword(password))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.Unauthenticated()
		}
		return "", err
	}
	return s.tokens.Issue(ctx, user.ID.Hex())
}

// Disconnect revokes the caller's session. An unresolved token is
// reported as unauthorized, matching the endpoint contract.
func (s *AuthService) Disconnect(ctx context.Context, tok string) error {
	if tok == "" {
		return apperr.Unauthenticated()
	}
	if _, err := s.tokens.Resolve(ctx, tok); err != nil {
		return err
	}
	return s.tokens.Revoke(ctx, tok)
}

// Register creates a user with a SHA-1 password digest, the scheme the
// existing user records use.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, apperr.InvalidArgument("Missing email")
	}
	if password == "" {
		return nil, apperr.InvalidArgument("Missing password")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.InvalidArgument("Already exist")
	}
	u := &models.User{Email: email, Password: HashPassword(password)}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperr.Storage("user insert failed")
	}
	return u, nil
}

// Me returns the user a session token belongs to.
func (s *AuthService) Me(ctx context.Context, tok string) (*models.User, error) {
	if tok == "" {
		return nil, apperr.Unauthenticated()
	}
	raw, err := s.tokens.Resolve(ctx, tok)
	if err != nil {
		return nil, err
	}
	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, apperr.Unauthenticated()
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthenticated()
	}
	return user, nil
}

func HashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

func decodeBasicAuth(header string) (email, password string, ok bool) {
	if !strings.HasPrefix(header, "Basic ") {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return "", "", false
	}
	email, password, ok = strings.Cut(string(raw), ":")
	if !ok || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}
