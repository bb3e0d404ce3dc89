package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"files-manager/internal/apperr"
	"files-manager/internal/models"
	"files-manager/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	u.ID = primitive.NewObjectID()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByCredentials(_ context.Context, email, passwordHash string) (*models.User, error) {
	if u, ok := r.byEmail[email]; ok && u.Password == passwordHash {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type fakeTokenStore struct {
	sessions map[string]string
	next     int
}

func (s *fakeTokenStore) Issue(_ context.Context, userID string) (string, error) {
	s.next++
	tok := "tok-" + userID[:4] + "-" + string(rune('a'+s.next))
	s.sessions[tok] = userID
	return tok, nil
}

func (s *fakeTokenStore) Resolve(_ context.Context, tok string) (string, error) {
	if u, ok := s.sessions[tok]; ok {
		return u, nil
	}
	return "", apperr.Unauthenticated()
}

func (s *fakeTokenStore) Revoke(_ context.Context, tok string) error {
	delete(s.sessions, tok)
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeTokenStore) {
	users := newFakeUserRepo()
	tokens := &fakeTokenStore{sessions: map[string]string{}}
	return NewAuthService(users, tokens), users, tokens
}

func basicHeader(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func TestRegister(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@b.c", "secret")
	require.NoError(t, err)
	require.Equal(t, "a@b.c", u.Email)
	require.Equal(t, HashPassword("secret"), u.Password)
	require.False(t, u.ID.IsZero())

	_, err = svc.Register(ctx, "a@b.c", "other")
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
	require.EqualError(t, err, "Already exist")

	_, err = svc.Register(ctx, "", "x")
	require.EqualError(t, err, "Missing email")
	_, err = svc.Register(ctx, "a2@b.c", "")
	require.EqualError(t, err, "Missing password")
}

func TestConnectDisconnect(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@b.c", "secret")
	require.NoError(t, err)

	tok, err := svc.Connect(ctx, basicHeader("a@b.c", "secret"))
	require.NoError(t, err)
	require.Equal(t, u.ID.Hex(), tokens.sessions[tok])

	me, err := svc.Me(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, u.ID, me.ID)

	require.NoError(t, svc.Disconnect(ctx, tok))
	_, err = svc.Me(ctx, tok)
	require.True(t, apperr.IsCode(err, apperr.CodeUnauthenticated))

	// disconnecting a revoked token is unauthorized at the endpoint
	err = svc.Disconnect(ctx, tok)
	require.True(t, apperr.IsCode(err, apperr.CodeUnauthenticated))
}

func TestConnect_Rejections(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.c", "secret")
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not basic", "Bearer abc"},
		{"bad base64", "Basic %%%"},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("justemail"))},
		{"empty password", basicHeader("a@b.c", "")},
		{"wrong password", basicHeader("a@b.c", "nope")},
		{"unknown user", basicHeader("x@y.z", "secret")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Connect(ctx, tc.header)
			require.True(t, apperr.IsCode(err, apperr.CodeUnauthenticated))
		})
	}
}

func TestHashPassword(t *testing.T) {
	// sha1("secret"), the digest format existing user records carry
	require.Equal(t, "e5e9fa1ba31ecd1ae84f75caaa474f3a663f05f4", HashPassword("secret"))
	require.NotEqual(t, HashPassword("secret"), HashPassword("Secret"))
}
