package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/infrastructure/identity"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

type fakeIdentity struct {
	users map[string]uuid.UUID
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]uuid.UUID{}}
}

func (f *fakeIdentity) SignUp(_ context.Context, email, _ string) (*identity.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, domain.ErrEmailTaken
	}
	id := uuid.New()
	f.users[email] = id
	return &identity.User{ID: id, Email: email}, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, email, _ string) (*identity.Session, error) {
	id, ok := f.users[email]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &identity.Session{
		AccessToken: "token",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        identity.User{ID: id, Email: email},
	}, nil
}

func (f *fakeIdentity) GetUser(_ context.Context, userID uuid.UUID) (*identity.User, error) {
	for email, id := range f.users {
		if id == userID {
			return &identity.User{ID: id, Email: email}, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

// fakeProfiles records bootstrap calls; only Create is exercised.
type fakeProfiles struct {
	repository.ProfileRepository
	created map[uuid.UUID]repository.ProfileInput
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{created: map[uuid.UUID]repository.ProfileInput{}}
}

func (f *fakeProfiles) Create(_ context.Context, userID uuid.UUID, input repository.ProfileInput) error {
	if _, ok := f.created[userID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	f.created[userID] = input
	return nil
}

func TestRegisterBootstrapsProfile(t *testing.T) {
	profiles := newFakeProfiles()
	uc := NewUseCase(newFakeIdentity(), profiles, logger.NewNop())
	name := "Ada"

	user, err := uc.Register(context.Background(), RegisterRequest{
		Email:       "ada@example.com",
		Password:    "correct horse",
		DisplayName: &name,
	})
	require.NoError(t, err)

	input, ok := profiles.created[user.ID]
	require.True(t, ok)
	assert.Equal(t, "Ada", *input.DisplayName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	idp := newFakeIdentity()
	uc := NewUseCase(idp, newFakeProfiles(), logger.NewNop())
	req := RegisterRequest{Email: "ada@example.com", Password: "correct horse"}

	_, err := uc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginReturnsSession(t *testing.T) {
	idp := newFakeIdentity()
	uc := NewUseCase(idp, newFakeProfiles(), logger.NewNop())

	user, err := uc.Register(context.Background(), RegisterRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	session, err := uc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), session.UserID)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.NotEmpty(t, session.AccessToken)
}

func TestLoginUnknownEmail(t *testing.T) {
	uc := NewUseCase(newFakeIdentity(), newFakeProfiles(), logger.NewNop())

	_, err := uc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
