package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/infrastructure/identity"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// RegisterRequest creates a new account with the identity provider.
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8,max=72"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
}

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Session is the token payload handed back to the client.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

// IdentityClient is the slice of the provider API this usecase needs.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password string) (*identity.User, error)
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*identity.User, error)
}

type UseCase struct {
	identity IdentityClient
	profiles repository.ProfileRepository
	log      *logger.Logger
}

func NewUseCase(client IdentityClient, profiles repository.ProfileRepository, log *logger.Logger) *UseCase {
	return &UseCase{identity: client, profiles: profiles, log: log}
}

// Register creates the account with the provider and bootstraps an
// empty profile row for it. Credentials live with the provider;
// nothing password-shaped is persisted here.
func (uc *UseCase) Register(ctx context.Context, req RegisterRequest) (*identity.User, error) {
	user, err := uc.identity.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	input := repository.ProfileInput{DisplayName: req.DisplayName}
	if err := uc.profiles.Create(ctx, user.ID, input); err != nil {
		return nil, err
	}

	uc.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (uc *UseCase) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	session, err := uc.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  session.AccessToken,
		TokenType:    session.TokenType,
		ExpiresIn:    session.ExpiresIn,
		RefreshToken: session.RefreshToken,
		UserID:       session.User.ID.String(),
		Email:        session.User.Email,
	}, nil
}

func (uc *UseCase) Me(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	return uc.identity.GetUser(ctx, userID)
}
