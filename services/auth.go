package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/store"
	"github.com/neuronstudy/backend/utils"
)

type AuthService struct {
	Users *store.UserStore
	Cfg   *config.Config

	// Overridable in tests; defaults to idtoken.Validate.
	ValidateIDToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewAuthService(users *store.UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users:           users,
		Cfg:             cfg,
		ValidateIDToken: idtoken.Validate,
	}
}

// Register creates the account and its user record (no admin rights, empty
// entitlements and progress) and signs the user in.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", models.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWTToken(user.ID, s.Cfg)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignIn checks credentials and issues a token. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", models.ErrAuthRequired)
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", models.ErrAuthRequired)
	}

	token, err := utils.GenerateJWTToken(user.ID, s.Cfg)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignInWithGoogle verifies a Google ID token and signs the user in,
// creating the user record on first sign-in.
func (s *AuthService) SignInWithGoogle(ctx context.Context, rawToken string) (*models.User, string, error) {
	payload, err := s.ValidateIDToken(ctx, rawToken, s.Cfg.GoogleClientID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid google token", models.ErrAuthRequired)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, "", fmt.Errorf("%w: google token carries no email", models.ErrAuthRequired)
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		user = &models.User{
			ID:    uuid.NewString(),
			Email: email,
			Name:  name,
		}
		if err := s.Users.Create(ctx, user); err != nil {
			return nil, "", err
		}
	} else if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWTToken(user.ID, s.Cfg)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
