package identity

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"registration/internal/auth"
	"registration/internal/registration"
)

// ErrBadCredentials hides whether the email or the password was wrong.
var ErrBadCredentials = errors.New("invalid email or password")

// Users is the identity store the service needs.
type Users interface {
	CreateWithRole(ctx context.Context, email, passwordHash, role string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	HasRole(ctx context.Context, subject, role string) (bool, error)
}

// Service handles admin signup, login, logout and token refresh.
type Service struct {
	users      Users
	sessions   *auth.Sessions
	issuer     string
	signingKey string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates an identity service.
func NewService(users Users, sessions *auth.Sessions, issuer, signingKey string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		issuer:     issuer,
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Signup creates an account plus exactly one admin role grant.
func (s *Service) Signup(ctx context.Context, creds registration.Credentials) (User, error) {
	normalized, verr := registration.ValidateCredentials(creds)
	if verr != nil {
		return User{}, verr
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return s.users.CreateWithRole(ctx, normalized.Email, string(hash), "admin")
}

// Login verifies credentials and issues a token pair. The refresh
// token is held in redis for rotation checks.
func (s *Service) Login(ctx context.Context, creds registration.Credentials) (auth.TokenPair, error) {
	normalized, verr := registration.ValidateCredentials(creds)
	if verr != nil {
		return auth.TokenPair{}, verr
	}
	user, err := s.users.GetByEmail(ctx, normalized.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.TokenPair{}, ErrBadCredentials
		}
		return auth.TokenPair{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(normalized.Password)); err != nil {
		return auth.TokenPair{}, ErrBadCredentials
	}

	pair, err := auth.Issue(user.ID, user.Email, s.issuer, s.signingKey, s.accessTTL, s.refreshTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if err := s.sessions.SaveRefresh(ctx, user.ID, pair.RefreshToken, s.refreshTTL); err != nil {
		return auth.TokenPair{}, err
	}
	return pair, nil
}

// Logout revokes the access token and drops the held refresh token.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := auth.Parse(accessToken, s.signingKey, s.issuer)
	if err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, accessToken, claims.ExpiresAt.Time); err != nil {
		return err
	}
	return s.sessions.DropRefresh(ctx, claims.Subject)
}

// Refresh rotates a refresh token into a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := auth.Parse(refreshToken, s.signingKey, s.issuer)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if err := s.sessions.CheckRefresh(ctx, claims.Subject, refreshToken); err != nil {
		return auth.TokenPair{}, err
	}
	pair, err := auth.Issue(claims.Subject, claims.Email, s.issuer, s.signingKey, s.accessTTL, s.refreshTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if err := s.sessions.SaveRefresh(ctx, claims.Subject, pair.RefreshToken, s.refreshTTL); err != nil {
		return auth.TokenPair{}, err
	}
	return pair, nil
}
