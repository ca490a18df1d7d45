package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"storyhub/internal/auth"
	"storyhub/internal/middleware"
	"storyhub/internal/models"
	"storyhub/internal/observability"
	"storyhub/internal/repository"
	"storyhub/internal/validation"
)

// TokenRevoker stores revoked token ids.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	uow      UnitOfWork
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	denylist TokenRevoker
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

func NewAuthService(uow UnitOfWork, hasher *auth.PasswordHasher, tokens *auth.TokenService, denylist TokenRevoker) *AuthService {
	return &AuthService{
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
	}
}

// Register creates an account and returns an access token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (token string, err error) {
	ctx, span := observability.StartSpan(ctx, "AuthService", "Register")
	defer func() {
		observability.AuthAttempts.WithLabelValues("register", observability.Outcome(err)).Inc()
		observability.EndSpan(span, err)
	}()

	if err := validation.ValidateUsername(in.Username); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return "", models.NewValidationError(err.Error())
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		taken, err := repos.Users().ExistsByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return models.NewConflictError("Username already taken")
		}

		registered, err := repos.Users().ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if registered {
			return models.NewConflictError("Email already registered")
		}

		if err := repos.Users().Create(ctx, user); err != nil {
			if models.IsCode(err, models.CodeConflict) {
				return models.NewConflictError("Username or email already registered")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	middleware.Logger.InfoContext(ctx, "user registered", slog.Uint64("new_user_id", uint64(user.ID)))
	return s.issue(user.ID)
}

// Login exchanges credentials for an access token. Unknown users and wrong
// passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (token string, err error) {
	ctx, span := observability.StartSpan(ctx, "AuthService", "Login")
	defer func() {
		observability.AuthAttempts.WithLabelValues("login", observability.Outcome(err)).Inc()
		observability.EndSpan(span, err)
	}()

	invalid := models.NewUnauthenticatedError("Invalid username or password")

	var user *models.User
	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users().GetByUsername(ctx, in.Username)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		s.hasher.VerifyNoUser(in.Password)
		return "", invalid
	}
	if err != nil {
		return "", err
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return "", invalid
	}

	return s.issue(user.ID)
}

// Logout revokes the presented token until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return models.NewUnauthenticatedError("Not authenticated")
	}
	if s.denylist == nil {
		middleware.Logger.WarnContext(ctx, "token revocation unavailable; logout is client-side only")
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Authenticate verifies token, rejects revoked tokens and confirms the
// subject still exists.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, models.NewUnauthenticatedError("Could not validate credentials")
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "token revocation check failed", slog.String("error", err.Error()))
		} else if revoked {
			return nil, models.NewUnauthenticatedError("Token has been revoked")
		}
	}

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		_, err := repos.Users().GetByID(ctx, claims.UserID)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewUnauthenticatedError("Could not validate credentials")
	}
	if err != nil {
		return nil, err
	}

	return claims, nil
}

func (s *AuthService) issue(userID uint) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}
