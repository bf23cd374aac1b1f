package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/platform/config"
	"github.com/astn-platform/space_booking_app/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by their ID
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by username", slog.String("username", username))
		}
		return nil, err
	}
	return user, nil
}

// CreateUser registers a local-password user
func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("username is already taken")
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetOrCreateOAuthUser finds the user by provider identity, creating them
// on first sign-in. The generated username is the provider subject, which
// keeps it unique without leaking the email into the login namespace.
func (s *userService) GetOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, providerUserID, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProvider(ctx, provider, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find user by provider", slog.String("provider", string(provider)))
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Username:       string(provider) + ":" + providerUserID,
		Name:           name,
		Email:          email,
		AuthProvider:   provider,
		ProviderUserID: &providerUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Concurrent first sign-in; the other request won.
			return s.userRepo.FindUserByProvider(ctx, provider, providerUserID)
		}
		s.LogError(ctx, err, "Failed to save oauth user", slog.String("provider", string(provider)))
		return nil, err
	}

	s.LogInfo(ctx, "OAuth user created",
		slog.String("user_id", newUser.UserID),
		slog.String("provider", string(provider)))
	return &newUser, nil
}

// Login verifies the password and returns the user plus a signed JWT
func (s *userService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.NewUnauthorizedError("invalid username or password")
		}
		s.LogError(ctx, err, "Failed to find user for login", slog.String("username", username))
		return nil, "", err
	}

	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", apperrors.NewUnauthorizedError("invalid username or password")
	}

	token, err := s.TokenForUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// TokenForUser issues a signed JWT for an already-authenticated user
func (s *userService) TokenForUser(ctx context.Context, user *domain.User) (string, error) {
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate JWT", slog.String("user_id", user.UserID))
		return "", err
	}
	return token, nil
}
