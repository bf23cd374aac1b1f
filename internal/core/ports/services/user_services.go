package services

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
	"github.com/astn-platform/space_booking_app/internal/dto"
)

// UserReaderSvc defines read operations for users
type UserReaderSvc interface {
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for users
type UserWriterSvc interface {
	// CreateUser registers a local-password user.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// GetOrCreateOAuthUser finds the user by provider identity, creating
	// them on first sign-in.
	GetOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, providerUserID, email, name string) (*domain.User, error)
}

// AuthSvc authenticates credentials and issues tokens.
type AuthSvc interface {
	// Login verifies the password and returns the user plus a signed JWT.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)

	// TokenForUser issues a signed JWT for an already-authenticated user,
	// such as after an OAuth exchange.
	TokenForUser(ctx context.Context, user *domain.User) (string, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthSvc
}
