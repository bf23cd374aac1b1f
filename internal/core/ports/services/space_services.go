package services

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
	"github.com/astn-platform/space_booking_app/internal/dto"
)

// SpaceReaderSvc defines read operations for co-working space data
type SpaceReaderSvc interface {
	// GetSpaceByOrg retrieves the org's space for an org admin.
	GetSpaceByOrg(ctx context.Context, orgID, requestingUserID string) (*domain.CoworkingSpace, error)

	// GetSpaceForMember retrieves the org's space for any org member.
	GetSpaceForMember(ctx context.Context, orgID, requestingUserID string) (*domain.CoworkingSpace, error)

	// GetSpaceBySlug returns the guest-safe public projection of a space,
	// looked up via the owning org's slug. Only available when guest access
	// is enabled.
	GetSpaceBySlug(ctx context.Context, slug string) (*dto.PublicSpaceResponse, error)
}

// SpaceWriterSvc defines write operations for co-working space data
type SpaceWriterSvc interface {
	// CreateSpace creates the org's co-working space. Fails if one exists.
	CreateSpace(ctx context.Context, orgID string, req dto.CreateSpaceRequest, requestingUserID string) (*domain.CoworkingSpace, error)

	// UpdateSpace applies a partial update, re-validating supplied fields.
	UpdateSpace(ctx context.Context, spaceID string, req dto.UpdateSpaceRequest, requestingUserID string) error

	// UpdateCustomVisitFields replaces the guest intake field definitions.
	UpdateCustomVisitFields(ctx context.Context, spaceID string, fields []domain.CustomVisitField, requestingUserID string) error

	// DeleteSpace removes the space and clears the org's "has space" flag.
	// Bookings are kept as history.
	DeleteSpace(ctx context.Context, spaceID string, requestingUserID string) error
}

// SpaceSvcFacade combines all space-related service interfaces
type SpaceSvcFacade interface {
	SpaceReaderSvc
	SpaceWriterSvc
}
