package repositories

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// SpacePatch is an explicit field-level patch for a space update. A nil field
// means "leave unchanged"; operating hours are always replaced as a whole,
// never per-day.
type SpacePatch struct {
	Name               *string
	Capacity           *int
	Timezone           *string
	OperatingHours     *[]domain.OperatingHoursDay
	GuestAccessEnabled *bool
}

// SpaceReader defines read operations for co-working space data
type SpaceReader interface {
	// FindSpaceByID retrieves a specific space by its ID.
	FindSpaceByID(ctx context.Context, spaceID string) (*domain.CoworkingSpace, error)

	// FindSpaceByOrgID retrieves the single space owned by an organization.
	FindSpaceByOrgID(ctx context.Context, orgID string) (*domain.CoworkingSpace, error)
}

// SpaceWriter defines write operations for co-working space data
type SpaceWriter interface {
	// SaveSpace persists a new space.
	SaveSpace(ctx context.Context, space domain.CoworkingSpace) error

	// UpdateSpace applies a field-level patch to an existing space.
	UpdateSpace(ctx context.Context, spaceID string, patch SpacePatch, updatedBy string) error

	// UpdateCustomVisitFields replaces the custom intake field definitions.
	UpdateCustomVisitFields(ctx context.Context, spaceID string, fields []domain.CustomVisitField, updatedBy string) error

	// DeleteSpace removes the space. Bookings survive as history.
	DeleteSpace(ctx context.Context, spaceID string) error
}

// SpaceRepositoryFacade combines all space-related repository interfaces
type SpaceRepositoryFacade interface {
	SpaceReader
	SpaceWriter
}
