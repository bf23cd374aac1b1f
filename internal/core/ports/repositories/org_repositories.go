package repositories

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// OrgReader defines read operations for organization data
type OrgReader interface {
	// FindOrgByID retrieves a specific organization by its ID.
	FindOrgByID(ctx context.Context, orgID string) (*domain.Organization, error)

	// FindOrgBySlug retrieves an organization by its public slug.
	FindOrgBySlug(ctx context.Context, slug string) (*domain.Organization, error)

	// ListOrgsByUserID retrieves all organizations a user belongs to.
	ListOrgsByUserID(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrgWriter defines write operations for organization data
type OrgWriter interface {
	// SaveOrg persists a new organization.
	SaveOrg(ctx context.Context, org domain.Organization) error

	// SetHasCoworkingSpace flips the cached "has space" indicator.
	SetHasCoworkingSpace(ctx context.Context, orgID string, hasSpace bool, updatedBy string) error
}

// OrgMembershipManager defines operations for managing org memberships
type OrgMembershipManager interface {
	// AddMembership adds a user to an organization with a specific role.
	AddMembership(ctx context.Context, membership domain.OrgMembership) error

	// FindMembership retrieves a user's membership in an organization.
	FindMembership(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error)

	// FindMembershipByID retrieves a membership record by its own ID, used to
	// resolve booking approvers.
	FindMembershipByID(ctx context.Context, membershipID string) (*domain.OrgMembership, error)

	// ListAdminsByOrg retrieves the admin memberships of an organization,
	// used to fan out review notifications.
	ListAdminsByOrg(ctx context.Context, orgID string) ([]domain.OrgMembership, error)
}

// OrgRepositoryFacade combines all org-related repository interfaces
type OrgRepositoryFacade interface {
	OrgReader
	OrgWriter
	OrgMembershipManager
}
