package services

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// OrgAuthorizerSvc is the shared authorization capability used across the
// booking subsystem. Callers depend on this interface instead of querying
// membership data directly, so the checks live (and are tested) in one place.
type OrgAuthorizerSvc interface {
	// RequireOrgAdmin fails closed unless the user is an admin of the org.
	RequireOrgAdmin(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error)

	// RequireSpaceAdmin fails closed unless the user is an admin of the org
	// owning the space; returns both the membership and the space.
	RequireSpaceAdmin(ctx context.Context, userID, spaceID string) (*domain.OrgMembership, *domain.CoworkingSpace, error)

	// RequireOrgMember fails closed unless the user belongs to the org.
	RequireOrgMember(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error)

	// IsOrgMember reports membership without failing.
	IsOrgMember(ctx context.Context, userID, orgID string) (bool, error)
}

// OrgReaderSvc defines read operations for organizations
type OrgReaderSvc interface {
	// GetOrgByID retrieves an organization by ID.
	GetOrgByID(ctx context.Context, orgID string) (*domain.Organization, error)

	// ListUserOrgs retrieves the organizations the user belongs to.
	ListUserOrgs(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrgWriterSvc defines write operations for organizations
type OrgWriterSvc interface {
	// CreateOrganization creates an org and makes the creator its first admin.
	CreateOrganization(ctx context.Context, name, slug, creatorUserID string) (*domain.Organization, error)

	// AddMember adds a user to the org. Only org admins may do this.
	AddMember(ctx context.Context, requestingUserID, targetUserID, orgID string, role domain.OrgRole) error
}

// OrgSvcFacade combines all org-related service interfaces
type OrgSvcFacade interface {
	OrgAuthorizerSvc
	OrgReaderSvc
	OrgWriterSvc
}
