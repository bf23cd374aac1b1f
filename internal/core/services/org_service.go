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
	"github.com/google/uuid"
)

// orgService implements the OrgSvcFacade interface
type orgService struct {
	BaseService
	orgRepo   portsrepo.OrgRepositoryFacade
	spaceRepo portsrepo.SpaceReader
}

// NewOrgService creates a new org service with the provided dependencies
func NewOrgService(orgRepo portsrepo.OrgRepositoryFacade, spaceRepo portsrepo.SpaceReader) portssvc.OrgSvcFacade {
	return &orgService{
		orgRepo:   orgRepo,
		spaceRepo: spaceRepo,
	}
}

// Ensure orgService implements the OrgSvcFacade interface
var _ portssvc.OrgSvcFacade = (*orgService)(nil)

// GetOrgByID retrieves an organization by its ID
func (s *orgService) GetOrgByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrgByID(ctx, orgID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find org by ID", slog.String("org_id", orgID))
		}
		return nil, err
	}
	return org, nil
}

// ListUserOrgs retrieves all organizations a user belongs to
func (s *orgService) ListUserOrgs(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListOrgsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orgs for user", slog.String("user_id", userID))
		return nil, err
	}
	if orgs == nil {
		return []domain.Organization{}, nil
	}
	return orgs, nil
}

// CreateOrganization creates a new organization and makes the creator its first admin
func (s *orgService) CreateOrganization(ctx context.Context, name, slug, creatorUserID string) (*domain.Organization, error) {
	now := time.Now()
	org := domain.Organization{
		OrgID: uuid.NewString(),
		Name:  name,
		Slug:  slug,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orgRepo.SaveOrg(ctx, org); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("an organization with this slug already exists")
		}
		s.LogError(ctx, err, "Failed to save org", slog.String("org_id", org.OrgID))
		return nil, err
	}

	membership := domain.OrgMembership{
		MembershipID: uuid.NewString(),
		OrgID:        org.OrgID,
		UserID:       creatorUserID,
		Role:         domain.OrgRoleAdmin,
		JoinedAt:     now,
	}
	if err := s.orgRepo.AddMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as org admin",
			slog.String("org_id", org.OrgID),
			slog.String("user_id", creatorUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Organization created",
		slog.String("org_id", org.OrgID),
		slog.String("slug", org.Slug))
	return &org, nil
}

// AddMember adds a user to the organization; only org admins may do this
func (s *orgService) AddMember(ctx context.Context, requestingUserID, targetUserID, orgID string, role domain.OrgRole) error {
	if _, err := s.RequireOrgAdmin(ctx, requestingUserID, orgID); err != nil {
		return err
	}

	membership := domain.OrgMembership{
		MembershipID: uuid.NewString(),
		OrgID:        orgID,
		UserID:       targetUserID,
		Role:         role,
		JoinedAt:     time.Now(),
	}
	if err := s.orgRepo.AddMembership(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.NewConflictError("user is already a member of this organization")
		}
		s.LogError(ctx, err, "Failed to add org member",
			slog.String("org_id", orgID),
			slog.String("user_id", targetUserID))
		return err
	}
	return nil
}

// RequireOrgAdmin fails closed unless the user is an admin of the org
func (s *orgService) RequireOrgAdmin(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error) {
	membership, err := s.orgRepo.FindMembership(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewForbiddenError("not a member of this organization")
		}
		s.LogError(ctx, err, "Failed to look up membership",
			slog.String("org_id", orgID),
			slog.String("user_id", userID))
		return nil, err
	}
	if !membership.IsAdmin() {
		return nil, apperrors.NewForbiddenError("admin access required")
	}
	return membership, nil
}

// RequireSpaceAdmin fails closed unless the user is an admin of the org owning the space
func (s *orgService) RequireSpaceAdmin(ctx context.Context, userID, spaceID string) (*domain.OrgMembership, *domain.CoworkingSpace, error) {
	space, err := s.spaceRepo.FindSpaceByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("space not found")
		}
		s.LogError(ctx, err, "Failed to find space", slog.String("space_id", spaceID))
		return nil, nil, err
	}
	membership, err := s.RequireOrgAdmin(ctx, userID, space.OrgID)
	if err != nil {
		return nil, nil, err
	}
	return membership, space, nil
}

// RequireOrgMember fails closed unless the user belongs to the org
func (s *orgService) RequireOrgMember(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error) {
	membership, err := s.orgRepo.FindMembership(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewForbiddenError("not a member of this organization")
		}
		s.LogError(ctx, err, "Failed to look up membership",
			slog.String("org_id", orgID),
			slog.String("user_id", userID))
		return nil, err
	}
	return membership, nil
}

// IsOrgMember reports whether the user belongs to the org without failing
func (s *orgService) IsOrgMember(ctx context.Context, userID, orgID string) (bool, error) {
	_, err := s.orgRepo.FindMembership(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
