package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
)

// guestProfileService implements the GuestProfileSvcFacade interface
type guestProfileService struct {
	BaseService
	guestRepo  portsrepo.GuestProfileRepositoryFacade
	orgRepo    portsrepo.OrgMembershipManager
	authorizer portssvc.OrgAuthorizerSvc
}

// NewGuestProfileService creates a new guest profile service with the provided dependencies
func NewGuestProfileService(
	guestRepo portsrepo.GuestProfileRepositoryFacade,
	orgRepo portsrepo.OrgMembershipManager,
	authorizer portssvc.OrgAuthorizerSvc,
) portssvc.GuestProfileSvcFacade {
	return &guestProfileService{
		guestRepo:  guestRepo,
		orgRepo:    orgRepo,
		authorizer: authorizer,
	}
}

// Ensure guestProfileService implements the GuestProfileSvcFacade interface
var _ portssvc.GuestProfileSvcFacade = (*guestProfileService)(nil)

// GetMyGuestProfile returns the caller's guest profile
func (s *guestProfileService) GetMyGuestProfile(ctx context.Context, userID string) (*domain.GuestProfile, error) {
	profile, err := s.guestRepo.FindGuestProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("guest profile not found")
		}
		s.LogError(ctx, err, "Failed to find guest profile", slog.String("user_id", userID))
		return nil, err
	}
	return profile, nil
}

// UpdateMyGuestProfile lets a guest edit their own contact details. The
// email, visit counters, and membership flags are never editable here.
func (s *guestProfileService) UpdateMyGuestProfile(ctx context.Context, userID string, req dto.UpdateGuestProfileRequest) error {
	profile, err := s.GetMyGuestProfile(ctx, userID)
	if err != nil {
		return err
	}

	patch := portsrepo.GuestProfilePatch{
		Name:         req.Name,
		Phone:        req.Phone,
		Organization: req.Organization,
		Title:        req.Title,
	}
	if err := s.guestRepo.UpdateGuestProfile(ctx, profile.GuestProfileID, patch); err != nil {
		s.LogError(ctx, err, "Failed to update guest profile", slog.String("guest_profile_id", profile.GuestProfileID))
		return err
	}
	return nil
}

// MarkGuestAsMember flags the guest's profile as converted, linking it to
// their new membership. The guest must already belong to the org.
func (s *guestProfileService) MarkGuestAsMember(ctx context.Context, guestUserID, adminUserID, orgID string) error {
	if _, err := s.authorizer.RequireOrgAdmin(ctx, adminUserID, orgID); err != nil {
		return err
	}

	membership, err := s.orgRepo.FindMembership(ctx, guestUserID, orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("user is not yet a member of this organization")
		}
		s.LogError(ctx, err, "Failed to look up guest membership",
			slog.String("org_id", orgID),
			slog.String("user_id", guestUserID))
		return err
	}

	if err := s.guestRepo.MarkGuestAsMember(ctx, guestUserID, membership.MembershipID); err != nil {
		s.LogError(ctx, err, "Failed to mark guest as member", slog.String("user_id", guestUserID))
		return err
	}

	s.LogInfo(ctx, "Guest marked as member",
		slog.String("user_id", guestUserID),
		slog.String("org_id", orgID))
	return nil
}
