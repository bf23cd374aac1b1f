package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/google/uuid"
)

// spaceService implements the SpaceSvcFacade interface
type spaceService struct {
	BaseService
	spaceRepo  portsrepo.SpaceRepositoryFacade
	orgRepo    portsrepo.OrgRepositoryFacade
	authorizer portssvc.OrgAuthorizerSvc
}

// NewSpaceService creates a new space service with the provided dependencies
func NewSpaceService(
	spaceRepo portsrepo.SpaceRepositoryFacade,
	orgRepo portsrepo.OrgRepositoryFacade,
	authorizer portssvc.OrgAuthorizerSvc,
) portssvc.SpaceSvcFacade {
	return &spaceService{
		spaceRepo:  spaceRepo,
		orgRepo:    orgRepo,
		authorizer: authorizer,
	}
}

// Ensure spaceService implements the SpaceSvcFacade interface
var _ portssvc.SpaceSvcFacade = (*spaceService)(nil)

// validateOperatingHours checks that a weekly schedule covers each weekday
// exactly once and that open days have a positive open window.
func validateOperatingHours(hours []domain.OperatingHoursDay) error {
	if len(hours) != 7 {
		return apperrors.NewValidationFailedError("operating hours must contain exactly one entry per weekday")
	}
	seen := make(map[int]bool, 7)
	for _, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return apperrors.NewValidationFailedError(fmt.Sprintf("invalid day of week: %d", h.DayOfWeek))
		}
		if seen[h.DayOfWeek] {
			return apperrors.NewValidationFailedError(fmt.Sprintf("duplicate operating hours entry for day %d", h.DayOfWeek))
		}
		seen[h.DayOfWeek] = true
		if h.IsClosed {
			continue
		}
		if h.OpenMinutes < 0 || h.CloseMinutes > 1440 {
			return apperrors.NewValidationFailedError("operating hours must fall within the day")
		}
		if h.OpenMinutes >= h.CloseMinutes {
			return apperrors.NewValidationFailedError("opening time must be before closing time")
		}
	}
	return nil
}

// validateCustomVisitFields checks the intake form definition: known field
// types, unique field ids, and options present on select fields.
func validateCustomVisitFields(fields []domain.CustomVisitField) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.FieldID == "" || f.Label == "" {
			return apperrors.NewValidationFailedError("custom field id and label are required")
		}
		if seen[f.FieldID] {
			return apperrors.NewValidationFailedError(fmt.Sprintf("duplicate custom field id: %s", f.FieldID))
		}
		seen[f.FieldID] = true
		if _, ok := domain.ParseCustomFieldType(string(f.Type)); !ok {
			return apperrors.NewValidationFailedError(fmt.Sprintf("invalid custom field type: %s", f.Type))
		}
		if f.Type == domain.FieldTypeSelect && len(f.Options) == 0 {
			return apperrors.NewValidationFailedError(fmt.Sprintf("select field %s requires options", f.FieldID))
		}
	}
	return nil
}

// validateTimezone rejects timezone names the runtime cannot load.
func validateTimezone(tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid timezone: %s", tz))
	}
	return nil
}

// CreateSpace creates the org's single co-working space
func (s *spaceService) CreateSpace(ctx context.Context, orgID string, req dto.CreateSpaceRequest, requestingUserID string) (*domain.CoworkingSpace, error) {
	if _, err := s.authorizer.RequireOrgAdmin(ctx, requestingUserID, orgID); err != nil {
		return nil, err
	}

	hours := dto.OperatingHoursToDomain(req.OperatingHours)
	if err := validateOperatingHours(hours); err != nil {
		return nil, err
	}
	if err := validateTimezone(req.Timezone); err != nil {
		return nil, err
	}

	if _, err := s.spaceRepo.FindSpaceByOrgID(ctx, orgID); err == nil {
		return nil, apperrors.NewConflictError("organization already has a co-working space")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing space", slog.String("org_id", orgID))
		return nil, err
	}

	now := time.Now()
	space := domain.CoworkingSpace{
		SpaceID:            uuid.NewString(),
		OrgID:              orgID,
		Name:               req.Name,
		Capacity:           req.Capacity,
		Timezone:           req.Timezone,
		OperatingHours:     hours,
		GuestAccessEnabled: req.GuestAccessEnabled,
		CustomVisitFields:  []domain.CustomVisitField{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.spaceRepo.SaveSpace(ctx, space); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("organization already has a co-working space")
		}
		s.LogError(ctx, err, "Failed to save space", slog.String("org_id", orgID))
		return nil, err
	}

	if err := s.orgRepo.SetHasCoworkingSpace(ctx, orgID, true, requestingUserID); err != nil {
		// The space exists; the org flag is a denormalized convenience.
		s.LogError(ctx, err, "Failed to flag org as having a space", slog.String("org_id", orgID))
	}

	s.LogInfo(ctx, "Space created",
		slog.String("space_id", space.SpaceID),
		slog.String("org_id", orgID))
	return &space, nil
}

// UpdateSpace applies a partial update after re-validating supplied fields
func (s *spaceService) UpdateSpace(ctx context.Context, spaceID string, req dto.UpdateSpaceRequest, requestingUserID string) error {
	if _, _, err := s.authorizer.RequireSpaceAdmin(ctx, requestingUserID, spaceID); err != nil {
		return err
	}

	patch := portsrepo.SpacePatch{
		Name:               req.Name,
		Capacity:           req.Capacity,
		Timezone:           req.Timezone,
		GuestAccessEnabled: req.GuestAccessEnabled,
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		return apperrors.NewValidationFailedError("capacity must be at least 1")
	}
	if req.Timezone != nil {
		if err := validateTimezone(*req.Timezone); err != nil {
			return err
		}
	}
	if req.OperatingHours != nil {
		hours := dto.OperatingHoursToDomain(*req.OperatingHours)
		if err := validateOperatingHours(hours); err != nil {
			return err
		}
		patch.OperatingHours = &hours
	}

	if err := s.spaceRepo.UpdateSpace(ctx, spaceID, patch, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to update space", slog.String("space_id", spaceID))
		return err
	}
	return nil
}

// UpdateCustomVisitFields replaces the guest intake field definitions
func (s *spaceService) UpdateCustomVisitFields(ctx context.Context, spaceID string, fields []domain.CustomVisitField, requestingUserID string) error {
	if _, _, err := s.authorizer.RequireSpaceAdmin(ctx, requestingUserID, spaceID); err != nil {
		return err
	}
	if err := validateCustomVisitFields(fields); err != nil {
		return err
	}
	if fields == nil {
		fields = []domain.CustomVisitField{}
	}
	if err := s.spaceRepo.UpdateCustomVisitFields(ctx, spaceID, fields, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to update custom visit fields", slog.String("space_id", spaceID))
		return err
	}
	return nil
}

// DeleteSpace removes the space while keeping its bookings as history
func (s *spaceService) DeleteSpace(ctx context.Context, spaceID string, requestingUserID string) error {
	_, space, err := s.authorizer.RequireSpaceAdmin(ctx, requestingUserID, spaceID)
	if err != nil {
		return err
	}

	if err := s.spaceRepo.DeleteSpace(ctx, spaceID); err != nil {
		s.LogError(ctx, err, "Failed to delete space", slog.String("space_id", spaceID))
		return err
	}

	if err := s.orgRepo.SetHasCoworkingSpace(ctx, space.OrgID, false, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to clear org space flag", slog.String("org_id", space.OrgID))
	}

	s.LogInfo(ctx, "Space deleted",
		slog.String("space_id", spaceID),
		slog.String("org_id", space.OrgID))
	return nil
}

// GetSpaceByOrg retrieves the org's space for an org admin
func (s *spaceService) GetSpaceByOrg(ctx context.Context, orgID, requestingUserID string) (*domain.CoworkingSpace, error) {
	if _, err := s.authorizer.RequireOrgAdmin(ctx, requestingUserID, orgID); err != nil {
		return nil, err
	}
	return s.findSpaceByOrg(ctx, orgID)
}

// GetSpaceForMember retrieves the org's space for any org member
func (s *spaceService) GetSpaceForMember(ctx context.Context, orgID, requestingUserID string) (*domain.CoworkingSpace, error) {
	if _, err := s.authorizer.RequireOrgMember(ctx, requestingUserID, orgID); err != nil {
		return nil, err
	}
	return s.findSpaceByOrg(ctx, orgID)
}

func (s *spaceService) findSpaceByOrg(ctx context.Context, orgID string) (*domain.CoworkingSpace, error) {
	space, err := s.spaceRepo.FindSpaceByOrgID(ctx, orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("organization has no co-working space")
		}
		s.LogError(ctx, err, "Failed to find space by org", slog.String("org_id", orgID))
		return nil, err
	}
	return space, nil
}

// GetSpaceBySlug returns the guest-safe projection of a space via its org slug.
// Spaces with guest access disabled are indistinguishable from missing ones.
func (s *spaceService) GetSpaceBySlug(ctx context.Context, slug string) (*dto.PublicSpaceResponse, error) {
	org, err := s.orgRepo.FindOrgBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("space not found")
		}
		s.LogError(ctx, err, "Failed to find org by slug", slog.String("slug", slug))
		return nil, err
	}

	space, err := s.spaceRepo.FindSpaceByOrgID(ctx, org.OrgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("space not found")
		}
		s.LogError(ctx, err, "Failed to find space by org", slog.String("org_id", org.OrgID))
		return nil, err
	}
	if !space.GuestAccessEnabled {
		return nil, apperrors.NewNotFoundError("space not found")
	}

	resp := dto.ToPublicSpaceResponse(space, org)
	return &resp, nil
}
