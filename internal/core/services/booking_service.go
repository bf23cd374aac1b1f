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
	"github.com/astn-platform/space_booking_app/internal/utils/capacity"
	"github.com/astn-platform/space_booking_app/internal/utils/timeutils"
	"github.com/google/uuid"
)

// bookingService implements the BookingSvcFacade interface
type bookingService struct {
	BaseService
	bookingRepo portsrepo.BookingRepositoryFacade
	spaceRepo   portsrepo.SpaceReader
	authorizer  portssvc.OrgAuthorizerSvc
}

// NewBookingService creates a new booking service with the provided dependencies
func NewBookingService(
	bookingRepo portsrepo.BookingRepositoryFacade,
	spaceRepo portsrepo.SpaceReader,
	authorizer portssvc.OrgAuthorizerSvc,
) portssvc.BookingSvcFacade {
	return &bookingService{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		authorizer:  authorizer,
	}
}

// Ensure bookingService implements the BookingSvcFacade interface
var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// validateTag enforces the shared tag length cap.
func validateTag(name string, tag *string) error {
	if tag != nil && len(*tag) > domain.MaxBookingTagLength {
		return apperrors.NewValidationFailedError(fmt.Sprintf("%s must be at most %d characters", name, domain.MaxBookingTagLength))
	}
	return nil
}

// CreateMemberBooking books a day for the calling member
func (s *bookingService) CreateMemberBooking(ctx context.Context, spaceID string, req dto.CreateMemberBookingRequest, userID string) (*domain.SpaceBooking, *domain.CapacityStatus, error) {
	return s.createBooking(ctx, spaceID, req, userID)
}

// AdminCreateBooking books a day on behalf of another org member
func (s *bookingService) AdminCreateBooking(ctx context.Context, spaceID string, req dto.AdminCreateBookingRequest, adminUserID string) (*domain.SpaceBooking, *domain.CapacityStatus, error) {
	_, space, err := s.authorizer.RequireSpaceAdmin(ctx, adminUserID, spaceID)
	if err != nil {
		return nil, nil, err
	}
	// The target must belong to the org; admins cannot book for outsiders.
	isMember, err := s.authorizer.IsOrgMember(ctx, req.UserID, space.OrgID)
	if err != nil {
		return nil, nil, err
	}
	if !isMember {
		return nil, nil, apperrors.NewValidationFailedError("target user is not a member of this organization")
	}
	return s.createBooking(ctx, spaceID, req.CreateMemberBookingRequest, req.UserID)
}

// createBooking is the shared member booking path: validate the window,
// enforce one active booking per user per date, and attach the advisory
// capacity warning. Capacity never blocks creation.
func (s *bookingService) createBooking(ctx context.Context, spaceID string, req dto.CreateMemberBookingRequest, userID string) (*domain.SpaceBooking, *domain.CapacityStatus, error) {
	space, err := s.spaceRepo.FindSpaceByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("space not found")
		}
		s.LogError(ctx, err, "Failed to find space", slog.String("space_id", spaceID))
		return nil, nil, err
	}

	if _, err := s.authorizer.RequireOrgMember(ctx, userID, space.OrgID); err != nil {
		return nil, nil, err
	}

	if !timeutils.IsValidDateString(req.Date) {
		return nil, nil, apperrors.NewValidationFailedError("date must be a valid YYYY-MM-DD string")
	}
	if err := timeutils.ValidateBookingTime(req.Date, req.StartMinutes, req.EndMinutes, space.OperatingHours, space.Timezone); err != nil {
		return nil, nil, apperrors.NewValidationFailedError(err.Error())
	}
	if err := validateTag("workingOn", req.WorkingOn); err != nil {
		return nil, nil, err
	}
	if err := validateTag("interestedInMeeting", req.InterestedInMeeting); err != nil {
		return nil, nil, err
	}

	if _, err := s.bookingRepo.FindActiveBookingForDate(ctx, spaceID, userID, req.Date); err == nil {
		return nil, nil, apperrors.NewConflictError("you already have a booking for this date")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing booking",
			slog.String("space_id", spaceID),
			slog.String("date", req.Date))
		return nil, nil, err
	}

	confirmedCount, err := s.bookingRepo.CountConfirmedForDate(ctx, spaceID, req.Date)
	if err != nil {
		s.LogError(ctx, err, "Failed to count confirmed bookings",
			slog.String("space_id", spaceID),
			slog.String("date", req.Date))
		return nil, nil, err
	}

	now := time.Now()
	booking := domain.SpaceBooking{
		BookingID:           uuid.NewString(),
		SpaceID:             spaceID,
		UserID:              userID,
		Date:                req.Date,
		StartMinutes:        req.StartMinutes,
		EndMinutes:          req.EndMinutes,
		BookingType:         domain.BookingTypeMember,
		Status:              domain.BookingConfirmed,
		WorkingOn:           req.WorkingOn,
		InterestedInMeeting: req.InterestedInMeeting,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.bookingRepo.SaveBooking(ctx, booking, nil); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, apperrors.NewConflictError("you already have a booking for this date")
		}
		s.LogError(ctx, err, "Failed to save booking", slog.String("space_id", spaceID))
		return nil, nil, err
	}

	warning := capacity.WarningFor(confirmedCount+1, space.Capacity)
	s.LogInfo(ctx, "Member booking created",
		slog.String("booking_id", booking.BookingID),
		slog.String("space_id", spaceID),
		slog.String("date", req.Date))
	return &booking, warning, nil
}

// CancelBooking cancels a booking, allowed for the owner or a space admin
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID string) error {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("booking not found")
		}
		s.LogError(ctx, err, "Failed to find booking", slog.String("booking_id", bookingID))
		return err
	}

	if booking.UserID != userID {
		if _, _, err := s.authorizer.RequireSpaceAdmin(ctx, userID, booking.SpaceID); err != nil {
			return apperrors.NewForbiddenError("only the booking owner or a space admin can cancel a booking")
		}
	}

	if booking.Status == domain.BookingCancelled {
		return apperrors.NewConflictError("booking is already cancelled")
	}
	if !booking.Status.CanTransitionTo(domain.BookingCancelled) {
		return apperrors.NewConflictError("a rejected application cannot be cancelled")
	}

	now := time.Now()
	booking.Status = domain.BookingCancelled
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	if err := s.bookingRepo.UpdateBooking(ctx, *booking); err != nil {
		s.LogError(ctx, err, "Failed to cancel booking", slog.String("booking_id", bookingID))
		return err
	}

	s.LogInfo(ctx, "Booking cancelled",
		slog.String("booking_id", bookingID),
		slog.String("cancelled_by", userID))
	return nil
}

// UpdateBookingTags updates the free-text tags on the caller's own booking
func (s *bookingService) UpdateBookingTags(ctx context.Context, bookingID string, req dto.UpdateBookingTagsRequest, userID string) error {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("booking not found")
		}
		s.LogError(ctx, err, "Failed to find booking", slog.String("booking_id", bookingID))
		return err
	}

	if booking.UserID != userID {
		return apperrors.NewForbiddenError("only the booking owner can edit booking tags")
	}
	if !booking.IsActive() {
		return apperrors.NewConflictError("cannot edit tags on a cancelled or rejected booking")
	}
	if err := validateTag("workingOn", req.WorkingOn); err != nil {
		return err
	}
	if err := validateTag("interestedInMeeting", req.InterestedInMeeting); err != nil {
		return err
	}

	patch := portsrepo.BookingTagsPatch{
		WorkingOn:           req.WorkingOn,
		InterestedInMeeting: req.InterestedInMeeting,
	}
	if err := s.bookingRepo.UpdateBookingTags(ctx, bookingID, patch); err != nil {
		s.LogError(ctx, err, "Failed to update booking tags", slog.String("booking_id", bookingID))
		return err
	}
	return nil
}
