package services

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
	"github.com/astn-platform/space_booking_app/internal/dto"
)

// BookingSvcFacade drives the member booking lifecycle. Guest applications
// have their own facade (GuestVisitSvcFacade) because their lifecycle runs
// through the admin review workflow.
type BookingSvcFacade interface {
	// CreateMemberBooking books a day for the calling member. The returned
	// capacity status is a non-blocking warning; it never prevents creation.
	CreateMemberBooking(ctx context.Context, spaceID string, req dto.CreateMemberBookingRequest, userID string) (*domain.SpaceBooking, *domain.CapacityStatus, error)

	// AdminCreateBooking books a day on behalf of another org member.
	AdminCreateBooking(ctx context.Context, spaceID string, req dto.AdminCreateBookingRequest, adminUserID string) (*domain.SpaceBooking, *domain.CapacityStatus, error)

	// CancelBooking cancels a booking. The owner may cancel their own
	// booking; space admins may cancel any booking. Only an already
	// cancelled booking is rejected.
	CancelBooking(ctx context.Context, bookingID, userID string) error

	// UpdateBookingTags updates the free-text tags of the caller's own
	// confirmed booking.
	UpdateBookingTags(ctx context.Context, bookingID string, req dto.UpdateBookingTagsRequest, userID string) error
}
