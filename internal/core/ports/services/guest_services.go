package services

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
	"github.com/astn-platform/space_booking_app/internal/dto"
)

// GuestVisitSvcFacade drives the guest application workflow: submission by
// guests, review by space admins.
type GuestVisitSvcFacade interface {
	// SubmitVisitApplication creates a pending guest booking plus its custom
	// field responses and the guest's profile if absent.
	SubmitVisitApplication(ctx context.Context, spaceID string, req dto.SubmitVisitApplicationRequest, userID string) (*domain.SpaceBooking, error)

	// ApproveGuestVisit confirms a pending application and records the visit
	// on the guest's profile. Full even after approval; approval is allowed
	// regardless of capacity.
	ApproveGuestVisit(ctx context.Context, bookingID string, message *string, adminUserID string) error

	// RejectGuestVisit rejects a pending application with a reason.
	RejectGuestVisit(ctx context.Context, bookingID, reason, adminUserID string) error

	// BatchApproveGuestVisits approves many applications, returning a
	// per-booking outcome. One failure does not stop the rest.
	BatchApproveGuestVisits(ctx context.Context, spaceID string, bookingIDs []string, adminUserID string) ([]domain.BatchApprovalResult, error)

	// PendingApplications lists pending guest applications for admin review,
	// enriched with guest profile and custom field responses.
	PendingApplications(ctx context.Context, spaceID, adminUserID string) ([]domain.EnrichedBooking, error)

	// GuestVisitHistory lists a space's guest bookings across all states,
	// optionally restricted to one guest.
	GuestVisitHistory(ctx context.Context, spaceID string, guestUserID *string, adminUserID string) ([]domain.EnrichedBooking, error)

	// MyVisitApplications lists the calling guest's own applications with
	// space and org context.
	MyVisitApplications(ctx context.Context, userID string) ([]domain.GuestVisitSummary, error)
}

// GuestProfileSvcFacade manages guest profile data.
type GuestProfileSvcFacade interface {
	// GetMyGuestProfile returns the caller's guest profile.
	GetMyGuestProfile(ctx context.Context, userID string) (*domain.GuestProfile, error)

	// UpdateMyGuestProfile lets a guest edit their own contact details.
	// Visit counters and membership flags are not editable here.
	UpdateMyGuestProfile(ctx context.Context, userID string, req dto.UpdateGuestProfileRequest) error

	// MarkGuestAsMember flags the guest as converted to an org member.
	// Only admins of an org whose space the guest has visited may do this.
	MarkGuestAsMember(ctx context.Context, guestUserID, adminUserID, orgID string) error
}
