package repositories

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// GuestProfilePatch is an explicit patch for guest self-service edits.
// Email is deliberately absent: guests can never change it themselves.
type GuestProfilePatch struct {
	Name         *string
	Phone        *string
	Organization *string
	Title        *string
}

// GuestProfileReader defines read operations for guest profiles
type GuestProfileReader interface {
	// FindGuestProfileByUserID retrieves the guest profile for a user.
	FindGuestProfileByUserID(ctx context.Context, userID string) (*domain.GuestProfile, error)
}

// GuestProfileWriter defines write operations for guest profiles
type GuestProfileWriter interface {
	// GetOrCreateGuestProfile returns the existing profile for the user or
	// inserts the given one. The insert is conditional on the user_id unique
	// constraint, so two concurrent first applications resolve to one profile.
	GetOrCreateGuestProfile(ctx context.Context, profile domain.GuestProfile) (*domain.GuestProfile, error)

	// UpdateGuestProfile applies a field-level patch to a guest profile.
	UpdateGuestProfile(ctx context.Context, guestProfileID string, patch GuestProfilePatch) error

	// RecordApprovedVisit increments the visit counter and updates the
	// first/last visit dates for an approved visit on visitDate.
	RecordApprovedVisit(ctx context.Context, guestProfileID, visitDate string) error

	// MarkGuestAsMember flags the guest as converted to a full member,
	// recording the org membership that made them one. Missing profiles are
	// not an error: there is simply nothing to flag.
	MarkGuestAsMember(ctx context.Context, userID, membershipID string) error
}

// GuestProfileRepositoryFacade combines all guest profile repository interfaces
type GuestProfileRepositoryFacade interface {
	GuestProfileReader
	GuestProfileWriter
}
