package repositories

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// BookingTagsPatch is an explicit patch for the free-text booking tags.
// A nil field leaves the stored value untouched.
type BookingTagsPatch struct {
	WorkingOn           *string
	InterestedInMeeting *string
}

// BookingRangeFilter narrows booking range queries. Status nil means all
// statuses; BookingType nil means both member and guest bookings.
type BookingRangeFilter struct {
	StartDate   string
	EndDate     string
	Status      *domain.BookingStatus
	BookingType *domain.BookingType
}

// BookingReader defines read operations for bookings
type BookingReader interface {
	// FindBookingByID retrieves a specific booking by its ID.
	FindBookingByID(ctx context.Context, bookingID string) (*domain.SpaceBooking, error)

	// FindActiveBookingForDate returns the pending or confirmed booking a user
	// holds at a space on a date, or ErrNotFound when none exists.
	FindActiveBookingForDate(ctx context.Context, spaceID, userID, date string) (*domain.SpaceBooking, error)

	// CountConfirmedForDate counts confirmed bookings at a space on one date.
	CountConfirmedForDate(ctx context.Context, spaceID, date string) (int, error)

	// ListBookingsForDate lists bookings at a space on one date, optionally
	// narrowed to a status, sorted by start time ascending.
	ListBookingsForDate(ctx context.Context, spaceID, date string, status *domain.BookingStatus) ([]domain.SpaceBooking, error)

	// ListBookingsInRange lists bookings at a space within an inclusive date
	// range, per the filter, sorted by date descending then start time
	// ascending. Cursor pagination depends on this ordering being stable.
	ListBookingsInRange(ctx context.Context, spaceID string, filter BookingRangeFilter) ([]domain.SpaceBooking, error)

	// ListGuestBookings lists guest bookings at a space holding any of the
	// given statuses.
	ListGuestBookings(ctx context.Context, spaceID string, statuses []domain.BookingStatus) ([]domain.SpaceBooking, error)

	// ListGuestBookingsByUser lists all guest bookings a user has made across
	// all spaces.
	ListGuestBookingsByUser(ctx context.Context, userID string) ([]domain.SpaceBooking, error)
}

// BookingWriter defines write operations for bookings
type BookingWriter interface {
	// SaveBooking persists a new booking together with its visit application
	// responses (if any) in a single transaction.
	SaveBooking(ctx context.Context, booking domain.SpaceBooking, responses []domain.VisitApplicationResponse) error

	// UpdateBooking persists the mutable fields of an existing booking
	// (status, approval metadata, rejection reason, cancellation timestamp).
	UpdateBooking(ctx context.Context, booking domain.SpaceBooking) error

	// UpdateBookingTags applies a field-level patch to the booking tags.
	UpdateBookingTags(ctx context.Context, bookingID string, patch BookingTagsPatch) error
}

// VisitResponseReader defines read operations for visit application responses
type VisitResponseReader interface {
	// ListResponsesForBooking lists a booking's custom field answers in
	// submission order.
	ListResponsesForBooking(ctx context.Context, bookingID string) ([]domain.VisitApplicationResponse, error)
}

// BookingRepositoryFacade combines all booking-related repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
	VisitResponseReader
}

// BookingRepositoryWithTx extends BookingRepositoryFacade with transaction capabilities
type BookingRepositoryWithTx interface {
	BookingRepositoryFacade
	TransactionManager
}
