package domain

import "time"

// BookingStatus is the lifecycle state of a space booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
)

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingRejected:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// IsTerminal reports whether no further transition is allowed from the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingRejected
}

// CanTransitionTo reports whether the state machine permits moving from s to next.
// Allowed: pending -> confirmed | rejected | cancelled, confirmed -> cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingRejected || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCancelled
	default:
		return false
	}
}

// BookingType distinguishes member reservations from guest visit applications.
type BookingType string

const (
	BookingTypeMember BookingType = "member"
	BookingTypeGuest  BookingType = "guest"
)

// MaxBookingTagLength caps the free-text "working on" / "interested in
// meeting" tags shown to other attendees.
const MaxBookingTagLength = 140

// SpaceBooking reserves the half-open interval [StartMinutes, EndMinutes) of a
// calendar date at a space. Date is a local calendar string (YYYY-MM-DD), not
// an instant; minute offsets are relative to the space's local midnight.
type SpaceBooking struct {
	BookingID               string        `json:"bookingID"`
	SpaceID                 string        `json:"spaceID"`
	UserID                  string        `json:"userID"`
	Date                    string        `json:"date"`
	StartMinutes            int           `json:"startMinutes"`
	EndMinutes              int           `json:"endMinutes"`
	BookingType             BookingType   `json:"bookingType"`
	Status                  BookingStatus `json:"status"`
	WorkingOn               *string       `json:"workingOn,omitempty"`
	InterestedInMeeting     *string       `json:"interestedInMeeting,omitempty"`
	ConsentToProfileSharing bool          `json:"consentToProfileSharing"`
	ApprovedBy              *string       `json:"approvedBy,omitempty"` // membership ID of the approving admin
	ApprovedAt              *time.Time    `json:"approvedAt,omitempty"`
	RejectionReason         *string       `json:"rejectionReason,omitempty"`
	CancelledAt             *time.Time    `json:"cancelledAt,omitempty"`
	CreatedAt               time.Time     `json:"createdAt"`
	UpdatedAt               time.Time     `json:"updatedAt"`
}

// IsActive reports whether the booking still occupies its date, i.e. counts
// toward the one-active-booking-per-user-per-date invariant.
func (b *SpaceBooking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
