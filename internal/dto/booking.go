package dto

import (
	"time"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// --- Booking DTOs ---

// CreateMemberBookingRequest defines data for a member booking a day.
// Start/end are minutes since the space's local midnight.
type CreateMemberBookingRequest struct {
	Date                string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartMinutes        int     `json:"startMinutes" binding:"min=0,max=1439"`
	EndMinutes          int     `json:"endMinutes" binding:"required,min=1,max=1440,gtfield=StartMinutes"`
	WorkingOn           *string `json:"workingOn" binding:"omitempty,max=140"`
	InterestedInMeeting *string `json:"interestedInMeeting" binding:"omitempty,max=140"`
}

// AdminCreateBookingRequest books a day on behalf of another org member.
type AdminCreateBookingRequest struct {
	UserID string `json:"userID" binding:"required"`
	CreateMemberBookingRequest
}

// UpdateBookingTagsRequest edits the free-text tags on an existing booking.
// Using pointers to differentiate between omitted fields and clearing a tag
// with an empty string.
type UpdateBookingTagsRequest struct {
	WorkingOn           *string `json:"workingOn" binding:"omitempty,max=140"`
	InterestedInMeeting *string `json:"interestedInMeeting" binding:"omitempty,max=140"`
}

// BookingResponse defines data returned for a booking.
type BookingResponse struct {
	BookingID           string     `json:"bookingID"`
	SpaceID             string     `json:"spaceID"`
	UserID              string     `json:"userID"`
	Date                string     `json:"date"`
	StartMinutes        int        `json:"startMinutes"`
	EndMinutes          int        `json:"endMinutes"`
	BookingType         string     `json:"bookingType"`
	Status              string     `json:"status"`
	WorkingOn           *string    `json:"workingOn,omitempty"`
	InterestedInMeeting *string    `json:"interestedInMeeting,omitempty"`
	RejectionReason     *string    `json:"rejectionReason,omitempty"`
	ApprovedAt          *time.Time `json:"approvedAt,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// ToBookingResponse converts domain.SpaceBooking to DTO.
func ToBookingResponse(b *domain.SpaceBooking) BookingResponse {
	return BookingResponse{
		BookingID:           b.BookingID,
		SpaceID:             b.SpaceID,
		UserID:              b.UserID,
		Date:                b.Date,
		StartMinutes:        b.StartMinutes,
		EndMinutes:          b.EndMinutes,
		BookingType:         string(b.BookingType),
		Status:              string(b.Status),
		WorkingOn:           b.WorkingOn,
		InterestedInMeeting: b.InterestedInMeeting,
		RejectionReason:     b.RejectionReason,
		ApprovedAt:          b.ApprovedAt,
		CancelledAt:         b.CancelledAt,
		CreatedAt:           b.CreatedAt,
	}
}

// CreateBookingResponse wraps a new booking with an optional capacity
// warning. The warning never blocks the booking.
type CreateBookingResponse struct {
	Booking         BookingResponse `json:"booking"`
	CapacityWarning *string         `json:"capacityWarning,omitempty"`
}

// ToCreateBookingResponse converts a booking plus capacity status to DTO.
func ToCreateBookingResponse(b *domain.SpaceBooking, warning *domain.CapacityStatus) CreateBookingResponse {
	resp := CreateBookingResponse{Booking: ToBookingResponse(b)}
	if warning != nil {
		w := string(*warning)
		resp.CapacityWarning = &w
	}
	return resp
}
