package dto

import (
	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// --- Reporting query DTOs ---

// BookingHistoryQuery defines query parameters for the admin booking history.
type BookingHistoryQuery struct {
	StartDate   string  `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string  `form:"endDate" binding:"required,datetime=2006-01-02"`
	Status      *string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled rejected"`
	BookingType *string `form:"bookingType" binding:"omitempty,oneof=member guest"`
	Cursor      *string `form:"cursor"`
	Limit       int     `form:"limit,default=50" binding:"min=1,max=100"`
}

// DateRangeQuery defines a plain inclusive date range.
type DateRangeQuery struct {
	StartDate string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"required,datetime=2006-01-02"`
}

// ExportQuery defines parameters for the booking export endpoint.
type ExportQuery struct {
	StartDate string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"required,datetime=2006-01-02"`
	Format    string `form:"format,default=csv" binding:"oneof=csv json"`
}

// --- Reporting response DTOs ---

// BookingPageResponse is one page of the booking history.
type BookingPageResponse struct {
	Bookings   []EnrichedBookingResponse `json:"bookings"`
	NextCursor *string                   `json:"nextCursor,omitempty"`
	HasMore    bool                      `json:"hasMore"`
}

// ToBookingPageResponse converts domain.BookingPage to DTO.
func ToBookingPageResponse(p *domain.BookingPage) BookingPageResponse {
	return BookingPageResponse{
		Bookings:   ToEnrichedBookingListResponse(p.Bookings),
		NextCursor: p.NextCursor,
		HasMore:    p.HasMore,
	}
}

// TodaysBookingsResponse wraps today's active bookings.
type TodaysBookingsResponse struct {
	Date     string                    `json:"date"`
	Bookings []EnrichedBookingResponse `json:"bookings"`
}
