package domain

// CapacityStatus is the advisory three-state occupancy signal for a date.
type CapacityStatus string

const (
	CapacityAvailable  CapacityStatus = "available"
	CapacityNearing    CapacityStatus = "nearing"
	CapacityAtCapacity CapacityStatus = "at_capacity"
)

// PeakDay is one entry of the day-of-week booking histogram.
type PeakDay struct {
	DayOfWeek int `json:"dayOfWeek"` // 0 (Sunday) .. 6 (Saturday)
	Count     int `json:"count"`
}

// MemberGuestSplit breaks down confirmed bookings by booking type.
type MemberGuestSplit struct {
	MemberCount int `json:"memberCount"`
	GuestCount  int `json:"guestCount"`
}

// UtilizationStats aggregates confirmed bookings over an inclusive date range.
// AverageDaily and UtilizationRate are rounded to one decimal place.
type UtilizationStats struct {
	TotalBookings   int              `json:"totalBookings"`
	AverageDaily    float64          `json:"averageDaily"`
	UtilizationRate float64          `json:"utilizationRate"` // percent of capacity*days
	PeakDays        []PeakDay        `json:"peakDays"`        // sorted by count descending
	MemberVsGuest   MemberGuestSplit `json:"memberVsGuest"`
	DaysInRange     int              `json:"daysInRange"`
	Capacity        int              `json:"capacity"`
}

// GuestConversionStats measures how many unique confirmed guests later became
// members. ConversionRate is a percentage rounded to one decimal place.
type GuestConversionStats struct {
	TotalGuests     int     `json:"totalGuests"`
	ConvertedGuests int     `json:"convertedGuests"`
	ConversionRate  float64 `json:"conversionRate"`
}

// DayCapacity is the per-date occupancy snapshot used for calendar decoration.
type DayCapacity struct {
	Count  int            `json:"count"`
	Status CapacityStatus `json:"status"`
}

// CapacityRange maps dates (YYYY-MM-DD) of a range to their occupancy.
type CapacityRange struct {
	Dates    map[string]DayCapacity `json:"dates"`
	Capacity int                    `json:"capacity"`
}

// BookingProfile is the attendee projection attached to enriched booking rows.
type BookingProfile struct {
	Name         string  `json:"name"`
	Headline     *string `json:"headline,omitempty"`
	Organization *string `json:"organization,omitempty"`
	Title        *string `json:"title,omitempty"`
	Email        *string `json:"email,omitempty"`
	IsGuest      bool    `json:"isGuest"`
}

// BatchApprovalResult is the per-booking outcome of a batch approval. One
// failed booking never aborts the batch; partial success is surfaced, not
// treated as a transaction failure.
type BatchApprovalResult struct {
	BookingID string `json:"bookingID"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// BookingPage is one page of the admin booking history. NextCursor is an
// opaque token; it is only set when more rows follow.
type BookingPage struct {
	Bookings   []EnrichedBooking `json:"bookings"`
	NextCursor *string           `json:"nextCursor,omitempty"`
	HasMore    bool              `json:"hasMore"`
}

// EnrichedBooking is a booking joined with its attendee profile, custom field
// answers, and the resolved approver name, as consumed by admin views and the
// export surface.
type EnrichedBooking struct {
	SpaceBooking
	Profile              *BookingProfile            `json:"profile"`
	CustomFieldResponses []VisitApplicationResponse `json:"customFieldResponses,omitempty"`
	ApprovedByName       *string                    `json:"approvedByName,omitempty"`
}
