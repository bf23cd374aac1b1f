package dto

import (
	"time"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// --- Guest visit application DTOs ---

// VisitResponseRequest is a guest's answer to one custom intake field.
type VisitResponseRequest struct {
	FieldID string `json:"fieldId" binding:"required,max=64"`
	Value   string `json:"value" binding:"max=2000"`
}

// SubmitVisitApplicationRequest defines data for a guest applying to visit.
// Contact details update the guest's profile; answers are stored verbatim
// against the created booking.
type SubmitVisitApplicationRequest struct {
	Date                    string                 `json:"date" binding:"required,datetime=2006-01-02"`
	StartMinutes            int                    `json:"startMinutes" binding:"min=0,max=1439"`
	EndMinutes              int                    `json:"endMinutes" binding:"required,min=1,max=1440,gtfield=StartMinutes"`
	Name                    string                 `json:"name" binding:"required,max=100"`
	Email                   string                 `json:"email" binding:"required,email"`
	Phone                   *string                `json:"phone" binding:"omitempty,max=32"`
	Organization            *string                `json:"organization" binding:"omitempty,max=100"`
	Title                   *string                `json:"title" binding:"omitempty,max=100"`
	WorkingOn               *string                `json:"workingOn" binding:"omitempty,max=140"`
	InterestedInMeeting     *string                `json:"interestedInMeeting" binding:"omitempty,max=140"`
	ConsentToProfileSharing bool                   `json:"consentToProfileSharing"`
	Responses               []VisitResponseRequest `json:"responses" binding:"dive"`
}

// ApproveVisitRequest carries the optional welcome message for an approval.
type ApproveVisitRequest struct {
	Message *string `json:"message" binding:"omitempty,max=500"`
}

// RejectVisitRequest carries the mandatory rejection reason.
type RejectVisitRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// BatchApproveRequest lists the pending applications to approve.
type BatchApproveRequest struct {
	BookingIDs []string `json:"bookingIDs" binding:"required,min=1,max=100"`
}

// BatchApprovalResponse wraps the per-booking outcomes of a batch approval.
type BatchApprovalResponse struct {
	Results []domain.BatchApprovalResult `json:"results"`
}

// --- Guest profile DTOs ---

// UpdateGuestProfileRequest defines the data a guest may edit on their own
// profile. Using pointers to differentiate between omitted fields and
// zero-value fields.
type UpdateGuestProfileRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Phone        *string `json:"phone" binding:"omitempty,max=32"`
	Organization *string `json:"organization" binding:"omitempty,max=100"`
	Title        *string `json:"title" binding:"omitempty,max=100"`
}

// GuestProfileResponse defines data returned for a guest profile.
type GuestProfileResponse struct {
	GuestProfileID string    `json:"guestProfileID"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Organization   *string   `json:"organization,omitempty"`
	Title          *string   `json:"title,omitempty"`
	VisitCount     int       `json:"visitCount"`
	FirstVisitDate *string   `json:"firstVisitDate,omitempty"`
	LastVisitDate  *string   `json:"lastVisitDate,omitempty"`
	BecameMember   bool      `json:"becameMember"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToGuestProfileResponse converts domain.GuestProfile to DTO.
func ToGuestProfileResponse(p *domain.GuestProfile) GuestProfileResponse {
	return GuestProfileResponse{
		GuestProfileID: p.GuestProfileID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Organization:   p.Organization,
		Title:          p.Title,
		VisitCount:     p.VisitCount,
		FirstVisitDate: p.FirstVisitDate,
		LastVisitDate:  p.LastVisitDate,
		BecameMember:   p.BecameMember,
		CreatedAt:      p.CreatedAt,
	}
}

// --- Enriched booking DTOs ---

// EnrichedBookingResponse is a booking joined with the attendee's profile and
// their intake answers, as shown on the admin review screens.
type EnrichedBookingResponse struct {
	BookingResponse
	Profile              *domain.BookingProfile            `json:"profile,omitempty"`
	CustomFieldResponses []domain.VisitApplicationResponse `json:"customFieldResponses,omitempty"`
	ApprovedByName       *string                           `json:"approvedByName,omitempty"`
}

// ToEnrichedBookingResponse converts domain.EnrichedBooking to DTO.
func ToEnrichedBookingResponse(e *domain.EnrichedBooking) EnrichedBookingResponse {
	return EnrichedBookingResponse{
		BookingResponse:      ToBookingResponse(&e.SpaceBooking),
		Profile:              e.Profile,
		CustomFieldResponses: e.CustomFieldResponses,
		ApprovedByName:       e.ApprovedByName,
	}
}

// ToEnrichedBookingListResponse converts a slice of enriched bookings.
func ToEnrichedBookingListResponse(es []domain.EnrichedBooking) []EnrichedBookingResponse {
	list := make([]EnrichedBookingResponse, len(es))
	for i := range es {
		list[i] = ToEnrichedBookingResponse(&es[i])
	}
	return list
}

// GuestVisitSummaryResponse is one entry of the guest's own application list.
type GuestVisitSummaryResponse struct {
	BookingResponse
	SpaceName string `json:"spaceName"`
	OrgName   string `json:"orgName"`
	OrgSlug   string `json:"orgSlug"`
}

// ToGuestVisitSummaryListResponse converts a slice of visit summaries.
func ToGuestVisitSummaryListResponse(vs []domain.GuestVisitSummary) []GuestVisitSummaryResponse {
	list := make([]GuestVisitSummaryResponse, len(vs))
	for i, v := range vs {
		list[i] = GuestVisitSummaryResponse{
			BookingResponse: ToBookingResponse(&v.SpaceBooking),
			SpaceName:       v.SpaceName,
			OrgName:         v.OrgName,
			OrgSlug:         v.OrgSlug,
		}
	}
	return list
}
