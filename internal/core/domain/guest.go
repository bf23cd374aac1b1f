package domain

import "time"

// GuestProfile is the lightweight profile kept for a non-member visitor,
// created lazily on their first visit application. One per user.
type GuestProfile struct {
	GuestProfileID          string     `json:"guestProfileID"`
	UserID                  string     `json:"userID"`
	Name                    string     `json:"name"`
	Email                   string     `json:"email"`
	Phone                   *string    `json:"phone,omitempty"`
	Organization            *string    `json:"organization,omitempty"`
	Title                   *string    `json:"title,omitempty"`
	VisitCount              int        `json:"visitCount"`
	FirstVisitDate          *string    `json:"firstVisitDate,omitempty"`
	LastVisitDate           *string    `json:"lastVisitDate,omitempty"`
	BecameMember            bool       `json:"becameMember"`
	BecameMemberAt          *time.Time `json:"becameMemberAt,omitempty"`
	ConvertedToMembershipID *string    `json:"convertedToMembershipID,omitempty"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

// GuestVisitSummary is a guest booking joined with the space and org it
// belongs to, for the guest's own application list.
type GuestVisitSummary struct {
	SpaceBooking
	SpaceName string `json:"spaceName"`
	OrgName   string `json:"orgName"`
	OrgSlug   string `json:"orgSlug"`
}

// VisitApplicationResponse captures a guest's answer to one custom intake
// field at submission time. Immutable once created; deleted only together
// with its booking.
type VisitApplicationResponse struct {
	ResponseID     string    `json:"responseID"`
	SpaceBookingID string    `json:"spaceBookingID"`
	FieldID        string    `json:"fieldId"`
	Value          string    `json:"value"`
	CreatedAt      time.Time `json:"createdAt"`
}
