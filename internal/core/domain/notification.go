package domain

import "time"

// NotificationType enumerates the booking-related notification kinds.
type NotificationType string

const (
	NotificationGuestVisitPending  NotificationType = "guest_visit_pending"
	NotificationGuestVisitApproved NotificationType = "guest_visit_approved"
	NotificationGuestVisitRejected NotificationType = "guest_visit_rejected"
)

// Notification is a user-visible alert recorded by the booking flows.
// Delivery (email, push) is owned by an external pipeline; this service only
// records and lists notifications.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	UserID         string           `json:"userID"`
	Type           NotificationType `json:"type"`
	SpaceBookingID *string          `json:"spaceBookingID,omitempty"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	ActionURL      *string          `json:"actionUrl,omitempty"`
	Read           bool             `json:"read"`
	CreatedAt      time.Time        `json:"createdAt"`
}
