package dto

import (
	"time"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// NotificationResponse defines data returned for one notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	SpaceBookingID *string   `json:"spaceBookingID,omitempty"`
	ActionURL      *string   `json:"actionUrl,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListNotificationsResponse wraps a user's notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToListNotificationsResponse converts a slice of domain.Notification to DTO.
func ToListNotificationsResponse(ns []domain.Notification) ListNotificationsResponse {
	list := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		list[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			Type:           string(n.Type),
			Title:          n.Title,
			Body:           n.Body,
			SpaceBookingID: n.SpaceBookingID,
			ActionURL:      n.ActionURL,
			Read:           n.Read,
			CreatedAt:      n.CreatedAt,
		}
	}
	return ListNotificationsResponse{Notifications: list}
}
