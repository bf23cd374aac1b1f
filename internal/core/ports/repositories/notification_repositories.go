package repositories

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// NotificationRepositoryFacade defines persistence for user notifications.
type NotificationRepositoryFacade interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// ListNotificationsByUser lists a user's notifications, newest first.
	ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)

	// MarkRead marks one of the user's notifications as read.
	MarkRead(ctx context.Context, notificationID, userID string) error

	// MarkAllRead marks all of the user's notifications as read.
	MarkAllRead(ctx context.Context, userID string) error
}
