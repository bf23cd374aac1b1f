package services

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
)

// NotificationSvcFacade manages in-app notifications. Dispatch is
// best-effort: a notification failure never fails the triggering operation.
type NotificationSvcFacade interface {
	// Dispatch persists a notification asynchronously. Errors are logged,
	// not returned.
	Dispatch(ctx context.Context, notification domain.Notification)

	// ListMyNotifications lists the caller's notifications, newest first.
	ListMyNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)

	// MarkRead marks one of the caller's notifications as read.
	MarkRead(ctx context.Context, notificationID, userID string) error

	// MarkAllRead marks all of the caller's notifications as read.
	MarkAllRead(ctx context.Context, userID string) error
}
