package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// notificationService implements the NotificationSvcFacade interface
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service with the provided dependencies
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
	}
}

// Ensure notificationService implements the NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// Dispatch persists a notification asynchronously. A notification failure
// never fails the triggering booking operation, so errors are only logged.
func (s *notificationService) Dispatch(ctx context.Context, notification domain.Notification) {
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	// Detach from the request lifecycle but keep the request-scoped logger.
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		saveCtx, cancel := context.WithTimeout(bgCtx, 5*time.Second)
		defer cancel()
		if err := s.notificationRepo.SaveNotification(saveCtx, notification); err != nil {
			s.LogError(bgCtx, err, "Failed to save notification",
				slog.String("notification_id", notification.NotificationID),
				slog.String("user_id", notification.UserID),
				slog.String("type", string(notification.Type)))
		}
	}()
}

// ListMyNotifications lists the caller's notifications, newest first
func (s *notificationService) ListMyNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		return nil, err
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

// MarkRead marks one of the caller's notifications as read
func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("notification not found")
		}
		s.LogError(ctx, err, "Failed to mark notification read", slog.String("notification_id", notificationID))
		return err
	}
	return nil
}

// MarkAllRead marks all of the caller's notifications as read
func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to mark all notifications read", slog.String("user_id", userID))
		return err
	}
	return nil
}
