package pgsql

import (
	"context"
	"errors"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for notification data.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

var FULL_NOTIFICATION_SELECT_QUERY = `
SELECT
	n.notification_id, n.user_id, n.type, n.space_booking_id,
	n.title, n.body, n.action_url, n.read, n.created_at
FROM notifications n
`

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, user_id, type, space_booking_id,
			title, body, action_url, read, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		notification.NotificationID,
		notification.UserID,
		string(notification.Type),
		notification.SpaceBookingID,
		notification.Title,
		notification.Body,
		notification.ActionURL,
		notification.Read,
		notification.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save notification "+notification.NotificationID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	filter := `WHERE n.user_id = $1`
	if unreadOnly {
		filter += ` AND n.read = FALSE`
	}
	filter += ` ORDER BY n.created_at DESC`
	query := FULL_NOTIFICATION_SELECT_QUERY + filter
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query notifications", err)
	}
	defer rows.Close()
	notifications, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Notification])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Notification{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect notification rows", err)
	}
	return notifications, nil
}

func (r *PgxNotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE notification_id = $1 AND user_id = $2;`
	result, err := r.Pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification read "+notificationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE;`
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return apperrors.NewAppError(500, "failed to mark notifications read for user "+userID, err)
	}
	return nil
}
