package pgsql

import (
	"context"
	"errors"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBookingRepository struct {
	BaseRepository
}

// newPgxBookingRepository creates a new repository for booking data.
func newPgxBookingRepository(pool *pgxpool.Pool) portsrepo.BookingRepositoryWithTx {
	return &PgxBookingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBookingRepository implements portsrepo.BookingRepositoryWithTx
var _ portsrepo.BookingRepositoryWithTx = (*PgxBookingRepository)(nil)

// Dates live in DATE columns; the select always renders them back to the
// YYYY-MM-DD strings the domain works with.
var FULL_BOOKING_SELECT_QUERY = `
SELECT
	b.booking_id, b.space_id, b.user_id, to_char(b.date, 'YYYY-MM-DD') AS date,
	b.start_minutes, b.end_minutes, b.booking_type, b.status,
	b.working_on, b.interested_in_meeting, b.consent_to_profile_sharing,
	b.approved_by, b.approved_at, b.rejection_reason, b.cancelled_at,
	b.created_at, b.updated_at
FROM space_bookings b
`

// getBookings runs the base select with the given filter appended.
func (r *PgxBookingRepository) getBookings(ctx context.Context, filterQuery string, args ...any) ([]domain.SpaceBooking, error) {
	query := FULL_BOOKING_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bookings", err)
	}
	defer rows.Close()
	bookings, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.SpaceBooking])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.SpaceBooking{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect booking rows", err)
	}
	return bookings, nil
}

func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.SpaceBooking, error) {
	bookings, err := r.getBookings(ctx, `WHERE b.booking_id = $1`, bookingID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &bookings[0], nil
}

func (r *PgxBookingRepository) FindActiveBookingForDate(ctx context.Context, spaceID, userID, date string) (*domain.SpaceBooking, error) {
	filter := `WHERE b.space_id = $1 AND b.user_id = $2 AND b.date = $3 AND b.status IN ('pending', 'confirmed')`
	bookings, err := r.getBookings(ctx, filter, spaceID, userID, date)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &bookings[0], nil
}

func (r *PgxBookingRepository) CountConfirmedForDate(ctx context.Context, spaceID, date string) (int, error) {
	query := `SELECT COUNT(*) FROM space_bookings WHERE space_id = $1 AND date = $2 AND status = 'confirmed';`
	var count int
	if err := r.Pool.QueryRow(ctx, query, spaceID, date).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count confirmed bookings", err)
	}
	return count, nil
}

func (r *PgxBookingRepository) ListBookingsForDate(ctx context.Context, spaceID, date string, status *domain.BookingStatus) ([]domain.SpaceBooking, error) {
	filter := `WHERE b.space_id = $1 AND b.date = $2`
	args := []any{spaceID, date}
	if status != nil {
		filter += ` AND b.status = $3`
		args = append(args, string(*status))
	}
	filter += ` ORDER BY b.start_minutes ASC, b.booking_id ASC`
	return r.getBookings(ctx, filter, args...)
}

func (r *PgxBookingRepository) ListBookingsInRange(ctx context.Context, spaceID string, rangeFilter portsrepo.BookingRangeFilter) ([]domain.SpaceBooking, error) {
	filter := `WHERE b.space_id = $1 AND b.date BETWEEN $2 AND $3`
	args := []any{spaceID, rangeFilter.StartDate, rangeFilter.EndDate}
	if rangeFilter.Status != nil {
		args = append(args, string(*rangeFilter.Status))
		filter += ` AND b.status = $4`
	}
	if rangeFilter.BookingType != nil {
		args = append(args, string(*rangeFilter.BookingType))
		if rangeFilter.Status != nil {
			filter += ` AND b.booking_type = $5`
		} else {
			filter += ` AND b.booking_type = $4`
		}
	}
	filter += ` ORDER BY b.date DESC, b.start_minutes ASC, b.booking_id ASC`
	return r.getBookings(ctx, filter, args...)
}

func (r *PgxBookingRepository) ListGuestBookings(ctx context.Context, spaceID string, statuses []domain.BookingStatus) ([]domain.SpaceBooking, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}
	filter := `WHERE b.space_id = $1 AND b.booking_type = 'guest' AND b.status = ANY($2)
	ORDER BY b.date DESC, b.created_at DESC`
	return r.getBookings(ctx, filter, spaceID, statusStrings)
}

func (r *PgxBookingRepository) ListGuestBookingsByUser(ctx context.Context, userID string) ([]domain.SpaceBooking, error) {
	filter := `WHERE b.user_id = $1 AND b.booking_type = 'guest'
	ORDER BY b.date DESC, b.created_at DESC`
	return r.getBookings(ctx, filter, userID)
}

// SaveBooking inserts the booking and its intake answers in one transaction,
// so a rejected insert never leaves orphaned answers behind.
func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.SpaceBooking, responses []domain.VisitApplicationResponse) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	bookingQuery := `
		INSERT INTO space_bookings (
			booking_id, space_id, user_id, date, start_minutes, end_minutes,
			booking_type, status, working_on, interested_in_meeting,
			consent_to_profile_sharing, approved_by, approved_at,
			rejection_reason, cancelled_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, bookingQuery,
		booking.BookingID,
		booking.SpaceID,
		booking.UserID,
		booking.Date,
		booking.StartMinutes,
		booking.EndMinutes,
		string(booking.BookingType),
		string(booking.Status),
		booking.WorkingOn,
		booking.InterestedInMeeting,
		booking.ConsentToProfileSharing,
		booking.ApprovedBy,
		booking.ApprovedAt,
		booking.RejectionReason,
		booking.CancelledAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // active booking per user per date
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save booking "+booking.BookingID, err)
	}

	responseQuery := `
		INSERT INTO visit_application_responses (response_id, space_booking_id, field_id, value, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, resp := range responses {
		if _, err := tx.Exec(ctx, responseQuery,
			resp.ResponseID,
			resp.SpaceBookingID,
			resp.FieldID,
			resp.Value,
			resp.CreatedAt,
		); err != nil {
			return apperrors.NewAppError(500, "failed to save visit response "+resp.ResponseID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxBookingRepository) UpdateBooking(ctx context.Context, booking domain.SpaceBooking) error {
	query := `
		UPDATE space_bookings
		SET status = $1, approved_by = $2, approved_at = $3,
			rejection_reason = $4, cancelled_at = $5, updated_at = $6
		WHERE booking_id = $7;
	`
	result, err := r.Pool.Exec(ctx, query,
		string(booking.Status),
		booking.ApprovedBy,
		booking.ApprovedAt,
		booking.RejectionReason,
		booking.CancelledAt,
		booking.UpdatedAt,
		booking.BookingID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update booking "+booking.BookingID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBookingRepository) UpdateBookingTags(ctx context.Context, bookingID string, patch portsrepo.BookingTagsPatch) error {
	query := `
		UPDATE space_bookings
		SET working_on = COALESCE($1, working_on),
			interested_in_meeting = COALESCE($2, interested_in_meeting),
			updated_at = NOW()
		WHERE booking_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, patch.WorkingOn, patch.InterestedInMeeting, bookingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update booking tags "+bookingID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBookingRepository) ListResponsesForBooking(ctx context.Context, bookingID string) ([]domain.VisitApplicationResponse, error) {
	query := `
		SELECT response_id, space_booking_id, field_id, value, created_at
		FROM visit_application_responses
		WHERE space_booking_id = $1
		ORDER BY created_at ASC, response_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query visit responses", err)
	}
	defer rows.Close()
	responses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.VisitApplicationResponse])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.VisitApplicationResponse{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect visit response rows", err)
	}
	return responses, nil
}
