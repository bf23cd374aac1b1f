package pgsql

import (
	"context"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxGuestProfileRepository struct {
	BaseRepository
}

// newPgxGuestProfileRepository creates a new repository for guest profile data.
func newPgxGuestProfileRepository(pool *pgxpool.Pool) portsrepo.GuestProfileRepositoryFacade {
	return &PgxGuestProfileRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxGuestProfileRepository implements portsrepo.GuestProfileRepositoryFacade
var _ portsrepo.GuestProfileRepositoryFacade = (*PgxGuestProfileRepository)(nil)

var FULL_GUEST_PROFILE_SELECT_QUERY = `
SELECT
	g.guest_profile_id, g.user_id, g.name, g.email, g.phone, g.organization, g.title,
	g.visit_count,
	to_char(g.first_visit_date, 'YYYY-MM-DD') AS first_visit_date,
	to_char(g.last_visit_date, 'YYYY-MM-DD') AS last_visit_date,
	g.became_member, g.became_member_at, g.converted_to_membership_id,
	g.created_at, g.updated_at
FROM guest_profiles g
`

func (r *PgxGuestProfileRepository) findByUserID(ctx context.Context, userID string) (*domain.GuestProfile, error) {
	query := FULL_GUEST_PROFILE_SELECT_QUERY + `WHERE g.user_id = $1`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query guest profile", err)
	}
	defer rows.Close()
	profiles, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.GuestProfile])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect guest profile rows", err)
	}
	if len(profiles) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &profiles[0], nil
}

func (r *PgxGuestProfileRepository) FindGuestProfileByUserID(ctx context.Context, userID string) (*domain.GuestProfile, error) {
	return r.findByUserID(ctx, userID)
}

// GetOrCreateGuestProfile relies on the user_id unique constraint: the insert
// is a no-op when a profile already exists, and the follow-up select returns
// whichever row won.
func (r *PgxGuestProfileRepository) GetOrCreateGuestProfile(ctx context.Context, profile domain.GuestProfile) (*domain.GuestProfile, error) {
	query := `
		INSERT INTO guest_profiles (
			guest_profile_id, user_id, name, email, phone, organization, title,
			visit_count, became_member, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, FALSE, $8, $9)
		ON CONFLICT (user_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		profile.GuestProfileID,
		profile.UserID,
		profile.Name,
		profile.Email,
		profile.Phone,
		profile.Organization,
		profile.Title,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create guest profile for user "+profile.UserID, err)
	}
	return r.findByUserID(ctx, profile.UserID)
}

func (r *PgxGuestProfileRepository) UpdateGuestProfile(ctx context.Context, guestProfileID string, patch portsrepo.GuestProfilePatch) error {
	query := `
		UPDATE guest_profiles
		SET name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			organization = COALESCE($3, organization),
			title = COALESCE($4, title),
			updated_at = NOW()
		WHERE guest_profile_id = $5;
	`
	result, err := r.Pool.Exec(ctx, query, patch.Name, patch.Phone, patch.Organization, patch.Title, guestProfileID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update guest profile "+guestProfileID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGuestProfileRepository) RecordApprovedVisit(ctx context.Context, guestProfileID, visitDate string) error {
	query := `
		UPDATE guest_profiles
		SET visit_count = visit_count + 1,
			first_visit_date = LEAST(COALESCE(first_visit_date, $1::date), $1::date),
			last_visit_date = GREATEST(COALESCE(last_visit_date, $1::date), $1::date),
			updated_at = NOW()
		WHERE guest_profile_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query, visitDate, guestProfileID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record approved visit for profile "+guestProfileID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkGuestAsMember is a no-op for users without a guest profile.
func (r *PgxGuestProfileRepository) MarkGuestAsMember(ctx context.Context, userID, membershipID string) error {
	query := `
		UPDATE guest_profiles
		SET became_member = TRUE,
			became_member_at = NOW(),
			converted_to_membership_id = $1,
			updated_at = NOW()
		WHERE user_id = $2 AND became_member = FALSE;
	`
	if _, err := r.Pool.Exec(ctx, query, membershipID, userID); err != nil {
		return apperrors.NewAppError(500, "failed to mark guest as member for user "+userID, err)
	}
	return nil
}
