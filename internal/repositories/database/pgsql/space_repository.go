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

type PgxSpaceRepository struct {
	BaseRepository
}

// newPgxSpaceRepository creates a new repository for co-working space data.
func newPgxSpaceRepository(pool *pgxpool.Pool) portsrepo.SpaceRepositoryFacade {
	return &PgxSpaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSpaceRepository implements portsrepo.SpaceRepositoryFacade
var _ portsrepo.SpaceRepositoryFacade = (*PgxSpaceRepository)(nil)

var FULL_SPACE_SELECT_QUERY = `
SELECT
	s.space_id, s.org_id, s.name, s.capacity, s.timezone, s.operating_hours,
	s.guest_access_enabled, s.custom_visit_fields,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
FROM coworking_spaces s
`

// getSpaces runs the base select with the given filter appended.
func (r *PgxSpaceRepository) getSpaces(ctx context.Context, filterQuery string, args ...any) ([]domain.CoworkingSpace, error) {
	query := FULL_SPACE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query spaces", err)
	}
	defer rows.Close()
	spaces, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.CoworkingSpace])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CoworkingSpace{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect space rows", err)
	}
	return spaces, nil
}

func (r *PgxSpaceRepository) FindSpaceByID(ctx context.Context, spaceID string) (*domain.CoworkingSpace, error) {
	spaces, err := r.getSpaces(ctx, `WHERE s.space_id = $1`, spaceID)
	if err != nil {
		return nil, err
	}
	if len(spaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &spaces[0], nil
}

func (r *PgxSpaceRepository) FindSpaceByOrgID(ctx context.Context, orgID string) (*domain.CoworkingSpace, error) {
	spaces, err := r.getSpaces(ctx, `WHERE s.org_id = $1`, orgID)
	if err != nil {
		return nil, err
	}
	if len(spaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &spaces[0], nil
}

func (r *PgxSpaceRepository) SaveSpace(ctx context.Context, space domain.CoworkingSpace) error {
	query := `
		INSERT INTO coworking_spaces (
			space_id, org_id, name, capacity, timezone, operating_hours,
			guest_access_enabled, custom_visit_fields,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		space.SpaceID,
		space.OrgID,
		space.Name,
		space.Capacity,
		space.Timezone,
		space.OperatingHours,
		space.GuestAccessEnabled,
		space.CustomVisitFields,
		space.CreatedAt,
		space.CreatedBy,
		space.LastUpdatedAt,
		space.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on org_id
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save space "+space.SpaceID, err)
	}
	return nil
}

func (r *PgxSpaceRepository) UpdateSpace(ctx context.Context, spaceID string, patch portsrepo.SpacePatch, updatedBy string) error {
	query := `
		UPDATE coworking_spaces
		SET name = COALESCE($1, name),
			capacity = COALESCE($2, capacity),
			timezone = COALESCE($3, timezone),
			operating_hours = COALESCE($4, operating_hours),
			guest_access_enabled = COALESCE($5, guest_access_enabled),
			last_updated_at = NOW(),
			last_updated_by = $6
		WHERE space_id = $7;
	`
	var hours any
	if patch.OperatingHours != nil {
		hours = *patch.OperatingHours
	}
	result, err := r.Pool.Exec(ctx, query,
		patch.Name,
		patch.Capacity,
		patch.Timezone,
		hours,
		patch.GuestAccessEnabled,
		updatedBy,
		spaceID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update space "+spaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSpaceRepository) UpdateCustomVisitFields(ctx context.Context, spaceID string, fields []domain.CustomVisitField, updatedBy string) error {
	query := `
		UPDATE coworking_spaces
		SET custom_visit_fields = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE space_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, fields, updatedBy, spaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update custom visit fields for space "+spaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSpaceRepository) DeleteSpace(ctx context.Context, spaceID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM coworking_spaces WHERE space_id = $1;`, spaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete space "+spaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
