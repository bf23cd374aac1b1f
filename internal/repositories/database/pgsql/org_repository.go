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

type PgxOrgRepository struct {
	BaseRepository
}

// newPgxOrgRepository creates a new repository for organization data.
func newPgxOrgRepository(pool *pgxpool.Pool) portsrepo.OrgRepositoryFacade {
	return &PgxOrgRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrgRepository implements portsrepo.OrgRepositoryFacade
var _ portsrepo.OrgRepositoryFacade = (*PgxOrgRepository)(nil)

var FULL_ORG_SELECT_QUERY = `
SELECT
	o.org_id, o.name, o.slug, o.has_coworking_space,
	o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
FROM organizations o
`

var FULL_MEMBERSHIP_SELECT_QUERY = `
SELECT m.membership_id, m.org_id, m.user_id, m.role, m.joined_at
FROM org_memberships m
`

// getOrgs runs the base select with the given filter appended.
func (r *PgxOrgRepository) getOrgs(ctx context.Context, filterQuery string, args ...any) ([]domain.Organization, error) {
	query := FULL_ORG_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations", err)
	}
	defer rows.Close()
	orgs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Organization])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Organization{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect organization rows", err)
	}
	return orgs, nil
}

func (r *PgxOrgRepository) getMemberships(ctx context.Context, filterQuery string, args ...any) ([]domain.OrgMembership, error) {
	query := FULL_MEMBERSHIP_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query org memberships", err)
	}
	defer rows.Close()
	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.OrgMembership])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.OrgMembership{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect org membership rows", err)
	}
	return memberships, nil
}

func (r *PgxOrgRepository) FindOrgByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	orgs, err := r.getOrgs(ctx, `WHERE o.org_id = $1`, orgID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &orgs[0], nil
}

func (r *PgxOrgRepository) FindOrgBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	orgs, err := r.getOrgs(ctx, `WHERE o.slug = $1`, slug)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &orgs[0], nil
}

func (r *PgxOrgRepository) ListOrgsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	filter := `
	JOIN org_memberships m ON m.org_id = o.org_id
	WHERE m.user_id = $1
	ORDER BY o.name ASC`
	return r.getOrgs(ctx, filter, userID)
}

func (r *PgxOrgRepository) SaveOrg(ctx context.Context, org domain.Organization) error {
	query := `
		INSERT INTO organizations (
			org_id, name, slug, has_coworking_space,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		org.OrgID,
		org.Name,
		org.Slug,
		org.HasCoworkingSpace,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on slug
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save organization "+org.OrgID, err)
	}
	return nil
}

func (r *PgxOrgRepository) SetHasCoworkingSpace(ctx context.Context, orgID string, hasSpace bool, updatedBy string) error {
	query := `
		UPDATE organizations
		SET has_coworking_space = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE org_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, hasSpace, updatedBy, orgID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update organization "+orgID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrgRepository) AddMembership(ctx context.Context, membership domain.OrgMembership) error {
	query := `
		INSERT INTO org_memberships (membership_id, org_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.MembershipID,
		membership.OrgID,
		membership.UserID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // one membership per user per org
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save membership "+membership.MembershipID, err)
	}
	return nil
}

func (r *PgxOrgRepository) FindMembership(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error) {
	memberships, err := r.getMemberships(ctx, `WHERE m.user_id = $1 AND m.org_id = $2`, userID, orgID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &memberships[0], nil
}

func (r *PgxOrgRepository) FindMembershipByID(ctx context.Context, membershipID string) (*domain.OrgMembership, error) {
	memberships, err := r.getMemberships(ctx, `WHERE m.membership_id = $1`, membershipID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &memberships[0], nil
}

func (r *PgxOrgRepository) ListAdminsByOrg(ctx context.Context, orgID string) ([]domain.OrgMembership, error) {
	filter := `WHERE m.org_id = $1 AND m.role = 'admin' ORDER BY m.joined_at ASC`
	return r.getMemberships(ctx, filter, orgID)
}
