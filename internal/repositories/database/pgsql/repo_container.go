package pgsql

import (
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	spaceRepo := newPgxSpaceRepository(dbPool)
	bookingRepo := newPgxBookingRepository(dbPool)
	guestProfileRepo := newPgxGuestProfileRepository(dbPool)
	orgRepo := newPgxOrgRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		SpaceRepo:        spaceRepo,
		BookingRepo:      bookingRepo,
		GuestProfileRepo: guestProfileRepo,
		OrgRepo:          orgRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
	}
}
