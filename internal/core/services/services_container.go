package services

import (
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The org service doubles as the shared authorizer, so it comes first.
	container.Org = NewOrgService(repos.OrgRepo, repos.SpaceRepo)
	authorizer := container.Org.(portssvc.OrgAuthorizerSvc)

	container.User = NewUserService(cfg, repos.UserRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo)
	container.Space = NewSpaceService(repos.SpaceRepo, repos.OrgRepo, authorizer)
	container.Booking = NewBookingService(repos.BookingRepo, repos.SpaceRepo, authorizer)
	container.GuestVisit = NewGuestVisitService(
		repos.BookingRepo,
		repos.SpaceRepo,
		repos.GuestProfileRepo,
		repos.OrgRepo,
		repos.UserRepo,
		authorizer,
		container.Notification,
	)
	container.GuestProfile = NewGuestProfileService(repos.GuestProfileRepo, repos.OrgRepo, authorizer)
	container.Reporting = NewReportingService(
		repos.BookingRepo,
		repos.SpaceRepo,
		repos.GuestProfileRepo,
		repos.OrgRepo,
		repos.UserRepo,
		authorizer,
	)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}

// Compile-time checks that the concrete services satisfy their facades.
var (
	_ portssvc.OrgSvcFacade          = (*orgService)(nil)
	_ portssvc.SpaceSvcFacade        = (*spaceService)(nil)
	_ portssvc.BookingSvcFacade      = (*bookingService)(nil)
	_ portssvc.GuestVisitSvcFacade   = (*guestVisitService)(nil)
	_ portssvc.GuestProfileSvcFacade = (*guestProfileService)(nil)
	_ portssvc.ReportingSvcFacade    = (*reportingService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.NotificationSvcFacade = (*notificationService)(nil)
)
