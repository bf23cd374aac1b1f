package services_test

import (
	"context"
	"time"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/utils/timeutils"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the service suites. Several services depend on the same
// repository facades, so the mocks live here instead of per test file.

// MockBookingRepository is a mock type for the BookingRepositoryFacade interface
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.SpaceBooking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpaceBooking), args.Error(1)
}

func (m *MockBookingRepository) FindActiveBookingForDate(ctx context.Context, spaceID, userID, date string) (*domain.SpaceBooking, error) {
	args := m.Called(ctx, spaceID, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpaceBooking), args.Error(1)
}

func (m *MockBookingRepository) CountConfirmedForDate(ctx context.Context, spaceID, date string) (int, error) {
	args := m.Called(ctx, spaceID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsForDate(ctx context.Context, spaceID, date string, status *domain.BookingStatus) ([]domain.SpaceBooking, error) {
	args := m.Called(ctx, spaceID, date, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpaceBooking), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsInRange(ctx context.Context, spaceID string, filter portsrepo.BookingRangeFilter) ([]domain.SpaceBooking, error) {
	args := m.Called(ctx, spaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpaceBooking), args.Error(1)
}

func (m *MockBookingRepository) ListGuestBookings(ctx context.Context, spaceID string, statuses []domain.BookingStatus) ([]domain.SpaceBooking, error) {
	args := m.Called(ctx, spaceID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpaceBooking), args.Error(1)
}

func (m *MockBookingRepository) ListGuestBookingsByUser(ctx context.Context, userID string) ([]domain.SpaceBooking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpaceBooking), args.Error(1)
}

func (m *MockBookingRepository) SaveBooking(ctx context.Context, booking domain.SpaceBooking, responses []domain.VisitApplicationResponse) error {
	args := m.Called(ctx, booking, responses)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBooking(ctx context.Context, booking domain.SpaceBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBookingTags(ctx context.Context, bookingID string, patch portsrepo.BookingTagsPatch) error {
	args := m.Called(ctx, bookingID, patch)
	return args.Error(0)
}

func (m *MockBookingRepository) ListResponsesForBooking(ctx context.Context, bookingID string) ([]domain.VisitApplicationResponse, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VisitApplicationResponse), args.Error(1)
}

var _ portsrepo.BookingRepositoryFacade = (*MockBookingRepository)(nil)

// MockSpaceRepository is a mock type for the SpaceRepositoryFacade interface
type MockSpaceRepository struct {
	mock.Mock
}

func (m *MockSpaceRepository) FindSpaceByID(ctx context.Context, spaceID string) (*domain.CoworkingSpace, error) {
	args := m.Called(ctx, spaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoworkingSpace), args.Error(1)
}

func (m *MockSpaceRepository) FindSpaceByOrgID(ctx context.Context, orgID string) (*domain.CoworkingSpace, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoworkingSpace), args.Error(1)
}

func (m *MockSpaceRepository) SaveSpace(ctx context.Context, space domain.CoworkingSpace) error {
	args := m.Called(ctx, space)
	return args.Error(0)
}

func (m *MockSpaceRepository) UpdateSpace(ctx context.Context, spaceID string, patch portsrepo.SpacePatch, updatedBy string) error {
	args := m.Called(ctx, spaceID, patch, updatedBy)
	return args.Error(0)
}

func (m *MockSpaceRepository) UpdateCustomVisitFields(ctx context.Context, spaceID string, fields []domain.CustomVisitField, updatedBy string) error {
	args := m.Called(ctx, spaceID, fields, updatedBy)
	return args.Error(0)
}

func (m *MockSpaceRepository) DeleteSpace(ctx context.Context, spaceID string) error {
	args := m.Called(ctx, spaceID)
	return args.Error(0)
}

var _ portsrepo.SpaceRepositoryFacade = (*MockSpaceRepository)(nil)

// MockOrgRepository is a mock type for the OrgRepositoryFacade interface
type MockOrgRepository struct {
	mock.Mock
}

func (m *MockOrgRepository) FindOrgByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrgRepository) FindOrgBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrgRepository) ListOrgsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrgRepository) SaveOrg(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrgRepository) SetHasCoworkingSpace(ctx context.Context, orgID string, hasSpace bool, updatedBy string) error {
	args := m.Called(ctx, orgID, hasSpace, updatedBy)
	return args.Error(0)
}

func (m *MockOrgRepository) AddMembership(ctx context.Context, membership domain.OrgMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockOrgRepository) FindMembership(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgMembership), args.Error(1)
}

func (m *MockOrgRepository) FindMembershipByID(ctx context.Context, membershipID string) (*domain.OrgMembership, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgMembership), args.Error(1)
}

func (m *MockOrgRepository) ListAdminsByOrg(ctx context.Context, orgID string) ([]domain.OrgMembership, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrgMembership), args.Error(1)
}

var _ portsrepo.OrgRepositoryFacade = (*MockOrgRepository)(nil)

// MockGuestProfileRepository is a mock type for the GuestProfileRepositoryFacade interface
type MockGuestProfileRepository struct {
	mock.Mock
}

func (m *MockGuestProfileRepository) FindGuestProfileByUserID(ctx context.Context, userID string) (*domain.GuestProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestProfile), args.Error(1)
}

func (m *MockGuestProfileRepository) GetOrCreateGuestProfile(ctx context.Context, profile domain.GuestProfile) (*domain.GuestProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestProfile), args.Error(1)
}

func (m *MockGuestProfileRepository) UpdateGuestProfile(ctx context.Context, guestProfileID string, patch portsrepo.GuestProfilePatch) error {
	args := m.Called(ctx, guestProfileID, patch)
	return args.Error(0)
}

func (m *MockGuestProfileRepository) RecordApprovedVisit(ctx context.Context, guestProfileID, visitDate string) error {
	args := m.Called(ctx, guestProfileID, visitDate)
	return args.Error(0)
}

func (m *MockGuestProfileRepository) MarkGuestAsMember(ctx context.Context, userID, membershipID string) error {
	args := m.Called(ctx, userID, membershipID)
	return args.Error(0)
}

var _ portsrepo.GuestProfileRepositoryFacade = (*MockGuestProfileRepository)(nil)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// MockOrgAuthorizer is a mock type for the OrgAuthorizerSvc interface
type MockOrgAuthorizer struct {
	mock.Mock
}

func (m *MockOrgAuthorizer) RequireOrgAdmin(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgMembership), args.Error(1)
}

func (m *MockOrgAuthorizer) RequireSpaceAdmin(ctx context.Context, userID, spaceID string) (*domain.OrgMembership, *domain.CoworkingSpace, error) {
	args := m.Called(ctx, userID, spaceID)
	var membership *domain.OrgMembership
	if args.Get(0) != nil {
		membership = args.Get(0).(*domain.OrgMembership)
	}
	var space *domain.CoworkingSpace
	if args.Get(1) != nil {
		space = args.Get(1).(*domain.CoworkingSpace)
	}
	return membership, space, args.Error(2)
}

func (m *MockOrgAuthorizer) RequireOrgMember(ctx context.Context, userID, orgID string) (*domain.OrgMembership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgMembership), args.Error(1)
}

func (m *MockOrgAuthorizer) IsOrgMember(ctx context.Context, userID, orgID string) (bool, error) {
	args := m.Called(ctx, userID, orgID)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.OrgAuthorizerSvc = (*MockOrgAuthorizer)(nil)

// MockNotificationService is a mock type for the NotificationSvcFacade interface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Dispatch(ctx context.Context, notification domain.Notification) {
	m.Called(ctx, notification)
}

func (m *MockNotificationService) ListMyNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

// --- Shared fixtures ---

// weeklyHours returns a schedule that is open 08:00-18:00 every day.
func weeklyHours() []domain.OperatingHoursDay {
	hours := make([]domain.OperatingHoursDay, 7)
	for d := 0; d < 7; d++ {
		hours[d] = domain.OperatingHoursDay{
			DayOfWeek:    d,
			OpenMinutes:  8 * 60,
			CloseMinutes: 18 * 60,
		}
	}
	return hours
}

// futureDate returns a bookable date safely ahead of "today" in any timezone.
func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(timeutils.DateLayout)
}

func strPtr(s string) *string {
	return &s
}
