package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/core/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type BookingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo *MockBookingRepository
	mockSpaceRepo   *MockSpaceRepository
	mockAuthorizer  *MockOrgAuthorizer
	service         portssvc.BookingSvcFacade

	space  *domain.CoworkingSpace
	userID string
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockSpaceRepo = new(MockSpaceRepository)
	suite.mockAuthorizer = new(MockOrgAuthorizer)
	suite.service = services.NewBookingService(suite.mockBookingRepo, suite.mockSpaceRepo, suite.mockAuthorizer)

	suite.userID = uuid.NewString()
	suite.space = &domain.CoworkingSpace{
		SpaceID:        uuid.NewString(),
		OrgID:          uuid.NewString(),
		Name:           "Main Floor",
		Capacity:       10,
		Timezone:       "UTC",
		OperatingHours: weeklyHours(),
	}
}

func (suite *BookingServiceTestSuite) membership() *domain.OrgMembership {
	return &domain.OrgMembership{
		MembershipID: uuid.NewString(),
		OrgID:        suite.space.OrgID,
		UserID:       suite.userID,
		Role:         domain.OrgRoleMember,
	}
}

// --- CreateMemberBooking ---

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_Success() {
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{
		Date:         futureDate(),
		StartMinutes: 9 * 60,
		EndMinutes:   17 * 60,
		WorkingOn:    strPtr("side project"),
	}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()
	suite.mockBookingRepo.On("FindActiveBookingForDate", ctx, suite.space.SpaceID, suite.userID, req.Date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookingRepo.On("CountConfirmedForDate", ctx, suite.space.SpaceID, req.Date).Return(2, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.SpaceBooking"), mock.Anything).Return(nil).Once()

	booking, warning, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.NotEmpty(booking.BookingID)
	suite.Equal(suite.space.SpaceID, booking.SpaceID)
	suite.Equal(suite.userID, booking.UserID)
	suite.Equal(req.Date, booking.Date)
	suite.Equal(domain.BookingTypeMember, booking.BookingType)
	suite.Equal(domain.BookingConfirmed, booking.Status)
	suite.Equal(req.WorkingOn, booking.WorkingOn)
	suite.WithinDuration(time.Now(), booking.CreatedAt, time.Second)
	suite.Nil(warning) // 3 of 10 is comfortably available

	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_NearingCapacityWarning() {
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{Date: futureDate(), StartMinutes: 9 * 60, EndMinutes: 17 * 60}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()
	suite.mockBookingRepo.On("FindActiveBookingForDate", ctx, suite.space.SpaceID, suite.userID, req.Date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookingRepo.On("CountConfirmedForDate", ctx, suite.space.SpaceID, req.Date).Return(7, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.SpaceBooking"), mock.Anything).Return(nil).Once()

	booking, warning, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.Require().NotNil(warning) // the 8th of 10 crosses the 80% threshold
	suite.Equal(domain.CapacityNearing, *warning)

	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_AtCapacityStillBooks() {
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{Date: futureDate(), StartMinutes: 9 * 60, EndMinutes: 17 * 60}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()
	suite.mockBookingRepo.On("FindActiveBookingForDate", ctx, suite.space.SpaceID, suite.userID, req.Date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookingRepo.On("CountConfirmedForDate", ctx, suite.space.SpaceID, req.Date).Return(10, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.SpaceBooking"), mock.Anything).Return(nil).Once()

	booking, warning, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.Require().NotNil(warning)
	suite.Equal(domain.CapacityAtCapacity, *warning)

	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_SpaceNotFound() {
	ctx := context.Background()
	spaceID := uuid.NewString()
	req := dto.CreateMemberBookingRequest{Date: futureDate(), StartMinutes: 9 * 60, EndMinutes: 17 * 60}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, spaceID).Return(nil, apperrors.ErrNotFound).Once()

	booking, _, err := suite.service.CreateMemberBooking(ctx, spaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockSpaceRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_NotOrgMember() {
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{Date: futureDate(), StartMinutes: 9 * 60, EndMinutes: 17 * 60}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(nil, apperrors.NewForbiddenError("not a member of this organization")).Once()

	booking, _, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_PastDate() {
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{Date: "2020-01-06", StartMinutes: 9 * 60, EndMinutes: 17 * 60}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()

	booking, _, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_ClosedDay() {
	ctx := context.Background()
	for d := range suite.space.OperatingHours {
		suite.space.OperatingHours[d].IsClosed = true
	}
	req := dto.CreateMemberBookingRequest{Date: futureDate(), StartMinutes: 9 * 60, EndMinutes: 17 * 60}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()

	booking, _, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_OutsideOperatingHours() {
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{Date: futureDate(), StartMinutes: 6 * 60, EndMinutes: 17 * 60}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()

	booking, _, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_DateConflict() {
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{Date: futureDate(), StartMinutes: 9 * 60, EndMinutes: 17 * 60}
	existing := &domain.SpaceBooking{BookingID: uuid.NewString(), Status: domain.BookingConfirmed}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()
	suite.mockBookingRepo.On("FindActiveBookingForDate", ctx, suite.space.SpaceID, suite.userID, req.Date).Return(existing, nil).Once()

	booking, _, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_DuplicateOnSave() {
	// A concurrent booking can slip in between the conflict check and the
	// insert; the unique index surfaces it as a duplicate.
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{Date: futureDate(), StartMinutes: 9 * 60, EndMinutes: 17 * 60}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()
	suite.mockBookingRepo.On("FindActiveBookingForDate", ctx, suite.space.SpaceID, suite.userID, req.Date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookingRepo.On("CountConfirmedForDate", ctx, suite.space.SpaceID, req.Date).Return(0, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.SpaceBooking"), mock.Anything).Return(apperrors.ErrDuplicate).Once()

	booking, _, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateMemberBooking_TagTooLong() {
	ctx := context.Background()
	req := dto.CreateMemberBookingRequest{
		Date:         futureDate(),
		StartMinutes: 9 * 60,
		EndMinutes:   17 * 60,
		WorkingOn:    strPtr(strings.Repeat("x", 141)),
	}

	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, suite.userID, suite.space.OrgID).Return(suite.membership(), nil).Once()

	booking, _, err := suite.service.CreateMemberBooking(ctx, suite.space.SpaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- AdminCreateBooking ---

func (suite *BookingServiceTestSuite) TestAdminCreateBooking_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	req := dto.AdminCreateBookingRequest{
		UserID: targetID,
		CreateMemberBookingRequest: dto.CreateMemberBookingRequest{
			Date:         futureDate(),
			StartMinutes: 9 * 60,
			EndMinutes:   17 * 60,
		},
	}
	adminMembership := &domain.OrgMembership{MembershipID: uuid.NewString(), OrgID: suite.space.OrgID, UserID: adminID, Role: domain.OrgRoleAdmin}
	targetMembership := &domain.OrgMembership{MembershipID: uuid.NewString(), OrgID: suite.space.OrgID, UserID: targetID, Role: domain.OrgRoleMember}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, adminID, suite.space.SpaceID).Return(adminMembership, suite.space, nil).Once()
	suite.mockAuthorizer.On("IsOrgMember", ctx, targetID, suite.space.OrgID).Return(true, nil).Once()
	suite.mockSpaceRepo.On("FindSpaceByID", ctx, suite.space.SpaceID).Return(suite.space, nil).Once()
	suite.mockAuthorizer.On("RequireOrgMember", ctx, targetID, suite.space.OrgID).Return(targetMembership, nil).Once()
	suite.mockBookingRepo.On("FindActiveBookingForDate", ctx, suite.space.SpaceID, targetID, req.Date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookingRepo.On("CountConfirmedForDate", ctx, suite.space.SpaceID, req.Date).Return(0, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.SpaceBooking"), mock.Anything).Return(nil).Once()

	booking, _, err := suite.service.AdminCreateBooking(ctx, suite.space.SpaceID, req, adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.Equal(targetID, booking.UserID) // booked on behalf of the target, not the admin

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestAdminCreateBooking_TargetNotOrgMember() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	req := dto.AdminCreateBookingRequest{
		UserID: targetID,
		CreateMemberBookingRequest: dto.CreateMemberBookingRequest{
			Date:         futureDate(),
			StartMinutes: 9 * 60,
			EndMinutes:   17 * 60,
		},
	}
	adminMembership := &domain.OrgMembership{MembershipID: uuid.NewString(), OrgID: suite.space.OrgID, UserID: adminID, Role: domain.OrgRoleAdmin}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, adminID, suite.space.SpaceID).Return(adminMembership, suite.space, nil).Once()
	suite.mockAuthorizer.On("IsOrgMember", ctx, targetID, suite.space.OrgID).Return(false, nil).Once()

	booking, _, err := suite.service.AdminCreateBooking(ctx, suite.space.SpaceID, req, adminID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestAdminCreateBooking_NotSpaceAdmin() {
	ctx := context.Background()
	adminID := uuid.NewString()
	req := dto.AdminCreateBookingRequest{
		UserID: uuid.NewString(),
		CreateMemberBookingRequest: dto.CreateMemberBookingRequest{
			Date:         futureDate(),
			StartMinutes: 9 * 60,
			EndMinutes:   17 * 60,
		},
	}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, adminID, suite.space.SpaceID).Return(nil, nil, apperrors.NewForbiddenError("admin access required")).Once()

	booking, _, err := suite.service.AdminCreateBooking(ctx, suite.space.SpaceID, req, adminID)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- CancelBooking ---

func (suite *BookingServiceTestSuite) TestCancelBooking_ByOwner() {
	ctx := context.Background()
	booking := &domain.SpaceBooking{
		BookingID:   uuid.NewString(),
		SpaceID:     suite.space.SpaceID,
		UserID:      suite.userID,
		Date:        futureDate(),
		BookingType: domain.BookingTypeMember,
		Status:      domain.BookingConfirmed,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("UpdateBooking", ctx, mock.MatchedBy(func(b domain.SpaceBooking) bool {
		return b.Status == domain.BookingCancelled && b.CancelledAt != nil
	})).Return(nil).Once()

	err := suite.service.CancelBooking(ctx, booking.BookingID, suite.userID)

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
	// The owner path never consults the authorizer.
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "RequireSpaceAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCancelBooking_ByAdmin() {
	ctx := context.Background()
	adminID := uuid.NewString()
	booking := &domain.SpaceBooking{
		BookingID: uuid.NewString(),
		SpaceID:   suite.space.SpaceID,
		UserID:    suite.userID,
		Status:    domain.BookingPending,
	}
	adminMembership := &domain.OrgMembership{MembershipID: uuid.NewString(), OrgID: suite.space.OrgID, UserID: adminID, Role: domain.OrgRoleAdmin}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()
	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, adminID, suite.space.SpaceID).Return(adminMembership, suite.space, nil).Once()
	suite.mockBookingRepo.On("UpdateBooking", ctx, mock.MatchedBy(func(b domain.SpaceBooking) bool {
		return b.Status == domain.BookingCancelled
	})).Return(nil).Once()

	err := suite.service.CancelBooking(ctx, booking.BookingID, adminID)

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCancelBooking_Forbidden() {
	ctx := context.Background()
	strangerID := uuid.NewString()
	booking := &domain.SpaceBooking{
		BookingID: uuid.NewString(),
		SpaceID:   suite.space.SpaceID,
		UserID:    suite.userID,
		Status:    domain.BookingConfirmed,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()
	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, strangerID, suite.space.SpaceID).Return(nil, nil, apperrors.NewForbiddenError("admin access required")).Once()

	err := suite.service.CancelBooking(ctx, booking.BookingID, strangerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "UpdateBooking", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCancelBooking_AlreadyCancelled() {
	ctx := context.Background()
	booking := &domain.SpaceBooking{
		BookingID: uuid.NewString(),
		SpaceID:   suite.space.SpaceID,
		UserID:    suite.userID,
		Status:    domain.BookingCancelled,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()

	err := suite.service.CancelBooking(ctx, booking.BookingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *BookingServiceTestSuite) TestCancelBooking_RejectedCannotBeCancelled() {
	ctx := context.Background()
	booking := &domain.SpaceBooking{
		BookingID: uuid.NewString(),
		SpaceID:   suite.space.SpaceID,
		UserID:    suite.userID,
		Status:    domain.BookingRejected,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()

	err := suite.service.CancelBooking(ctx, booking.BookingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "UpdateBooking", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCancelBooking_NotFound() {
	ctx := context.Background()
	bookingID := uuid.NewString()

	suite.mockBookingRepo.On("FindBookingByID", ctx, bookingID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.CancelBooking(ctx, bookingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateBookingTags ---

func (suite *BookingServiceTestSuite) TestUpdateBookingTags_Success() {
	ctx := context.Background()
	booking := &domain.SpaceBooking{
		BookingID: uuid.NewString(),
		SpaceID:   suite.space.SpaceID,
		UserID:    suite.userID,
		Status:    domain.BookingConfirmed,
	}
	req := dto.UpdateBookingTagsRequest{WorkingOn: strPtr("API redesign")}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("UpdateBookingTags", ctx, booking.BookingID, mock.AnythingOfType("repositories.BookingTagsPatch")).Return(nil).Once()

	err := suite.service.UpdateBookingTags(ctx, booking.BookingID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestUpdateBookingTags_NotOwner() {
	ctx := context.Background()
	booking := &domain.SpaceBooking{
		BookingID: uuid.NewString(),
		SpaceID:   suite.space.SpaceID,
		UserID:    suite.userID,
		Status:    domain.BookingConfirmed,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()

	err := suite.service.UpdateBookingTags(ctx, booking.BookingID, dto.UpdateBookingTagsRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "UpdateBookingTags", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestUpdateBookingTags_InactiveBooking() {
	ctx := context.Background()
	booking := &domain.SpaceBooking{
		BookingID: uuid.NewString(),
		SpaceID:   suite.space.SpaceID,
		UserID:    suite.userID,
		Status:    domain.BookingCancelled,
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()

	err := suite.service.UpdateBookingTags(ctx, booking.BookingID, dto.UpdateBookingTagsRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *BookingServiceTestSuite) TestUpdateBookingTags_RepoError() {
	ctx := context.Background()
	booking := &domain.SpaceBooking{
		BookingID: uuid.NewString(),
		SpaceID:   suite.space.SpaceID,
		UserID:    suite.userID,
		Status:    domain.BookingPending,
	}
	expectedErr := assert.AnError

	suite.mockBookingRepo.On("FindBookingByID", ctx, booking.BookingID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("UpdateBookingTags", ctx, booking.BookingID, mock.AnythingOfType("repositories.BookingTagsPatch")).Return(expectedErr).Once()

	err := suite.service.UpdateBookingTags(ctx, booking.BookingID, dto.UpdateBookingTagsRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

func TestBookingService(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
