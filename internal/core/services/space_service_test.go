package services_test

import (
	"context"
	"testing"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portsrepo "github.com/astn-platform/space_booking_app/internal/core/ports/repositories"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/core/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// weeklyHoursRequest mirrors weeklyHours as the client would send it.
func weeklyHoursRequest() []dto.OperatingHoursDayRequest {
	reqs := make([]dto.OperatingHoursDayRequest, 7)
	for d := 0; d < 7; d++ {
		reqs[d] = dto.OperatingHoursDayRequest{
			DayOfWeek:    d,
			OpenMinutes:  8 * 60,
			CloseMinutes: 18 * 60,
		}
	}
	return reqs
}

// --- Test Suite Setup ---

type SpaceServiceTestSuite struct {
	suite.Suite
	mockSpaceRepo  *MockSpaceRepository
	mockOrgRepo    *MockOrgRepository
	mockAuthorizer *MockOrgAuthorizer
	service        portssvc.SpaceSvcFacade

	orgID   string
	adminID string
}

func (suite *SpaceServiceTestSuite) SetupTest() {
	suite.mockSpaceRepo = new(MockSpaceRepository)
	suite.mockOrgRepo = new(MockOrgRepository)
	suite.mockAuthorizer = new(MockOrgAuthorizer)
	suite.service = services.NewSpaceService(suite.mockSpaceRepo, suite.mockOrgRepo, suite.mockAuthorizer)

	suite.orgID = uuid.NewString()
	suite.adminID = uuid.NewString()
}

func (suite *SpaceServiceTestSuite) expectOrgAdmin() {
	membership := &domain.OrgMembership{
		MembershipID: uuid.NewString(),
		OrgID:        suite.orgID,
		UserID:       suite.adminID,
		Role:         domain.OrgRoleAdmin,
	}
	suite.mockAuthorizer.On("RequireOrgAdmin", mock.Anything, suite.adminID, suite.orgID).Return(membership, nil).Once()
}

// --- CreateSpace ---

func (suite *SpaceServiceTestSuite) TestCreateSpace_Success() {
	ctx := context.Background()
	req := dto.CreateSpaceRequest{
		Name:               "Main Floor",
		Capacity:           12,
		Timezone:           "Europe/London",
		OperatingHours:     weeklyHoursRequest(),
		GuestAccessEnabled: true,
	}

	suite.expectOrgAdmin()
	suite.mockSpaceRepo.On("FindSpaceByOrgID", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSpaceRepo.On("SaveSpace", ctx, mock.AnythingOfType("domain.CoworkingSpace")).Return(nil).Once()
	suite.mockOrgRepo.On("SetHasCoworkingSpace", ctx, suite.orgID, true, suite.adminID).Return(nil).Once()

	space, err := suite.service.CreateSpace(ctx, suite.orgID, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(space)
	suite.NotEmpty(space.SpaceID)
	suite.Equal(suite.orgID, space.OrgID)
	suite.Equal(12, space.Capacity)
	suite.Len(space.OperatingHours, 7)
	suite.NotNil(space.CustomVisitFields)
	suite.Equal(suite.adminID, space.CreatedBy)

	suite.mockSpaceRepo.AssertExpectations(suite.T())
	suite.mockOrgRepo.AssertExpectations(suite.T())
}

func (suite *SpaceServiceTestSuite) TestCreateSpace_OrgAlreadyHasSpace() {
	ctx := context.Background()
	req := dto.CreateSpaceRequest{
		Name:           "Second Floor",
		Capacity:       5,
		Timezone:       "UTC",
		OperatingHours: weeklyHoursRequest(),
	}
	existing := &domain.CoworkingSpace{SpaceID: uuid.NewString(), OrgID: suite.orgID}

	suite.expectOrgAdmin()
	suite.mockSpaceRepo.On("FindSpaceByOrgID", ctx, suite.orgID).Return(existing, nil).Once()

	space, err := suite.service.CreateSpace(ctx, suite.orgID, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(space)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockSpaceRepo.AssertNotCalled(suite.T(), "SaveSpace", mock.Anything, mock.Anything)
}

func (suite *SpaceServiceTestSuite) TestCreateSpace_IncompleteSchedule() {
	ctx := context.Background()
	req := dto.CreateSpaceRequest{
		Name:           "Main Floor",
		Capacity:       5,
		Timezone:       "UTC",
		OperatingHours: weeklyHoursRequest()[:6], // missing a weekday
	}

	suite.expectOrgAdmin()

	space, err := suite.service.CreateSpace(ctx, suite.orgID, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(space)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SpaceServiceTestSuite) TestCreateSpace_OpenAfterClose() {
	ctx := context.Background()
	hours := weeklyHoursRequest()
	hours[2].OpenMinutes = 19 * 60
	req := dto.CreateSpaceRequest{
		Name:           "Main Floor",
		Capacity:       5,
		Timezone:       "UTC",
		OperatingHours: hours,
	}

	suite.expectOrgAdmin()

	space, err := suite.service.CreateSpace(ctx, suite.orgID, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(space)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SpaceServiceTestSuite) TestCreateSpace_InvalidTimezone() {
	ctx := context.Background()
	req := dto.CreateSpaceRequest{
		Name:           "Main Floor",
		Capacity:       5,
		Timezone:       "Mars/Olympus_Mons",
		OperatingHours: weeklyHoursRequest(),
	}

	suite.expectOrgAdmin()

	space, err := suite.service.CreateSpace(ctx, suite.orgID, req, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(space)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateSpace ---

func (suite *SpaceServiceTestSuite) TestUpdateSpace_Success() {
	ctx := context.Background()
	spaceID := uuid.NewString()
	space := &domain.CoworkingSpace{SpaceID: spaceID, OrgID: suite.orgID}
	membership := &domain.OrgMembership{MembershipID: uuid.NewString(), Role: domain.OrgRoleAdmin}
	newCap := 20
	req := dto.UpdateSpaceRequest{Capacity: &newCap}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, suite.adminID, spaceID).Return(membership, space, nil).Once()
	suite.mockSpaceRepo.On("UpdateSpace", ctx, spaceID, mock.MatchedBy(func(p portsrepo.SpacePatch) bool {
		return p.Capacity != nil && *p.Capacity == 20 && p.Name == nil
	}), suite.adminID).Return(nil).Once()

	err := suite.service.UpdateSpace(ctx, spaceID, req, suite.adminID)

	suite.Require().NoError(err)
	suite.mockSpaceRepo.AssertExpectations(suite.T())
}

func (suite *SpaceServiceTestSuite) TestUpdateSpace_CapacityBelowOne() {
	ctx := context.Background()
	spaceID := uuid.NewString()
	space := &domain.CoworkingSpace{SpaceID: spaceID, OrgID: suite.orgID}
	membership := &domain.OrgMembership{MembershipID: uuid.NewString(), Role: domain.OrgRoleAdmin}
	badCap := 0
	req := dto.UpdateSpaceRequest{Capacity: &badCap}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, suite.adminID, spaceID).Return(membership, space, nil).Once()

	err := suite.service.UpdateSpace(ctx, spaceID, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSpaceRepo.AssertNotCalled(suite.T(), "UpdateSpace", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateCustomVisitFields ---

func (suite *SpaceServiceTestSuite) TestUpdateCustomVisitFields_Success() {
	ctx := context.Background()
	spaceID := uuid.NewString()
	space := &domain.CoworkingSpace{SpaceID: spaceID, OrgID: suite.orgID}
	membership := &domain.OrgMembership{MembershipID: uuid.NewString(), Role: domain.OrgRoleAdmin}
	fields := []domain.CustomVisitField{
		{FieldID: "purpose", Label: "Purpose of visit", Type: domain.FieldTypeTextarea, Required: true},
		{FieldID: "referral", Label: "How did you hear about us?", Type: domain.FieldTypeSelect, Options: []string{"Friend", "Online"}},
	}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, suite.adminID, spaceID).Return(membership, space, nil).Once()
	suite.mockSpaceRepo.On("UpdateCustomVisitFields", ctx, spaceID, fields, suite.adminID).Return(nil).Once()

	err := suite.service.UpdateCustomVisitFields(ctx, spaceID, fields, suite.adminID)

	suite.Require().NoError(err)
	suite.mockSpaceRepo.AssertExpectations(suite.T())
}

func (suite *SpaceServiceTestSuite) TestUpdateCustomVisitFields_SelectWithoutOptions() {
	ctx := context.Background()
	spaceID := uuid.NewString()
	space := &domain.CoworkingSpace{SpaceID: spaceID, OrgID: suite.orgID}
	membership := &domain.OrgMembership{MembershipID: uuid.NewString(), Role: domain.OrgRoleAdmin}
	fields := []domain.CustomVisitField{
		{FieldID: "referral", Label: "How did you hear about us?", Type: domain.FieldTypeSelect},
	}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, suite.adminID, spaceID).Return(membership, space, nil).Once()

	err := suite.service.UpdateCustomVisitFields(ctx, spaceID, fields, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SpaceServiceTestSuite) TestUpdateCustomVisitFields_DuplicateFieldID() {
	ctx := context.Background()
	spaceID := uuid.NewString()
	space := &domain.CoworkingSpace{SpaceID: spaceID, OrgID: suite.orgID}
	membership := &domain.OrgMembership{MembershipID: uuid.NewString(), Role: domain.OrgRoleAdmin}
	fields := []domain.CustomVisitField{
		{FieldID: "purpose", Label: "Purpose", Type: domain.FieldTypeText},
		{FieldID: "purpose", Label: "Purpose again", Type: domain.FieldTypeText},
	}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, suite.adminID, spaceID).Return(membership, space, nil).Once()

	err := suite.service.UpdateCustomVisitFields(ctx, spaceID, fields, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- DeleteSpace ---

func (suite *SpaceServiceTestSuite) TestDeleteSpace_Success() {
	ctx := context.Background()
	spaceID := uuid.NewString()
	space := &domain.CoworkingSpace{SpaceID: spaceID, OrgID: suite.orgID}
	membership := &domain.OrgMembership{MembershipID: uuid.NewString(), Role: domain.OrgRoleAdmin}

	suite.mockAuthorizer.On("RequireSpaceAdmin", ctx, suite.adminID, spaceID).Return(membership, space, nil).Once()
	suite.mockSpaceRepo.On("DeleteSpace", ctx, spaceID).Return(nil).Once()
	suite.mockOrgRepo.On("SetHasCoworkingSpace", ctx, suite.orgID, false, suite.adminID).Return(nil).Once()

	err := suite.service.DeleteSpace(ctx, spaceID, suite.adminID)

	suite.Require().NoError(err)
	suite.mockSpaceRepo.AssertExpectations(suite.T())
	suite.mockOrgRepo.AssertExpectations(suite.T())
}

// --- GetSpaceBySlug ---

func (suite *SpaceServiceTestSuite) TestGetSpaceBySlug_Success() {
	ctx := context.Background()
	org := &domain.Organization{OrgID: suite.orgID, Name: "Makers Guild", Slug: "makers-guild"}
	space := &domain.CoworkingSpace{
		SpaceID:            uuid.NewString(),
		OrgID:              suite.orgID,
		Name:               "Main Floor",
		Capacity:           10,
		Timezone:           "UTC",
		OperatingHours:     weeklyHours(),
		GuestAccessEnabled: true,
	}

	suite.mockOrgRepo.On("FindOrgBySlug", ctx, "makers-guild").Return(org, nil).Once()
	suite.mockSpaceRepo.On("FindSpaceByOrgID", ctx, suite.orgID).Return(space, nil).Once()

	resp, err := suite.service.GetSpaceBySlug(ctx, "makers-guild")

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(space.SpaceID, resp.SpaceID)
	suite.Equal("Makers Guild", resp.OrgName)
	suite.Equal("makers-guild", resp.OrgSlug)
}

func (suite *SpaceServiceTestSuite) TestGetSpaceBySlug_GuestAccessDisabled() {
	// A space with guest access off must look exactly like a missing space.
	ctx := context.Background()
	org := &domain.Organization{OrgID: suite.orgID, Slug: "makers-guild"}
	space := &domain.CoworkingSpace{SpaceID: uuid.NewString(), OrgID: suite.orgID, GuestAccessEnabled: false}

	suite.mockOrgRepo.On("FindOrgBySlug", ctx, "makers-guild").Return(org, nil).Once()
	suite.mockSpaceRepo.On("FindSpaceByOrgID", ctx, suite.orgID).Return(space, nil).Once()

	resp, err := suite.service.GetSpaceBySlug(ctx, "makers-guild")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SpaceServiceTestSuite) TestGetSpaceBySlug_UnknownSlug() {
	ctx := context.Background()

	suite.mockOrgRepo.On("FindOrgBySlug", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.GetSpaceBySlug(ctx, "nope")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSpaceService(t *testing.T) {
	suite.Run(t, new(SpaceServiceTestSuite))
}
