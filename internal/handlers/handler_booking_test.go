package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/astn-platform/space_booking_app/internal/core/domain"
	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/handlers"
	"github.com/astn-platform/space_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BookingService ---

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateMemberBooking(ctx context.Context, spaceID string, req dto.CreateMemberBookingRequest, userID string) (*domain.SpaceBooking, *domain.CapacityStatus, error) {
	args := m.Called(ctx, spaceID, req, userID)
	var booking *domain.SpaceBooking
	if args.Get(0) != nil {
		booking = args.Get(0).(*domain.SpaceBooking)
	}
	var warning *domain.CapacityStatus
	if args.Get(1) != nil {
		warning = args.Get(1).(*domain.CapacityStatus)
	}
	return booking, warning, args.Error(2)
}

func (m *MockBookingService) AdminCreateBooking(ctx context.Context, spaceID string, req dto.AdminCreateBookingRequest, adminUserID string) (*domain.SpaceBooking, *domain.CapacityStatus, error) {
	args := m.Called(ctx, spaceID, req, adminUserID)
	var booking *domain.SpaceBooking
	if args.Get(0) != nil {
		booking = args.Get(0).(*domain.SpaceBooking)
	}
	var warning *domain.CapacityStatus
	if args.Get(1) != nil {
		warning = args.Get(1).(*domain.CapacityStatus)
	}
	return booking, warning, args.Error(2)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, bookingID, userID string) error {
	args := m.Called(ctx, bookingID, userID)
	return args.Error(0)
}

func (m *MockBookingService) UpdateBookingTags(ctx context.Context, bookingID string, req dto.UpdateBookingTagsRequest, userID string) error {
	args := m.Called(ctx, bookingID, req, userID)
	return args.Error(0)
}

var _ portssvc.BookingSvcFacade = (*MockBookingService)(nil)

// --- Mock ReportingService ---

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TodaysBookings(ctx context.Context, spaceID, adminUserID string) ([]domain.EnrichedBooking, error) {
	args := m.Called(ctx, spaceID, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrichedBooking), args.Error(1)
}

func (m *MockReportingService) BookingsForRange(ctx context.Context, spaceID string, query dto.BookingHistoryQuery, adminUserID string) (*domain.BookingPage, error) {
	args := m.Called(ctx, spaceID, query, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingPage), args.Error(1)
}

func (m *MockReportingService) UtilizationStats(ctx context.Context, spaceID, startDate, endDate, adminUserID string) (*domain.UtilizationStats, error) {
	args := m.Called(ctx, spaceID, startDate, endDate, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilizationStats), args.Error(1)
}

func (m *MockReportingService) GuestConversionStats(ctx context.Context, spaceID, adminUserID string) (*domain.GuestConversionStats, error) {
	args := m.Called(ctx, spaceID, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuestConversionStats), args.Error(1)
}

func (m *MockReportingService) CapacityForDateRange(ctx context.Context, spaceID, startDate, endDate, userID string) (*domain.CapacityRange, error) {
	args := m.Called(ctx, spaceID, startDate, endDate, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapacityRange), args.Error(1)
}

func (m *MockReportingService) ExportBookings(ctx context.Context, spaceID, startDate, endDate, format, adminUserID string, w io.Writer) error {
	args := m.Called(ctx, spaceID, startDate, endDate, format, adminUserID, w)
	return args.Error(0)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---

type BookingHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockBookingService   *MockBookingService
	mockReportingService *MockReportingService
	jwtSecret            string
}

func (suite *BookingHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "space-booking-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockBookingService = new(MockBookingService)
	suite.mockReportingService = new(MockReportingService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterBookingRoutes(v1, suite.mockBookingService, suite.mockReportingService)
}

func (suite *BookingHandlerTestSuite) doJSON(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *BookingHandlerTestSuite) TestCreateBooking_Success() {
	spaceID := uuid.NewString()
	userID := uuid.NewString()
	reqBody := dto.CreateMemberBookingRequest{
		Date:         "2025-06-02",
		StartMinutes: 540,
		EndMinutes:   1020,
	}
	booking := &domain.SpaceBooking{
		BookingID:    uuid.NewString(),
		SpaceID:      spaceID,
		UserID:       userID,
		Date:         reqBody.Date,
		StartMinutes: reqBody.StartMinutes,
		EndMinutes:   reqBody.EndMinutes,
		BookingType:  domain.BookingTypeMember,
		Status:       domain.BookingConfirmed,
	}
	warning := domain.CapacityNearing

	suite.mockBookingService.On("CreateMemberBooking",
		mock.Anything,
		spaceID,
		reqBody,
		userID, // must come from the token, not the body
	).Return(booking, &warning, nil).Once()

	url := fmt.Sprintf("/api/v1/spaces/%s/bookings", spaceID)
	w := suite.doJSON(http.MethodPost, url, reqBody, suite.generateTestToken(userID))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CreateBookingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(booking.BookingID, resp.Booking.BookingID)
	suite.Equal(string(domain.BookingConfirmed), resp.Booking.Status)
	suite.Require().NotNil(resp.CapacityWarning)
	suite.Equal(string(domain.CapacityNearing), *resp.CapacityWarning)

	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_DateConflict() {
	spaceID := uuid.NewString()
	userID := uuid.NewString()
	reqBody := dto.CreateMemberBookingRequest{Date: "2025-06-02", StartMinutes: 540, EndMinutes: 1020}

	suite.mockBookingService.On("CreateMemberBooking", mock.Anything, spaceID, reqBody, userID).
		Return(nil, nil, apperrors.NewConflictError("you already have an active booking for this date")).Once()

	url := fmt.Sprintf("/api/v1/spaces/%s/bookings", spaceID)
	w := suite.doJSON(http.MethodPost, url, reqBody, suite.generateTestToken(userID))

	suite.Equal(http.StatusConflict, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("you already have an active booking for this date", resp.Error)
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_MalformedBody() {
	spaceID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/spaces/%s/bookings", spaceID)
	w := suite.doJSON(http.MethodPost, url, map[string]any{"startMinutes": 540}, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBookingService.AssertNotCalled(suite.T(), "CreateMemberBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingHandlerTestSuite) TestCreateBooking_MissingToken() {
	url := fmt.Sprintf("/api/v1/spaces/%s/bookings", uuid.NewString())
	w := suite.doJSON(http.MethodPost, url, dto.CreateMemberBookingRequest{Date: "2025-06-02", EndMinutes: 1020}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBookingService.AssertNotCalled(suite.T(), "CreateMemberBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingHandlerTestSuite) TestCancelBooking_NoContent() {
	bookingID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockBookingService.On("CancelBooking", mock.Anything, bookingID, userID).Return(nil).Once()

	url := fmt.Sprintf("/api/v1/bookings/%s", bookingID)
	w := suite.doJSON(http.MethodDelete, url, nil, suite.generateTestToken(userID))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *BookingHandlerTestSuite) TestUpdateTags_Forbidden() {
	bookingID := uuid.NewString()
	userID := uuid.NewString()
	reqBody := dto.UpdateBookingTagsRequest{WorkingOn: strPtr("new side project")}

	suite.mockBookingService.On("UpdateBookingTags", mock.Anything, bookingID, reqBody, userID).
		Return(apperrors.NewForbiddenError("only the booking owner can update tags")).Once()

	url := fmt.Sprintf("/api/v1/bookings/%s/tags", bookingID)
	w := suite.doJSON(http.MethodPatch, url, reqBody, suite.generateTestToken(userID))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *BookingHandlerTestSuite) TestGetCapacity_Success() {
	spaceID := uuid.NewString()
	userID := uuid.NewString()
	expected := &domain.CapacityRange{
		Capacity: 10,
		Dates: map[string]domain.DayCapacity{
			"2025-06-02": {Count: 3, Status: domain.CapacityAvailable},
			"2025-06-03": {Count: 9, Status: domain.CapacityNearing},
		},
	}

	suite.mockReportingService.On("CapacityForDateRange", mock.Anything, spaceID, "2025-06-02", "2025-06-03", userID).
		Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/spaces/%s/capacity?startDate=2025-06-02&endDate=2025-06-03", spaceID)
	w := suite.doJSON(http.MethodGet, url, nil, suite.generateTestToken(userID))

	suite.Equal(http.StatusOK, w.Code)

	var resp domain.CapacityRange
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(10, resp.Capacity)
	suite.Equal(expected.Dates["2025-06-03"], resp.Dates["2025-06-03"])

	suite.mockReportingService.AssertExpectations(suite.T())
	suite.mockBookingService.AssertNotCalled(suite.T(), "CreateMemberBooking")
}

func (suite *BookingHandlerTestSuite) TestGetCapacity_MissingRange() {
	spaceID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/spaces/%s/capacity", spaceID)
	w := suite.doJSON(http.MethodGet, url, nil, suite.generateTestToken(uuid.NewString()))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "CapacityForDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func strPtr(s string) *string {
	return &s
}

// --- Run Test Suite ---

func TestBookingHandler(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}
