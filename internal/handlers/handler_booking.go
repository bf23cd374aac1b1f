package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookingHandler handles HTTP requests for member bookings and the shared
// capacity calendar.
type bookingHandler struct {
	bookingService   portssvc.BookingSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newBookingHandler(bs portssvc.BookingSvcFacade, rs portssvc.ReportingSvcFacade) *bookingHandler {
	return &bookingHandler{bookingService: bs, reportingService: rs}
}

// RegisterBookingRoutes registers member booking routes and the capacity view.
func RegisterBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newBookingHandler(bookingService, reportingService)

	space := rg.Group("/spaces/:space_id")
	{
		space.POST("/bookings", h.createBooking)
		space.POST("/bookings/admin", h.adminCreateBooking)
		space.GET("/capacity", h.getCapacity)
	}

	bookings := rg.Group("/bookings/:booking_id")
	{
		bookings.DELETE("", h.cancelBooking)
		bookings.PATCH("/tags", h.updateTags)
	}
}

// createBooking godoc
// @Summary Book a day at the space
// @Description Creates a confirmed booking for the calling member. A capacity
// @Description warning may be returned; it never blocks the booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Param space_id path string true "Space ID"
// @Param booking body dto.CreateMemberBookingRequest true "Booking details"
// @Success 201 {object} dto.CreateBookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already booked for this date"
// @Security BearerAuth
// @Router /spaces/{space_id}/bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var req dto.CreateMemberBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	booking, warning, err := h.bookingService.CreateMemberBooking(c.Request.Context(), spaceID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Booking created", slog.String("booking_id", booking.BookingID), slog.String("date", booking.Date))
	c.JSON(http.StatusCreated, dto.ToCreateBookingResponse(booking, warning))
}

// adminCreateBooking godoc
// @Summary Book a day on behalf of a member
// @Description Creates a confirmed booking for another org member (admin only).
// @Tags bookings
// @Accept json
// @Produce json
// @Param space_id path string true "Space ID"
// @Param booking body dto.AdminCreateBookingRequest true "Target user and booking details"
// @Success 201 {object} dto.CreateBookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/bookings/admin [post]
func (h *bookingHandler) adminCreateBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var req dto.AdminCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	booking, warning, err := h.bookingService.AdminCreateBooking(c.Request.Context(), spaceID, req, adminUserID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Booking created by admin",
		slog.String("booking_id", booking.BookingID),
		slog.String("target_user_id", req.UserID))
	c.JSON(http.StatusCreated, dto.ToCreateBookingResponse(booking, warning))
}

// cancelBooking godoc
// @Summary Cancel a booking
// @Description Cancels a booking. Owners may cancel their own; space admins may cancel any.
// @Tags bookings
// @Param booking_id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already cancelled"
// @Security BearerAuth
// @Router /bookings/{booking_id} [delete]
func (h *bookingHandler) cancelBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("booking_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, userID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Booking cancelled", slog.String("booking_id", bookingID))
	c.Status(http.StatusNoContent)
}

// updateTags godoc
// @Summary Update booking tags
// @Description Updates the free-text tags on the caller's own active booking.
// @Tags bookings
// @Accept json
// @Param booking_id path string true "Booking ID"
// @Param tags body dto.UpdateBookingTagsRequest true "Tags to update"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{booking_id}/tags [patch]
func (h *bookingHandler) updateTags(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("booking_id")

	var req dto.UpdateBookingTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.bookingService.UpdateBookingTags(c.Request.Context(), bookingID, req, userID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getCapacity godoc
// @Summary Per-day capacity for a date range
// @Description Returns confirmed counts and capacity status per date. Any org member may call this.
// @Tags bookings
// @Produce json
// @Param space_id path string true "Space ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} domain.CapacityRange
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/capacity [get]
func (h *bookingHandler) getCapacity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	capacityRange, err := h.reportingService.CapacityForDateRange(c.Request.Context(), spaceID, query.StartDate, query.EndDate, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, capacityRange)
}
