package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler handles the admin side of the guest workflow plus the
// reporting endpoints.
type adminHandler struct {
	guestVisitService portssvc.GuestVisitSvcFacade
	reportingService  portssvc.ReportingSvcFacade
}

func newAdminHandler(gv portssvc.GuestVisitSvcFacade, rs portssvc.ReportingSvcFacade) *adminHandler {
	return &adminHandler{guestVisitService: gv, reportingService: rs}
}

// registerAdminRoutes registers review and reporting routes. Authorization is
// enforced by the services, not the router.
func registerAdminRoutes(rg *gin.RouterGroup, guestVisitService portssvc.GuestVisitSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newAdminHandler(guestVisitService, reportingService)

	admin := rg.Group("/spaces/:space_id/admin")
	{
		admin.GET("/applications/pending", h.pendingApplications)
		admin.GET("/applications/history", h.applicationHistory)
		admin.POST("/applications/batch-approve", h.batchApprove)

		admin.GET("/reports/today", h.todaysBookings)
		admin.GET("/reports/bookings", h.bookingHistory)
		admin.GET("/reports/utilization", h.utilizationStats)
		admin.GET("/reports/guest-conversion", h.guestConversionStats)
		admin.GET("/reports/export", h.exportBookings)
	}

	bookings := rg.Group("/bookings/:booking_id")
	{
		bookings.POST("/approve", h.approveApplication)
		bookings.POST("/reject", h.rejectApplication)
	}
}

// pendingApplications godoc
// @Summary List pending guest applications
// @Description Lists pending applications enriched with guest profile and intake answers (admin only).
// @Tags admin
// @Produce json
// @Param space_id path string true "Space ID"
// @Success 200 {array} dto.EnrichedBookingResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/admin/applications/pending [get]
func (h *adminHandler) pendingApplications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pending, err := h.guestVisitService.PendingApplications(c.Request.Context(), spaceID, adminUserID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEnrichedBookingListResponse(pending))
}

// applicationHistory godoc
// @Summary Guest visit history for a space
// @Description Lists the space's guest bookings across all states, optionally restricted to one guest (admin only).
// @Tags admin
// @Produce json
// @Param space_id path string true "Space ID"
// @Param guestUserID query string false "Restrict to one guest"
// @Success 200 {array} dto.EnrichedBookingResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/admin/applications/history [get]
func (h *adminHandler) applicationHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var guestUserID *string
	if v := c.Query("guestUserID"); v != "" {
		guestUserID = &v
	}

	history, err := h.guestVisitService.GuestVisitHistory(c.Request.Context(), spaceID, guestUserID, adminUserID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEnrichedBookingListResponse(history))
}

// approveApplication godoc
// @Summary Approve a pending guest application
// @Description Confirms a pending application and records the visit on the guest's profile (admin only).
// @Tags admin
// @Accept json
// @Param booking_id path string true "Booking ID"
// @Param approval body dto.ApproveVisitRequest false "Optional welcome message"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not pending"
// @Security BearerAuth
// @Router /bookings/{booking_id}/approve [post]
func (h *adminHandler) approveApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("booking_id")

	var req dto.ApproveVisitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.guestVisitService.ApproveGuestVisit(c.Request.Context(), bookingID, req.Message, adminUserID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Guest application approved", slog.String("booking_id", bookingID))
	c.Status(http.StatusNoContent)
}

// rejectApplication godoc
// @Summary Reject a pending guest application
// @Description Rejects a pending application with a mandatory reason (admin only).
// @Tags admin
// @Accept json
// @Param booking_id path string true "Booking ID"
// @Param rejection body dto.RejectVisitRequest true "Rejection reason"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not pending"
// @Security BearerAuth
// @Router /bookings/{booking_id}/reject [post]
func (h *adminHandler) rejectApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("booking_id")

	var req dto.RejectVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.guestVisitService.RejectGuestVisit(c.Request.Context(), bookingID, req.Reason, adminUserID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Guest application rejected", slog.String("booking_id", bookingID))
	c.Status(http.StatusNoContent)
}

// batchApprove godoc
// @Summary Approve multiple guest applications
// @Description Approves the given pending applications. One failure never aborts the rest; outcomes are reported per booking.
// @Tags admin
// @Accept json
// @Produce json
// @Param space_id path string true "Space ID"
// @Param batch body dto.BatchApproveRequest true "Booking IDs"
// @Success 200 {object} dto.BatchApprovalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/admin/applications/batch-approve [post]
func (h *adminHandler) batchApprove(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var req dto.BatchApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	results, err := h.guestVisitService.BatchApproveGuestVisits(c.Request.Context(), spaceID, req.BookingIDs, adminUserID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BatchApprovalResponse{Results: results})
}

// todaysBookings godoc
// @Summary Today's bookings
// @Description Lists today's active bookings in the space's timezone (admin only).
// @Tags admin
// @Produce json
// @Param space_id path string true "Space ID"
// @Success 200 {object} dto.TodaysBookingsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/admin/reports/today [get]
func (h *adminHandler) todaysBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	bookings, err := h.reportingService.TodaysBookings(c.Request.Context(), spaceID, adminUserID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	resp := dto.TodaysBookingsResponse{Bookings: dto.ToEnrichedBookingListResponse(bookings)}
	if len(bookings) > 0 {
		resp.Date = bookings[0].Date
	}
	c.JSON(http.StatusOK, resp)
}

// bookingHistory godoc
// @Summary Paged booking history
// @Description Pages through the space's bookings in a date range with optional status and type filters (admin only).
// @Tags admin
// @Produce json
// @Param space_id path string true "Space ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Param bookingType query string false "Filter by booking type"
// @Param cursor query string false "Opaque page cursor"
// @Param limit query int false "Page size (default 50, max 100)"
// @Success 200 {object} dto.BookingPageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/admin/reports/bookings [get]
func (h *adminHandler) bookingHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var query dto.BookingHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, err := h.reportingService.BookingsForRange(c.Request.Context(), spaceID, query, adminUserID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingPageResponse(page))
}

// utilizationStats godoc
// @Summary Utilization statistics
// @Description Aggregates booking volume, utilization rate, peak days and the member/guest split over a date range (admin only).
// @Tags admin
// @Produce json
// @Param space_id path string true "Space ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} domain.UtilizationStats
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/admin/reports/utilization [get]
func (h *adminHandler) utilizationStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	stats, err := h.reportingService.UtilizationStats(c.Request.Context(), spaceID, query.StartDate, query.EndDate, adminUserID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// guestConversionStats godoc
// @Summary Guest conversion statistics
// @Description Summarizes guest-to-member conversion for the space's lifetime (admin only).
// @Tags admin
// @Produce json
// @Param space_id path string true "Space ID"
// @Success 200 {object} domain.GuestConversionStats
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/admin/reports/guest-conversion [get]
func (h *adminHandler) guestConversionStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	stats, err := h.reportingService.GuestConversionStats(c.Request.Context(), spaceID, adminUserID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// exportBookings godoc
// @Summary Export bookings
// @Description Streams the range's bookings as CSV or JSON (admin only).
// @Tags admin
// @Produce text/csv
// @Produce json
// @Param space_id path string true "Space ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param format query string false "csv (default) or json"
// @Success 200 {string} string "Exported data"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/admin/reports/export [get]
func (h *adminHandler) exportBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	filename := fmt.Sprintf("bookings_%s_%s.%s", query.StartDate, query.EndDate, query.Format)
	if query.Format == "json" {
		c.Header("Content-Type", "application/json")
	} else {
		c.Header("Content-Type", "text/csv")
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := h.reportingService.ExportBookings(c.Request.Context(), spaceID, query.StartDate, query.EndDate, query.Format, adminUserID, c.Writer); err != nil {
		// Headers may already be out; log and surface what we can.
		logger.Error("Booking export failed", slog.String("error", err.Error()))
		respondWithError(c, logger, err)
		return
	}
}
