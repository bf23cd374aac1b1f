package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// guestHandler handles the guest side of the visit workflow: applying to
// visit, tracking applications and maintaining the guest profile.
type guestHandler struct {
	guestVisitService   portssvc.GuestVisitSvcFacade
	guestProfileService portssvc.GuestProfileSvcFacade
}

func newGuestHandler(gv portssvc.GuestVisitSvcFacade, gp portssvc.GuestProfileSvcFacade) *guestHandler {
	return &guestHandler{guestVisitService: gv, guestProfileService: gp}
}

// registerGuestRoutes registers the guest-facing routes.
func registerGuestRoutes(rg *gin.RouterGroup, guestVisitService portssvc.GuestVisitSvcFacade, guestProfileService portssvc.GuestProfileSvcFacade) {
	h := newGuestHandler(guestVisitService, guestProfileService)

	// Rate limit applications: 10 per hour per IP keeps form abuse down
	// without hurting legitimate guests.
	rate, _ := limiter.NewRateFromFormatted("10-H")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	rg.POST("/spaces/:space_id/visit-applications", limitMiddleware, h.submitApplication)

	me := rg.Group("/me")
	{
		me.GET("/visit-applications", h.myApplications)
		me.GET("/guest-profile", h.getMyProfile)
		me.PUT("/guest-profile", h.updateMyProfile)
	}

	rg.POST("/orgs/:org_id/guests/:guest_user_id/convert", h.convertGuest)
}

// submitApplication godoc
// @Summary Apply to visit a space as a guest
// @Description Creates a pending guest booking with intake answers and
// @Description creates or refreshes the caller's guest profile.
// @Tags guests
// @Accept json
// @Produce json
// @Param space_id path string true "Space ID"
// @Param application body dto.SubmitVisitApplicationRequest true "Application details"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Guest access disabled"
// @Failure 409 {object} ErrorResponse "Already applied for this date"
// @Security BearerAuth
// @Router /spaces/{space_id}/visit-applications [post]
func (h *guestHandler) submitApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var req dto.SubmitVisitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	booking, err := h.guestVisitService.SubmitVisitApplication(c.Request.Context(), spaceID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Visit application submitted",
		slog.String("booking_id", booking.BookingID),
		slog.String("space_id", spaceID),
		slog.String("date", booking.Date))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// myApplications godoc
// @Summary List the caller's visit applications
// @Description Lists all of the calling guest's applications with space and org context.
// @Tags guests
// @Produce json
// @Success 200 {array} dto.GuestVisitSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/visit-applications [get]
func (h *guestHandler) myApplications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summaries, err := h.guestVisitService.MyVisitApplications(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGuestVisitSummaryListResponse(summaries))
}

// getMyProfile godoc
// @Summary Get the caller's guest profile
// @Tags guests
// @Produce json
// @Success 200 {object} dto.GuestProfileResponse
// @Failure 404 {object} ErrorResponse "No guest profile yet"
// @Security BearerAuth
// @Router /me/guest-profile [get]
func (h *guestHandler) getMyProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.guestProfileService.GetMyGuestProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGuestProfileResponse(profile))
}

// updateMyProfile godoc
// @Summary Update the caller's guest profile
// @Description Lets a guest edit their own contact details. Visit counters
// @Description and membership flags are not editable.
// @Tags guests
// @Accept json
// @Param profile body dto.UpdateGuestProfileRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/guest-profile [put]
func (h *guestHandler) updateMyProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateGuestProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.guestProfileService.UpdateMyGuestProfile(c.Request.Context(), userID, req); err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// convertGuest godoc
// @Summary Mark a guest as converted to member
// @Description Flags the guest's profile as converted after they have been
// @Description added to the org (admin only).
// @Tags guests
// @Param org_id path string true "Organization ID"
// @Param guest_user_id path string true "Guest user ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Guest is not a member yet"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /orgs/{org_id}/guests/{guest_user_id}/convert [post]
func (h *guestHandler) convertGuest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	guestUserID := c.Param("guest_user_id")

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.guestProfileService.MarkGuestAsMember(c.Request.Context(), guestUserID, adminUserID, orgID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Guest marked as member", slog.String("guest_user_id", guestUserID), slog.String("org_id", orgID))
	c.Status(http.StatusNoContent)
}
