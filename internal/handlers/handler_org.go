package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orgHandler handles HTTP requests related to organizations and their
// co-working space.
type orgHandler struct {
	orgService   portssvc.OrgSvcFacade
	spaceService portssvc.SpaceSvcFacade
}

func newOrgHandler(os portssvc.OrgSvcFacade, ss portssvc.SpaceSvcFacade) *orgHandler {
	return &orgHandler{orgService: os, spaceService: ss}
}

// registerOrgRoutes registers routes for organizations, memberships and the
// org's space.
func registerOrgRoutes(rg *gin.RouterGroup, orgService portssvc.OrgSvcFacade, spaceService portssvc.SpaceSvcFacade) {
	h := newOrgHandler(orgService, spaceService)

	orgs := rg.Group("/orgs")
	{
		orgs.POST("", h.createOrg)
		orgs.GET("", h.listMyOrgs)
	}

	orgSpecific := rg.Group("/orgs/:org_id")
	{
		orgSpecific.GET("", h.getOrg)
		orgSpecific.POST("/members", h.addMember)
		orgSpecific.POST("/space", h.createSpace)
		orgSpecific.GET("/space", h.getSpace)
	}
}

// createOrg godoc
// @Summary Create a new organization
// @Description Creates an organization and makes the creator its first admin.
// @Tags orgs
// @Accept json
// @Produce json
// @Param org body dto.CreateOrgRequest true "Organization details"
// @Success 201 {object} dto.OrgResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Slug already taken"
// @Security BearerAuth
// @Router /orgs [post]
func (h *orgHandler) createOrg(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), req.Name, req.Slug, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Organization created", slog.String("org_id", org.OrgID), slog.String("slug", org.Slug))
	c.JSON(http.StatusCreated, dto.ToOrgResponse(org))
}

// listMyOrgs godoc
// @Summary List organizations for current user
// @Description Retrieves the organizations the authenticated user belongs to.
// @Tags orgs
// @Produce json
// @Success 200 {object} dto.ListOrgsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /orgs [get]
func (h *orgHandler) listMyOrgs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	orgs, err := h.orgService.ListUserOrgs(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrgsResponse(orgs))
}

// getOrg godoc
// @Summary Get an organization
// @Description Retrieves one organization. Caller must be a member.
// @Tags orgs
// @Produce json
// @Param org_id path string true "Organization ID"
// @Success 200 {object} dto.OrgResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orgs/{org_id} [get]
func (h *orgHandler) getOrg(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if _, err := h.orgService.RequireOrgMember(c.Request.Context(), userID, orgID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	org, err := h.orgService.GetOrgByID(c.Request.Context(), orgID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrgResponse(org))
}

// addMember godoc
// @Summary Add a member to an organization
// @Description Adds a user to the organization with a role (admin only).
// @Tags orgs
// @Accept json
// @Param org_id path string true "Organization ID"
// @Param member body dto.AddOrgMemberRequest true "User ID and role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "User is already a member"
// @Security BearerAuth
// @Router /orgs/{org_id}/members [post]
func (h *orgHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.AddOrgMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.orgService.AddMember(c.Request.Context(), userID, req.UserID, orgID, req.Role); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Member added to org", slog.String("org_id", orgID), slog.String("target_user_id", req.UserID))
	c.Status(http.StatusNoContent)
}

// createSpace godoc
// @Summary Create the org's co-working space
// @Description Creates the organization's single co-working space (admin only).
// @Tags spaces
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param space body dto.CreateSpaceRequest true "Space configuration"
// @Success 201 {object} dto.SpaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Org already has a space"
// @Security BearerAuth
// @Router /orgs/{org_id}/space [post]
func (h *orgHandler) createSpace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	space, err := h.spaceService.CreateSpace(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Space created", slog.String("space_id", space.SpaceID), slog.String("org_id", orgID))
	c.JSON(http.StatusCreated, dto.ToSpaceResponse(space))
}

// getSpace godoc
// @Summary Get the org's co-working space
// @Description Retrieves the organization's space. Caller must be a member.
// @Tags spaces
// @Produce json
// @Param org_id path string true "Organization ID"
// @Success 200 {object} dto.SpaceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orgs/{org_id}/space [get]
func (h *orgHandler) getSpace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	space, err := h.spaceService.GetSpaceForMember(c.Request.Context(), orgID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSpaceResponse(space))
}
