package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/astn-platform/space_booking_app/internal/core/ports/services"
	"github.com/astn-platform/space_booking_app/internal/dto"
	"github.com/astn-platform/space_booking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// spaceHandler handles HTTP requests for a single co-working space.
type spaceHandler struct {
	spaceService portssvc.SpaceSvcFacade
}

func newSpaceHandler(ss portssvc.SpaceSvcFacade) *spaceHandler {
	return &spaceHandler{spaceService: ss}
}

// registerSpaceRoutes registers the space-specific admin routes.
func registerSpaceRoutes(rg *gin.RouterGroup, spaceService portssvc.SpaceSvcFacade) {
	h := newSpaceHandler(spaceService)

	space := rg.Group("/spaces/:space_id")
	{
		space.PUT("", h.updateSpace)
		space.DELETE("", h.deleteSpace)
		space.PUT("/visit-fields", h.updateVisitFields)
	}
}

// registerPublicSpaceRoutes registers the unauthenticated guest-facing route.
func registerPublicSpaceRoutes(rg *gin.Engine, spaceService portssvc.SpaceSvcFacade) {
	h := newSpaceHandler(spaceService)
	rg.GET("/api/v1/spaces/by-slug/:slug", h.getSpaceBySlug)
}

// updateSpace godoc
// @Summary Update a space
// @Description Partially updates the space configuration (admin only).
// @Tags spaces
// @Accept json
// @Param space_id path string true "Space ID"
// @Param space body dto.UpdateSpaceRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id} [put]
func (h *spaceHandler) updateSpace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var req dto.UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.spaceService.UpdateSpace(c.Request.Context(), spaceID, req, userID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Space updated", slog.String("space_id", spaceID))
	c.Status(http.StatusNoContent)
}

// deleteSpace godoc
// @Summary Delete a space
// @Description Deletes the space; booking history is kept (admin only).
// @Tags spaces
// @Param space_id path string true "Space ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id} [delete]
func (h *spaceHandler) deleteSpace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.spaceService.DeleteSpace(c.Request.Context(), spaceID, userID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Space deleted", slog.String("space_id", spaceID))
	c.Status(http.StatusNoContent)
}

// updateVisitFields godoc
// @Summary Replace the guest intake form
// @Description Replaces the custom visit field definitions (admin only).
// @Tags spaces
// @Accept json
// @Param space_id path string true "Space ID"
// @Param fields body dto.UpdateCustomVisitFieldsRequest true "Field definitions"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{space_id}/visit-fields [put]
func (h *spaceHandler) updateVisitFields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("space_id")

	var req dto.UpdateCustomVisitFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.spaceService.UpdateCustomVisitFields(c.Request.Context(), spaceID, req.ToDomainFields(), userID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Custom visit fields updated", slog.String("space_id", spaceID))
	c.Status(http.StatusNoContent)
}

// getSpaceBySlug godoc
// @Summary Get a space by org slug
// @Description Public guest-safe view of a space, looked up by the owning
// @Description org's slug. Only available while guest access is enabled.
// @Tags spaces
// @Produce json
// @Param slug path string true "Organization slug"
// @Success 200 {object} dto.PublicSpaceResponse
// @Failure 404 {object} ErrorResponse
// @Router /spaces/by-slug/{slug} [get]
func (h *spaceHandler) getSpaceBySlug(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	slug := c.Param("slug")

	space, err := h.spaceService.GetSpaceBySlug(c.Request.Context(), slug)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, space)
}
