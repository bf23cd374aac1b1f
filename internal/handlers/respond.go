package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/astn-platform/space_booking_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto the HTTP response. AppError
// messages are safe to surface; anything else gets a generic body so internal
// details never leak to clients.
func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.String("error", err.Error()))
			c.JSON(appErr.Code, ErrorResponse{Error: "Internal server error"})
			return
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	code := apperrors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(code, ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}
