package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
)

// respondWithError maps service errors to a status code and the {ok:false,error} body.
// Client errors carry the service message; server errors only carry fallback.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status := http.StatusInternalServerError
	message := fallback
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, apperrors.ErrForbidden):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrDuplicate):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		status, message = http.StatusServiceUnavailable, "Ledger store unavailable, please retry"
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{OK: false, Error: message})
}

// respondBadRequest reports a binding failure.
func respondBadRequest(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "Invalid request: " + err.Error()})
}

// sessionUser returns the authenticated user, answering 401 when there is none.
func sessionUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{OK: false, Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
