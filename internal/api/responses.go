package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// StatusFor maps an engine error kind to its HTTP status. Anything unrecognised is a 500.
func StatusFor(err error) int {
	switch apperr.Kind(err) {
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrValidation:
		return http.StatusBadRequest
	case apperr.ErrUnauthorized:
		return http.StatusForbidden
	case apperr.ErrInactiveEntity, apperr.ErrInvalidCandidate:
		return http.StatusUnprocessableEntity
	case apperr.ErrDuplicateActiveMembership,
		apperr.ErrSlotUnavailable,
		apperr.ErrDuplicateInvitation,
		apperr.ErrInvalidTransition:
		return http.StatusConflict
	case apperr.ErrMembershipRequired:
		return http.StatusPaymentRequired
	case apperr.ErrInvalidOrExpiredToken:
		return http.StatusGone
	}
	return http.StatusInternalServerError
}

// RespondError writes err as an ErrorResponse. Infrastructure errors are logged and hidden.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed", "path", c.FullPath(), "method", c.Request.Method)
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// BadRequest reports a binding or parameter problem.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
