package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FransiTsena/fitme-sub001/internal/api"
	"github.com/FransiTsena/fitme-sub001/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// BookSession godoc
// @Summary      Book a training session
// @Description  Books a trainer slot for a calendar date. Requires an active membership at the session's gym.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        sessionID path int                        true "Session ID"
// @Param        request   body booking.BookSessionRequest true "Date and slot"
// @Success      201 {object} booking.BookResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      402 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /sessions/{sessionID}/book [post]
func (h *Handler) BookSession(c *gin.Context) {
	sessionID, ok := api.ParamID(c, "sessionID")
	if !ok {
		return
	}

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	userID, _ := auth.GetUserID(c)
	result, err := h.service.BookSession(c.Request.Context(), userID, sessionID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UpdateStatus godoc
// @Summary      Complete or cancel a booking
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID path int                         true "Booking ID"
// @Param        request   body booking.UpdateStatusRequest true "Target status"
// @Success      200 {object} booking.Booking
// @Failure      403 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /bookings/{bookingID}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	bookingID, ok := api.ParamID(c, "bookingID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	userID, _ := auth.GetUserID(c)
	b, err := h.service.UpdateBookingStatus(c.Request.Context(), bookingID, req.Status, userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// GetMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} booking.BookingWithDetails
// @Router       /bookings [get]
func (h *Handler) GetMyBookings(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	list, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetTrainerBookings godoc
// @Summary      List bookings of my sessions
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} booking.BookingWithDetails
// @Router       /trainer/bookings [get]
func (h *Handler) GetTrainerBookings(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	list, err := h.service.GetTrainerBookings(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
