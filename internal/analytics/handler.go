package analytics

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

// GymStats godoc
// @Summary      Gym dashboard figures
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} analytics.GymStats
// @Failure      403 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/analytics [get]
func (h *Handler) GymStats(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	ownerID, _ := auth.GetUserID(c)
	stats, err := h.service.GymStats(c.Request.Context(), ownerID, gymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Daily booking counts for a gym
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Param        gymID path  int    true  "Gym ID"
// @Param        from  query string false "First day (YYYY-MM-DD)"
// @Param        to    query string false "Last day (YYYY-MM-DD)"
// @Success      200 {array} analytics.DayBookings
// @Router       /gyms/{gymID}/analytics/bookings [get]
func (h *Handler) BookingsByDay(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	ownerID, _ := auth.GetUserID(c)
	days, err := h.service.BookingsByDay(c.Request.Context(), ownerID, gymID, c.Query("from"), c.Query("to"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// @Summary      Trainer dashboard figures
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} analytics.TrainerStats
// @Router       /trainer/analytics [get]
func (h *Handler) TrainerStats(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	stats, err := h.service.TrainerStats(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
