package trainer

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

// @Summary      Get my trainer profile
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} trainer.Trainer
// @Failure      404 {object} api.ErrorResponse
// @Router       /trainer/profile [get]
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	t, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Update my trainer profile
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body trainer.UpdateProfileRequest true "Profile fields"
// @Success      200 {object} trainer.Trainer
// @Router       /trainer/profile [patch]
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	userID, _ := auth.GetUserID(c)
	t, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      List gym trainers
// @Tags         trainers
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {array} trainer.Trainer
// @Router       /gyms/{gymID}/trainers [get]
func (h *Handler) ListGymTrainers(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	trainers, err := h.service.ListGymTrainers(c.Request.Context(), gymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainers)
}
