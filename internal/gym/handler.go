package gym

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
	return &Handler{
		service: service,
	}
}

// @Summary      Create a gym
// @Description  Owner-only: register a gym owned by the caller
// @Tags         gyms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.CreateGymRequest true "Gym payload"
// @Success      201 {object} gym.Gym
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /gyms [post]
func (h *Handler) CreateGym(c *gin.Context) {
	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	ownerID, _ := auth.GetUserID(c)
	gym, err := h.service.CreateGym(c.Request.Context(), ownerID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gym)
}

// @Summary      List gyms
// @Tags         gyms
// @Produce      json
// @Success      200 {array} gym.Gym
// @Router       /gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	gyms, err := h.service.GetAllGyms(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gyms)
}

// @Summary      Get gym
// @Tags         gyms
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} gym.Gym
// @Failure      404 {object} api.ErrorResponse
// @Router       /gyms/{gymID} [get]
func (h *Handler) GetGym(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	gym, err := h.service.GetGymByID(c.Request.Context(), gymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gym)
}

// @Summary      List my gyms
// @Tags         gyms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} gym.Gym
// @Router       /owner/gyms [get]
func (h *Handler) ListMyGyms(c *gin.Context) {
	ownerID, _ := auth.GetUserID(c)

	gyms, err := h.service.ListOwnerGyms(c.Request.Context(), ownerID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gyms)
}
