package plan

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FransiTsena/fitme-sub001/internal/api"
	"github.com/FransiTsena/fitme-sub001/internal/auth"
)

const ctxPlan = "plan"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RequirePlanOwner loads :planID and lets the request through only for the plan's owner.
func (h *Handler) RequirePlanOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, ok := api.ParamID(c, "planID")
		if !ok {
			c.Abort()
			return
		}

		p, err := h.service.GetPlan(c.Request.Context(), planID)
		if err != nil {
			api.RespondError(c, err)
			c.Abort()
			return
		}

		userID, _ := auth.GetUserID(c)
		if p.OwnerID != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "you do not own this plan"})
			return
		}

		c.Set(ctxPlan, p)
		c.Next()
	}
}

// @Summary      Create membership plan
// @Tags         plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gymID   path int                    true "Gym ID"
// @Param        request body plan.CreatePlanRequest true "Plan payload"
// @Success      201 {object} plan.Plan
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/plans [post]
func (h *Handler) CreatePlan(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	ownerID, _ := auth.GetUserID(c)
	p, err := h.service.CreatePlan(c.Request.Context(), ownerID, gymID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      List active plans of a gym
// @Tags         plans
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {array} plan.Plan
// @Router       /gyms/{gymID}/plans [get]
func (h *Handler) ListActivePlans(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	plans, err := h.service.ListActivePlans(c.Request.Context(), gymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// @Summary      Get plan
// @Tags         plans
// @Produce      json
// @Param        planID path int true "Plan ID"
// @Success      200 {object} plan.Plan
// @Failure      404 {object} api.ErrorResponse
// @Router       /plans/{planID} [get]
func (h *Handler) GetPlan(c *gin.Context) {
	planID, ok := api.ParamID(c, "planID")
	if !ok {
		return
	}

	p, err := h.service.GetPlan(c.Request.Context(), planID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// @Summary      Update plan
// @Tags         plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        planID  path int                    true "Plan ID"
// @Param        request body plan.UpdatePlanRequest true "Fields to change"
// @Success      200 {object} plan.Plan
// @Router       /plans/{planID} [patch]
func (h *Handler) UpdatePlan(c *gin.Context) {
	p := c.MustGet(ctxPlan).(*Plan)

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	updated, err := h.service.UpdatePlan(c.Request.Context(), p.ID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary      Activate or deactivate plan
// @Tags         plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        planID  path int                   true "Plan ID"
// @Param        request body plan.SetActiveRequest true "Active flag"
// @Success      200 {object} plan.Plan
// @Router       /plans/{planID}/active [put]
func (h *Handler) SetPlanActive(c *gin.Context) {
	p := c.MustGet(ctxPlan).(*Plan)

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	updated, err := h.service.SetPlanActive(c.Request.Context(), p.ID, *req.IsActive)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
