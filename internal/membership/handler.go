package membership

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

// PurchaseMembership godoc
// @Summary      Purchase a membership plan
// @Description  Records a completed payment and starts a membership. At most one active membership per gym.
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        planID path int true "Plan ID"
// @Success      201 {object} membership.PurchaseResult
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /plans/{planID}/purchase [post]
func (h *Handler) PurchaseMembership(c *gin.Context) {
	planID, ok := api.ParamID(c, "planID")
	if !ok {
		return
	}

	userID, _ := auth.GetUserID(c)
	result, err := h.service.PurchaseMembership(c.Request.Context(), userID, planID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetMyMemberships godoc
// @Summary      List my memberships
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} membership.MembershipDetails
// @Router       /memberships [get]
func (h *Handler) GetMyMemberships(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	list, err := h.service.GetUserMemberships(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// CancelMembership godoc
// @Summary      Cancel my membership
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        membershipID path int true "Membership ID"
// @Success      200 {object} membership.Membership
// @Failure      403 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /memberships/{membershipID}/cancel [post]
func (h *Handler) CancelMembership(c *gin.Context) {
	membershipID, ok := api.ParamID(c, "membershipID")
	if !ok {
		return
	}

	userID, _ := auth.GetUserID(c)
	m, err := h.service.CancelMembership(c.Request.Context(), userID, membershipID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}
