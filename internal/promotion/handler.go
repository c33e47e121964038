package promotion

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

// InviteMember godoc
// @Summary      Invite a member to become a trainer
// @Tags         promotions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gymID   path int                     true "Gym ID"
// @Param        request body promotion.InviteRequest true "Member to invite"
// @Success      201 {object} promotion.Promotion
// @Failure      403 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /gyms/{gymID}/promotions [post]
func (h *Handler) InviteMember(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	ownerID, _ := auth.GetUserID(c)
	p, err := h.service.InviteMember(c.Request.Context(), ownerID, gymID, req.MemberID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListGymPromotions godoc
// @Summary      List a gym's trainer invitations
// @Tags         promotions
// @Security     BearerAuth
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {array} promotion.PromotionView
// @Router       /gyms/{gymID}/promotions [get]
func (h *Handler) ListGymPromotions(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	ownerID, _ := auth.GetUserID(c)
	list, err := h.service.ListGymPromotions(c.Request.Context(), ownerID, gymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Resend a pending invitation with a fresh link
// @Tags         promotions
// @Security     BearerAuth
// @Produce      json
// @Param        promotionID path int true "Promotion ID"
// @Success      200 {object} promotion.Promotion
// @Failure      409 {object} api.ErrorResponse
// @Router       /promotions/{promotionID}/resend [post]
func (h *Handler) ResendInvitation(c *gin.Context) {
	promotionID, ok := api.ParamID(c, "promotionID")
	if !ok {
		return
	}

	ownerID, _ := auth.GetUserID(c)
	p, err := h.service.ResendInvitation(c.Request.Context(), ownerID, promotionID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AcceptInvitation godoc
// @Summary      Accept a trainer invitation
// @Description  The token comes from the invitation link, in the JSON body or the token query parameter.
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request body promotion.TokenRequest false "Invitation token"
// @Success      200 {object} promotion.AcceptResult
// @Failure      410 {object} api.ErrorResponse
// @Router       /promotions/accept [post]
func (h *Handler) AcceptInvitation(c *gin.Context) {
	token, ok := bindToken(c)
	if !ok {
		return
	}

	res, err := h.service.AcceptInvitation(c.Request.Context(), token)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Decline a trainer invitation
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request body promotion.TokenRequest false "Invitation token"
// @Success      200 {object} promotion.Promotion
// @Failure      410 {object} api.ErrorResponse
// @Router       /promotions/reject [post]
func (h *Handler) RejectInvitation(c *gin.Context) {
	token, ok := bindToken(c)
	if !ok {
		return
	}

	p, err := h.service.RejectInvitation(c.Request.Context(), token)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func bindToken(c *gin.Context) (string, bool) {
	if token := c.Query("token"); token != "" {
		return token, true
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "token is required")
		return "", false
	}
	return req.Token, true
}
