package payment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FransiTsena/fitme-sub001/internal/api"
	"github.com/FransiTsena/fitme-sub001/internal/auth"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetPayments godoc
// @Summary      Get my payments
// @Description  Returns payment records of the current user, newest first.
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Limit (default 50)"
// @Param        offset  query     int  false  "Offset (default 0)"
// @Success      200     {array}   payment.Payment
// @Failure      401     {object}  api.ErrorResponse
// @Router       /payments [get]
func (h *Handler) GetPayments(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	payments, err := h.repo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
