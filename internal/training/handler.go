package training

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FransiTsena/fitme-sub001/internal/api"
	"github.com/FransiTsena/fitme-sub001/internal/auth"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
)

const ctxSession = "training_session"

type Handler struct {
	service  Service
	trainers trainer.Repository
}

func NewHandler(service Service, trainers trainer.Repository) *Handler {
	return &Handler{service: service, trainers: trainers}
}

// RequireSessionTrainer lets the request through only for the trainer who offers :sessionID.
func (h *Handler) RequireSessionTrainer() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := api.ParamID(c, "sessionID")
		if !ok {
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		sess, err := h.service.GetSession(ctx, sessionID)
		if err != nil {
			api.RespondError(c, err)
			c.Abort()
			return
		}

		userID, _ := auth.GetUserID(c)
		t, err := h.trainers.GetByUserID(ctx, userID)
		if err != nil || t.ID != sess.TrainerID {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "you do not offer this session"})
			return
		}

		c.Set(ctxSession, sess)
		c.Next()
	}
}

// @Summary      Create training session
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body training.CreateSessionRequest true "Session payload"
// @Success      201 {object} training.Session
// @Failure      404 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	userID, _ := auth.GetUserID(c)
	sess, err := h.service.CreateSession(c.Request.Context(), userID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sess)
}

// @Summary      List active sessions of a gym
// @Tags         sessions
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {array} training.Session
// @Router       /gyms/{gymID}/sessions [get]
func (h *Handler) ListActiveSessions(c *gin.Context) {
	gymID, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	sessions, err := h.service.ListActiveSessions(c.Request.Context(), gymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// @Summary      List my sessions
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} training.Session
// @Router       /trainer/sessions [get]
func (h *Handler) ListMySessions(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := auth.GetUserID(c)

	t, err := h.trainers.GetByUserID(ctx, userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	sessions, err := h.service.ListTrainerSessions(ctx, t.ID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// @Summary      Get session
// @Tags         sessions
// @Produce      json
// @Param        sessionID path int true "Session ID"
// @Success      200 {object} training.Session
// @Router       /sessions/{sessionID} [get]
func (h *Handler) GetSession(c *gin.Context) {
	sessionID, ok := api.ParamID(c, "sessionID")
	if !ok {
		return
	}

	sess, err := h.service.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// @Summary      Update session
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        sessionID path int                           true "Session ID"
// @Param        request   body training.UpdateSessionRequest true "Fields to change"
// @Success      200 {object} training.Session
// @Router       /sessions/{sessionID} [patch]
func (h *Handler) UpdateSession(c *gin.Context) {
	sess := c.MustGet(ctxSession).(*Session)

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateSession(c.Request.Context(), sess.ID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Activate or deactivate session
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        sessionID path int                       true "Session ID"
// @Param        request   body training.SetActiveRequest true "Active flag"
// @Success      200 {object} training.Session
// @Router       /sessions/{sessionID}/active [put]
func (h *Handler) SetSessionActive(c *gin.Context) {
	sess := c.MustGet(ctxSession).(*Session)

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	updated, err := h.service.SetSessionActive(c.Request.Context(), sess.ID, *req.IsActive)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
