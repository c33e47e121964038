package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/FransiTsena/fitme-sub001/internal/analytics"
	"github.com/FransiTsena/fitme-sub001/internal/auth"
	"github.com/FransiTsena/fitme-sub001/internal/booking"
	"github.com/FransiTsena/fitme-sub001/internal/config"
	"github.com/FransiTsena/fitme-sub001/internal/email"
	"github.com/FransiTsena/fitme-sub001/internal/events"
	"github.com/FransiTsena/fitme-sub001/internal/gym"
	"github.com/FransiTsena/fitme-sub001/internal/membership"
	"github.com/FransiTsena/fitme-sub001/internal/payment"
	"github.com/FransiTsena/fitme-sub001/internal/plan"
	"github.com/FransiTsena/fitme-sub001/internal/promotion"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
	"github.com/FransiTsena/fitme-sub001/internal/training"
	"github.com/FransiTsena/fitme-sub001/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

// New wires repositories, services and handlers onto one router. emailService may be nil, in
// which case notifications are skipped.
func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service, publisher events.Publisher) *Server {
	if publisher == nil {
		publisher = events.Noop{}
	}

	var (
		membershipNotifier membership.Notifier
		bookingNotifier    booking.Notifier
		promotionNotifier  promotion.Notifier
		queue              QueuePinger
	)
	if emailService != nil {
		queue = emailService
		membershipNotifier = emailService
		bookingNotifier = emailService
		promotionNotifier = emailService
	}

	userRepo := user.NewRepository(db)
	gymRepo := gym.NewRepository(db)
	planRepo := plan.NewRepository(db)
	trainerRepo := trainer.NewRepository(db)
	sessionRepo := training.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	membershipRepo := membership.NewRepository(db, paymentRepo)
	bookingRepo := booking.NewRepository(db, paymentRepo)
	promotionRepo := promotion.NewRepository(db, userRepo, trainerRepo)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	gymHandler := gym.NewHandler(gym.NewService(gymRepo))
	planHandler := plan.NewHandler(plan.NewService(planRepo, gymRepo))
	trainerHandler := trainer.NewHandler(trainer.NewService(trainerRepo))
	sessionHandler := training.NewHandler(training.NewService(sessionRepo, trainerRepo), trainerRepo)
	paymentHandler := payment.NewHandler(paymentRepo)
	membershipHandler := membership.NewHandler(membership.NewService(
		membershipRepo, planRepo, userRepo, gymRepo, membershipNotifier, publisher, cfg.Currency,
	))
	bookingHandler := booking.NewHandler(booking.NewService(
		bookingRepo, sessionRepo, trainerRepo, membershipRepo, userRepo, bookingNotifier, publisher, cfg.Currency,
	))
	promotionHandler := promotion.NewHandler(promotion.NewService(
		promotionRepo, gymRepo, userRepo, promotionNotifier, publisher,
		promotion.Options{TTL: cfg.InvitationTTL, AppBaseURL: cfg.AppBaseURL},
	))
	analyticsHandler := analytics.NewHandler(analytics.NewService(analytics.NewRepository(db), gymRepo, trainerRepo))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())

	router.GET("/health", Health(db, queue))
	router.GET("/metrics", Metrics())

	public := router.Group("/")
	public.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		public.POST("/auth/register", userHandler.Register)
		public.POST("/auth/login", userHandler.Login)
		public.POST("/auth/refresh", userHandler.RefreshToken)
		public.POST("/promotions/accept", promotionHandler.AcceptInvitation)
		public.POST("/promotions/reject", promotionHandler.RejectInvitation)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/payments", paymentHandler.GetPayments)

		protected.GET("/gyms", gymHandler.ListGyms)
		protected.GET("/gyms/:gymID", gymHandler.GetGym)
		protected.GET("/gyms/:gymID/plans", planHandler.ListActivePlans)
		protected.GET("/gyms/:gymID/sessions", sessionHandler.ListActiveSessions)
		protected.GET("/gyms/:gymID/trainers", trainerHandler.ListGymTrainers)

		protected.GET("/plans/:planID", planHandler.GetPlan)
		protected.POST("/plans/:planID/purchase", membershipHandler.PurchaseMembership)
		protected.GET("/memberships", membershipHandler.GetMyMemberships)
		protected.POST("/memberships/:membershipID/cancel", membershipHandler.CancelMembership)

		protected.GET("/sessions/:sessionID", sessionHandler.GetSession)
		protected.POST("/sessions/:sessionID/book", bookingHandler.BookSession)
		protected.GET("/bookings", bookingHandler.GetMyBookings)
		protected.PATCH("/bookings/:bookingID/status", bookingHandler.UpdateStatus)
	}

	owner := router.Group("/")
	owner.Use(authMiddleware, auth.RequireRole(string(user.RoleOwner)))
	{
		owner.POST("/gyms", gymHandler.CreateGym)
		owner.GET("/owner/gyms", gymHandler.ListMyGyms)
		owner.POST("/gyms/:gymID/plans", planHandler.CreatePlan)
		owner.POST("/gyms/:gymID/promotions", promotionHandler.InviteMember)
		owner.GET("/gyms/:gymID/promotions", promotionHandler.ListGymPromotions)
		owner.POST("/promotions/:promotionID/resend", promotionHandler.ResendInvitation)
		owner.GET("/gyms/:gymID/analytics", analyticsHandler.GymStats)
		owner.GET("/gyms/:gymID/analytics/bookings", analyticsHandler.BookingsByDay)

		ownedPlan := owner.Group("/plans/:planID", planHandler.RequirePlanOwner())
		ownedPlan.PATCH("", planHandler.UpdatePlan)
		ownedPlan.PUT("/active", planHandler.SetPlanActive)
	}

	trainerGroup := router.Group("/")
	trainerGroup.Use(authMiddleware, auth.RequireRole(string(user.RoleTrainer)))
	{
		trainerGroup.GET("/trainer/profile", trainerHandler.GetMyProfile)
		trainerGroup.PATCH("/trainer/profile", trainerHandler.UpdateMyProfile)
		trainerGroup.GET("/trainer/sessions", sessionHandler.ListMySessions)
		trainerGroup.GET("/trainer/bookings", bookingHandler.GetTrainerBookings)
		trainerGroup.GET("/trainer/analytics", analyticsHandler.TrainerStats)
		trainerGroup.POST("/sessions", sessionHandler.CreateSession)

		ownSession := trainerGroup.Group("/sessions/:sessionID", sessionHandler.RequireSessionTrainer())
		ownSession.PATCH("", sessionHandler.UpdateSession)
		ownSession.PUT("/active", sessionHandler.SetSessionActive)
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
