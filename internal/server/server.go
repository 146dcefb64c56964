package server

import (
	"context"
	"net/http"

	"fitstudio/internal/auth"
	"fitstudio/internal/booking"
	"fitstudio/internal/config"
	"fitstudio/internal/email"
	"fitstudio/internal/freeclass"
	"fitstudio/internal/member"
	"fitstudio/internal/payment"
	"fitstudio/internal/schedule"
	"fitstudio/internal/subscription"
	"fitstudio/internal/trainer"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	memberRepo := member.NewRepository(db)
	trainerRepo := trainer.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)
	freeClassRepo := freeclass.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	paymentService := payment.NewService(paymentRepo)
	memberHandler := member.NewHandler(member.NewService(memberRepo, cfg.JWTSecret))
	trainerHandler := trainer.NewHandler(trainer.NewService(trainerRepo))
	scheduleHandler := schedule.NewHandler(schedule.NewService(scheduleRepo, trainerRepo))
	subscriptionHandler := subscription.NewHandler(subscription.NewService(subscriptionRepo, paymentService))
	freeClassHandler := freeclass.NewHandler(freeclass.NewService(freeClassRepo))
	paymentHandler := payment.NewHandler(paymentService)
	bookingHandler := booking.NewHandler(booking.NewService(
		bookingRepo, memberRepo, scheduleRepo, subscriptionRepo, freeClassRepo, emailService,
	))

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", memberHandler.Register)
		public.POST("/login", memberHandler.Login)
		public.POST("/refresh", memberHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", memberHandler.GetMe)
		protected.GET("/me/free-classes", freeClassHandler.GetMyPool)
		protected.GET("/me/payments", paymentHandler.ListMy)

		protected.GET("/schedules", scheduleHandler.ListUpcoming)
		protected.GET("/schedules/:scheduleID", scheduleHandler.GetByID)

		protected.GET("/plans", subscriptionHandler.ListPlans)
		protected.POST("/subscriptions", subscriptionHandler.Purchase)
		protected.GET("/subscriptions/current", subscriptionHandler.GetCurrent)
		protected.GET("/subscriptions", subscriptionHandler.ListMy)
		protected.POST("/subscriptions/:subscriptionID/cancel", subscriptionHandler.Cancel)

		protected.POST("/bookings", bookingHandler.Create)
		protected.GET("/bookings", bookingHandler.ListMy)
		protected.GET("/bookings/upcoming", bookingHandler.ListMyUpcoming)
		protected.GET("/bookings/:bookingID", bookingHandler.GetByID)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/trainers", trainerHandler.Create)
		admin.GET("/trainers", trainerHandler.List)
		admin.POST("/trainers/:trainerID/approve", trainerHandler.Approve)
		admin.POST("/trainers/:trainerID/reject", trainerHandler.Reject)

		admin.POST("/schedules", scheduleHandler.Create)
		admin.PATCH("/schedules/:scheduleID", scheduleHandler.Update)
		admin.POST("/schedules/:scheduleID/cancel", scheduleHandler.Cancel)
		admin.GET("/schedules/:scheduleID/bookings", bookingHandler.ListBySchedule)

		admin.PATCH("/bookings/:bookingID", bookingHandler.Update)
		admin.POST("/bookings/:bookingID/attended", bookingHandler.MarkAttended)

		admin.POST("/free-classes", freeClassHandler.Grant)

		admin.POST("/members/:memberID/active", memberHandler.SetActive)
		admin.GET("/members/:memberID/payments", paymentHandler.ListForMember)
		admin.GET("/members/:memberID/bookings", bookingHandler.ListByMember)

		admin.POST("/subscriptions/sweep", subscriptionHandler.TriggerSweep)
	}

	router.GET("/health", Health(db))
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
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
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
