package main

import (
	"github.com/hanaa-nabil/Hotel-managment/internal/config"
	"github.com/hanaa-nabil/Hotel-managment/internal/database"
	"github.com/hanaa-nabil/Hotel-managment/internal/events"
	"github.com/hanaa-nabil/Hotel-managment/internal/middleware"
	"github.com/hanaa-nabil/Hotel-managment/internal/modules/auth"
	"github.com/hanaa-nabil/Hotel-managment/internal/modules/booking"
	"github.com/hanaa-nabil/Hotel-managment/internal/modules/catalog"
	"github.com/hanaa-nabil/Hotel-managment/internal/modules/dashboard"
	"github.com/hanaa-nabil/Hotel-managment/internal/modules/payment"
	"github.com/hanaa-nabil/Hotel-managment/internal/pkg/jwt"
	"github.com/hanaa-nabil/Hotel-managment/internal/pkg/stripeapi"
	"github.com/hanaa-nabil/Hotel-managment/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Shared infrastructure
	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := events.NewHub()
	defer hub.Close()
	wsHandler := events.NewWSHandler(hub, jwtService)

	stripeClient := stripeapi.NewClient(stripeapi.Config{
		APIKey:  cfg.StripeAPIKey,
		BaseURL: cfg.StripeBaseURL,
		Timeout: cfg.StripeTimeout,
	}, log)

	// Services. The payment service doubles as the booking service's
	// payment checker for the cancel-vs-confirm race.
	paymentService := payment.NewService(bookingRepo, stripeClient, hub, payment.Config{Currency: cfg.Currency}, log)
	bookingService := booking.NewService(bookingRepo, roomRepo, paymentService, hub)
	authService := auth.NewService(userRepo, jwtService)
	catalogService := catalog.NewService(hotelRepo, roomRepo)
	dashboardService := dashboard.NewService(statsRepo)

	// Handlers
	authHandler := auth.NewHandler(authService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService)
	catalogHandler := catalog.NewHandler(catalogService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/ws/events", wsHandler.HandleWebSocket)

	public := r.Group("/api/v1")
	authHandler.RegisterRoutes(public)
	catalogHandler.RegisterRoutes(public)

	protected := r.Group("/api/v1", middleware.JWTAuth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	bookingHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)
	dashboardHandler.RegisterRoutes(protected)

	admin := r.Group("/api/v1/admin", middleware.JWTAuth(jwtService), middleware.AdminOnly())
	bookingHandler.RegisterAdminRoutes(admin)
	paymentHandler.RegisterAdminRoutes(admin)
	catalogHandler.RegisterAdminRoutes(admin)
	dashboardHandler.RegisterAdminRoutes(admin)

	log.WithField("addr", cfg.HTTPAddr).Info("starting http server")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("http server stopped")
	}
}
