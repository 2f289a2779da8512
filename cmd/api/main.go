package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"renthub/internal/config"
	"renthub/internal/database"
	"renthub/internal/middleware"
	"renthub/internal/modules/admin"
	"renthub/internal/modules/auth"
	"renthub/internal/modules/booking"
	"renthub/internal/modules/contact"
	"renthub/internal/modules/notification"
	"renthub/internal/modules/property"
	jwtsvc "renthub/internal/pkg/jwt"
	"renthub/internal/pkg/response"
	"renthub/internal/pkg/revalidate"
	"renthub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("RENTHUB_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	var views revalidate.Signaler = revalidate.Noop{}
	var redisSignaler *revalidate.RedisSignaler
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, view invalidation disabled", zap.Error(err))
		} else {
			redisSignaler = revalidate.NewRedis(rdb, logger)
			views = redisSignaler
		}
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	contactRepo := repository.NewContactRepository(db)

	j := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenDuration)

	hub := notification.NewHub()
	defer hub.Close()

	notifService := notification.NewService(notifRepo, hub, views, logger)
	notifHandler := notification.NewHandler(notifService, hub, j, logger)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	propertyService := property.NewService(propertyRepo, views, logger)
	propertyHandler := property.NewHandler(propertyService)

	bookingService := booking.NewService(bookingRepo, propertyRepo, notifService, views, logger)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := admin.NewService(propertyRepo, userRepo, bookingRepo, contactRepo, notifService, views, logger)
	adminHandler := admin.NewHandler(adminService)

	contactService := contact.NewService(contactRepo, notifService, views, logger)
	contactHandler := contact.NewHandler(contactService)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		// public; OptionalAuth links contact messages to accounts
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))

		authHandler.RegisterRoutes(public, protected)
		propertyHandler.RegisterPublicRoutes(public)
		contactHandler.RegisterPublicRoutes(public)
		bookingHandler.RegisterRoutes(protected)
		notifHandler.RegisterRoutes(protected)

		// owner dashboard
		host := v1.Group("/host")
		host.Use(middleware.JWTAuth(j), middleware.OwnerOnly())
		{
			propertyHandler.RegisterOwnerRoutes(host)
			bookingHandler.RegisterOwnerRoutes(host)
		}

		// admin dashboard
		adm := v1.Group("/admin")
		adm.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adm)
			contactHandler.RegisterAdminRoutes(adm)
		}

		// view version polling for frontends with cached pages
		v1.GET("/views/version", func(c *gin.Context) {
			path := c.Query("path")
			if path == "" {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "path is required")
				return
			}
			var version int64
			if redisSignaler != nil {
				version, _ = redisSignaler.Version(c.Request.Context(), path)
			}
			response.Success(c, http.StatusOK, gin.H{"path": path, "version": version})
		})
	}

	r.GET("/ws/notifications", notifHandler.Stream)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.Format == "console" {
		return zap.NewDevelopment()
	}

	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(cfg.Level); err == nil {
		zcfg.Level = lvl
	}
	return zcfg.Build()
}
