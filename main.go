package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luxestay/config"
	"luxestay/controllers"
	"luxestay/jobs"
	"luxestay/routes"
	"luxestay/services"
	"luxestay/services/logger"
	"luxestay/services/notification"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()

	appLogger := logger.NewDefaultLogger(logger.Options{
		Level: logger.ParseLevel(cfg.LogLevel),
		File:  cfg.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := config.InitComponents(ctx, cfg, appLogger.With("config"))
	if err != nil {
		log.Fatalf("Failed to initialize components: %v", err)
	}
	defer comps.Close()
	store := comps.Store

	router, m := config.InitApp(cfg)
	config.InitWebSocket(router, m, appLogger)

	// Redis có thì khóa phòng và rate limit dùng chung giữa các instance
	var locker services.RoomLocker = services.NewLocalLocker()
	if comps.Redis != nil {
		locker = services.NewRedisLocker(comps.Redis, 15*time.Second)
	}
	limiter := services.NewRateLimiter(comps.Redis, cfg.RateLimit, cfg.RateWindow)

	var uploader services.ImageUploader
	if comps.Cloudinary != nil {
		uploader = services.NewCloudinaryUploader(comps.Cloudinary, cfg.Cloudinary.Folder)
	}

	userService := services.NewUserService(services.UserServiceOptions{
		Users:  store.Users,
		Logger: appLogger.With("users"),
	})

	notifyLogger := appLogger.With("notification")
	ws := notification.NewMelodyService(m)
	channels := []notification.Channel{ws}
	if mailer := notification.NewMailer(notification.MailerConfig{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.FromEmail,
	}, notifyLogger); mailer != nil {
		channels = append(channels, mailer)
	}
	dispatcher := notification.NewDispatcher(notifyLogger, userService, cfg.SMTP.AdminEmail, channels...)

	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTExpire)
	authService := services.NewAuthService(store.Users, tokens, dispatcher, appLogger.With("auth"))
	hotelService := services.NewHotelService(store.Hotels, uploader, appLogger.With("hotels"))
	bookingService := services.NewBookingService(store.Hotels, store.Bookings, locker, dispatcher, appLogger.With("bookings"))
	contactService := services.NewContactService(store.Contacts, dispatcher, appLogger.With("contacts"))
	adminService := services.NewAdminService(store)

	c := cron.New()
	if err := jobs.InitCronJobs(c, adminService, ws, appLogger.With("jobs")); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	userController := controllers.NewUserController(userService)
	routes.SetupRoutes(router, routes.Handlers{
		Auth:     controllers.NewAuthController(authService),
		Hotels:   controllers.NewHotelController(hotelService),
		Bookings: controllers.NewBookingController(bookingService),
		Contacts: controllers.NewContactController(contactService),
		Users:    userController,
		Admin:    controllers.NewAdminController(adminService, userController),
	}, tokens, limiter, appLogger.With("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting on port %s (%s, store=%s)...", cfg.Port, cfg.Env, cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown: %v", err)
	}
	<-c.Stop().Done()
	_ = m.Close()
	dispatcher.Wait()
	appLogger.Info("Server exited")
}
