package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/shiftplate/shiftplate-backend/api/routes"
	"github.com/shiftplate/shiftplate-backend/internal/applications"
	"github.com/shiftplate/shiftplate-backend/internal/auth"
	"github.com/shiftplate/shiftplate-backend/internal/dashboard"
	"github.com/shiftplate/shiftplate-backend/internal/devices"
	"github.com/shiftplate/shiftplate-backend/internal/jobs"
	"github.com/shiftplate/shiftplate-backend/internal/messages"
	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/internal/restaurants"
	"github.com/shiftplate/shiftplate-backend/internal/reviews"
	"github.com/shiftplate/shiftplate-backend/internal/savedjobs"
	"github.com/shiftplate/shiftplate-backend/internal/training"
	"github.com/shiftplate/shiftplate-backend/internal/users"
	"github.com/shiftplate/shiftplate-backend/internal/workers"
	"github.com/shiftplate/shiftplate-backend/pkg/auth/session"
	"github.com/shiftplate/shiftplate-backend/pkg/config"
	"github.com/shiftplate/shiftplate-backend/pkg/db"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
	"github.com/shiftplate/shiftplate-backend/pkg/migrate"
	"github.com/shiftplate/shiftplate-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	requireResource(logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(logg, "session manager", err)

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	jobsRepo := jobs.NewRepository(gormDB)
	applicationsRepo := applications.NewRepository(gormDB)
	restaurantsRepo := restaurants.NewRepository(gormDB)
	workersRepo := workers.NewRepository(gormDB)
	messagesRepo := messages.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)
	savedJobsRepo := savedjobs.NewRepository(gormDB)
	devicesRepo := devices.NewRepository(gormDB)
	reviewsRepo := reviews.NewRepository(gormDB)
	trainingRepo := training.NewRepository(gormDB)

	dispatcher, err := notifications.NewDispatcher(notificationsRepo, logg)
	requireResource(logg, "notification dispatcher", err)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	requireResource(logg, "auth service", err)

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	requireResource(logg, "register service", err)

	jobsService, err := jobs.NewService(jobs.ServiceParams{
		Repo:        jobsRepo,
		Restaurants: restaurantsRepo,
		Dispatcher:  dispatcher,
		Logger:      logg,
	})
	requireResource(logg, "jobs service", err)

	applicationsService, err := applications.NewService(applications.ServiceParams{
		Repo:        applicationsRepo,
		Workers:     workersRepo,
		Jobs:        jobsRepo,
		Restaurants: restaurantsRepo,
		Users:       usersRepo,
		Dispatcher:  dispatcher,
		Logger:      logg,
	})
	requireResource(logg, "applications service", err)

	restaurantsService, err := restaurants.NewService(restaurantsRepo)
	requireResource(logg, "restaurants service", err)

	workersService, err := workers.NewService(workersRepo)
	requireResource(logg, "workers service", err)

	messagesService, err := messages.NewService(messages.ServiceParams{
		Repo:       messagesRepo,
		Users:      usersRepo,
		Dispatcher: dispatcher,
		Logger:     logg,
	})
	requireResource(logg, "messages service", err)

	notificationsService, err := notifications.NewService(notificationsRepo)
	requireResource(logg, "notifications service", err)

	savedJobsService, err := savedjobs.NewService(savedJobsRepo, jobsRepo)
	requireResource(logg, "saved jobs service", err)

	devicesService, err := devices.NewService(devicesRepo)
	requireResource(logg, "devices service", err)

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:         reviewsRepo,
		Workers:      workersRepo,
		Restaurants:  restaurantsRepo,
		Users:        usersRepo,
		Applications: applicationsRepo,
		Dispatcher:   dispatcher,
		Logger:       logg,
	})
	requireResource(logg, "reviews service", err)

	trainingService, err := training.NewService(trainingRepo)
	requireResource(logg, "training service", err)

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Restaurants:  restaurantsRepo,
		Workers:      workersRepo,
		Jobs:         jobsRepo,
		Applications: applicationsRepo,
		SavedJobs:    savedJobsRepo,
		Messages:     messagesRepo,
	})
	requireResource(logg, "dashboard service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			sessionManager,
			authService,
			registerService,
			jobsService,
			applicationsService,
			restaurantsService,
			workersService,
			messagesService,
			notificationsService,
			savedJobsService,
			devicesService,
			reviewsService,
			trainingService,
			dashboardService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
