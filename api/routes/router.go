package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftplate/shiftplate-backend/api/controllers"
	"github.com/shiftplate/shiftplate-backend/api/middleware"
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
	"github.com/shiftplate/shiftplate-backend/internal/workers"
	"github.com/shiftplate/shiftplate-backend/pkg/auth/session"
	"github.com/shiftplate/shiftplate-backend/pkg/config"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
	"github.com/shiftplate/shiftplate-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	authService auth.Service,
	registerService auth.RegisterService,
	jobsService jobs.Service,
	applicationsService applications.Service,
	restaurantsService restaurants.Service,
	workersService workers.Service,
	messagesService messages.Service,
	notificationsService notifications.Service,
	savedJobsService savedjobs.Service,
	devicesService devices.Service,
	reviewsService reviews.Service,
	trainingService training.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.CORS(),
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	ownerOnly := middleware.RequireRole(enums.RoleRestaurantOwner, logg)
	workerOnly := middleware.RequireRole(enums.RoleWorker, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(registerService, authService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
	})

	// The job board is browsable without a token; everything that mutates
	// or exposes owner data sits behind auth on the same subtree.
	r.Route("/api/v1/jobs", func(r chi.Router) {
		r.Get("/", controllers.ListJobs(jobsService, logg))
		r.Get("/{jobId}", controllers.GetJob(jobsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
			r.With(ownerOnly).Post("/", controllers.CreateJob(jobsService, logg))
			r.With(ownerOnly).Get("/mine", controllers.ListOwnJobs(jobsService, logg))
			r.With(ownerOnly).Patch("/{jobId}", controllers.UpdateJob(jobsService, logg))
			r.With(ownerOnly).Delete("/{jobId}", controllers.CancelJob(jobsService, logg))
			r.With(ownerOnly).Post("/{jobId}/status", controllers.UpdateJobStatus(jobsService, logg))
			r.With(ownerOnly).Get("/{jobId}/applications", controllers.ListJobApplications(applicationsService, logg))
			r.With(workerOnly).Post("/{jobId}/applications", controllers.SubmitApplication(applicationsService, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/applications", func(r chi.Router) {
			r.With(workerOnly).Get("/", controllers.ListMyApplications(applicationsService, logg))
			r.With(workerOnly).Post("/{applicationId}/withdraw", controllers.WithdrawApplication(applicationsService, logg))
			r.With(ownerOnly).Post("/{applicationId}/status", controllers.UpdateApplicationStatus(applicationsService, logg))
		})

		r.Route("/v1/dashboard", func(r chi.Router) {
			r.Get("/stats", controllers.DashboardStats(dashboardService, logg))
			r.Get("/activity", controllers.DashboardActivity(dashboardService, logg))
		})

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Get("/unread-count", controllers.NotificationUnreadCount(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})

		r.Route("/v1/saved-jobs", func(r chi.Router) {
			r.Use(workerOnly)
			r.Get("/", controllers.ListSavedJobs(savedJobsService, logg))
			r.Post("/{jobId}", controllers.SaveJob(savedJobsService, logg))
			r.Delete("/{jobId}", controllers.UnsaveJob(savedJobsService, logg))
		})

		r.Route("/v1/messages", func(r chi.Router) {
			r.Get("/", controllers.ListConversations(messagesService, logg))
			r.Post("/", controllers.SendMessage(messagesService, logg))
			r.Get("/{userId}", controllers.ListConversation(messagesService, logg))
			r.Post("/{userId}/read", controllers.MarkConversationRead(messagesService, logg))
		})

		r.Route("/v1/devices", func(r chi.Router) {
			r.Get("/", controllers.ListDevices(devicesService, logg))
			r.Post("/", controllers.RegisterDevice(devicesService, logg))
			r.Delete("/", controllers.UnregisterDevice(devicesService, logg))
		})

		r.Route("/v1/training/modules", func(r chi.Router) {
			r.Get("/", controllers.ListTrainingModules(trainingService, logg))
			r.Get("/{moduleId}", controllers.GetTrainingModule(trainingService, logg))
			r.Post("/{moduleId}/materials/{materialId}/complete", controllers.CompleteTrainingMaterial(trainingService, logg))
		})

		r.Route("/v1/restaurants", func(r chi.Router) {
			r.Get("/{restaurantId}", controllers.GetRestaurant(restaurantsService, logg))
			r.Group(func(r chi.Router) {
				r.Use(ownerOnly)
				r.Get("/me", controllers.GetMyRestaurant(restaurantsService, logg))
				r.Put("/me", controllers.UpdateMyRestaurant(restaurantsService, logg))
				r.Put("/me/address", controllers.SetRestaurantAddress(restaurantsService, logg))
				r.Post("/me/photos", controllers.AddRestaurantPhoto(restaurantsService, logg))
				r.Delete("/me/photos/{photoId}", controllers.RemoveRestaurantPhoto(restaurantsService, logg))
			})
		})

		r.Route("/v1/workers", func(r chi.Router) {
			r.Get("/{workerId}", controllers.GetWorkerProfile(workersService, logg))
			r.Group(func(r chi.Router) {
				r.Use(workerOnly)
				r.Get("/me", controllers.GetMyWorkerProfile(workersService, logg))
				r.Put("/me", controllers.UpdateMyWorkerProfile(workersService, logg))
			})
		})

		r.Route("/v1/reviews", func(r chi.Router) {
			r.Get("/", controllers.ListReviews(reviewsService, logg))
			r.Post("/", controllers.CreateReview(reviewsService, logg))
		})
	})

	return r
}
