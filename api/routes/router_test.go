package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/internal/applications"
	"github.com/shiftplate/shiftplate-backend/internal/auth"
	"github.com/shiftplate/shiftplate-backend/internal/dashboard"
	"github.com/shiftplate/shiftplate-backend/internal/jobs"
	"github.com/shiftplate/shiftplate-backend/internal/messages"
	"github.com/shiftplate/shiftplate-backend/internal/notifications"
	"github.com/shiftplate/shiftplate-backend/internal/restaurants"
	"github.com/shiftplate/shiftplate-backend/internal/reviews"
	"github.com/shiftplate/shiftplate-backend/internal/savedjobs"
	"github.com/shiftplate/shiftplate-backend/internal/training"
	"github.com/shiftplate/shiftplate-backend/internal/workers"
	pkgAuth "github.com/shiftplate/shiftplate-backend/pkg/auth"
	"github.com/shiftplate/shiftplate-backend/pkg/auth/session"
	"github.com/shiftplate/shiftplate-backend/pkg/config"
	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	"github.com/shiftplate/shiftplate-backend/pkg/logger"
	"github.com/shiftplate/shiftplate-backend/pkg/redis"
)

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) error {
	return nil
}

type stubJobsService struct{}

func (stubJobsService) Create(ctx context.Context, ownerID uuid.UUID, input jobs.CreateJobInput) (*jobs.JobDTO, error) {
	return &jobs.JobDTO{}, nil
}

func (stubJobsService) GetByID(ctx context.Context, id uuid.UUID) (*jobs.JobDTO, error) {
	return &jobs.JobDTO{ID: id}, nil
}

func (stubJobsService) List(ctx context.Context, filter jobs.ListFilter, cursor string, limit int) (*jobs.JobPageDTO, error) {
	return &jobs.JobPageDTO{}, nil
}

func (stubJobsService) ListOwn(ctx context.Context, ownerID uuid.UUID) ([]jobs.JobDTO, error) {
	return nil, nil
}

func (stubJobsService) Update(ctx context.Context, ownerID, jobID uuid.UUID, input jobs.UpdateJobInput) (*jobs.JobDTO, error) {
	return &jobs.JobDTO{}, nil
}

func (stubJobsService) UpdateStatus(ctx context.Context, ownerID, jobID uuid.UUID, status enums.JobStatus) (*jobs.JobDTO, error) {
	return &jobs.JobDTO{}, nil
}

type stubApplicationsService struct{}

func (stubApplicationsService) Submit(ctx context.Context, workerUserID, jobID uuid.UUID, message *string) (*applications.ApplicationDTO, error) {
	return &applications.ApplicationDTO{}, nil
}

func (stubApplicationsService) Withdraw(ctx context.Context, workerUserID, applicationID uuid.UUID) (*applications.ApplicationDTO, error) {
	return &applications.ApplicationDTO{}, nil
}

func (stubApplicationsService) UpdateStatus(ctx context.Context, ownerID, applicationID uuid.UUID, status enums.ApplicationStatus) (*applications.ApplicationDTO, error) {
	return &applications.ApplicationDTO{}, nil
}

func (stubApplicationsService) ListMine(ctx context.Context, workerUserID uuid.UUID) ([]applications.ApplicationDTO, error) {
	return nil, nil
}

func (stubApplicationsService) ListForJob(ctx context.Context, ownerID, jobID uuid.UUID) ([]applications.ApplicationDTO, error) {
	return nil, nil
}

type stubRestaurantsService struct{}

func (stubRestaurantsService) GetByID(ctx context.Context, id uuid.UUID) (*restaurants.RestaurantDTO, error) {
	return &restaurants.RestaurantDTO{}, nil
}

func (stubRestaurantsService) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*restaurants.RestaurantDTO, error) {
	return &restaurants.RestaurantDTO{}, nil
}

func (stubRestaurantsService) Update(ctx context.Context, ownerID uuid.UUID, input restaurants.UpdateRestaurantInput) (*restaurants.RestaurantDTO, error) {
	return &restaurants.RestaurantDTO{}, nil
}

func (stubRestaurantsService) SetAddress(ctx context.Context, ownerID uuid.UUID, input restaurants.AddressInput) (*restaurants.RestaurantDTO, error) {
	return &restaurants.RestaurantDTO{}, nil
}

func (stubRestaurantsService) AddPhoto(ctx context.Context, ownerID uuid.UUID, url string, position int) (*restaurants.RestaurantDTO, error) {
	return &restaurants.RestaurantDTO{}, nil
}

func (stubRestaurantsService) RemovePhoto(ctx context.Context, ownerID, photoID uuid.UUID) error {
	return nil
}

type stubWorkersService struct{}

func (stubWorkersService) GetByID(ctx context.Context, id uuid.UUID) (*workers.WorkerProfileDTO, error) {
	return &workers.WorkerProfileDTO{}, nil
}

func (stubWorkersService) GetByUser(ctx context.Context, userID uuid.UUID) (*workers.WorkerProfileDTO, error) {
	return &workers.WorkerProfileDTO{}, nil
}

func (stubWorkersService) Update(ctx context.Context, userID uuid.UUID, input workers.UpdateProfileInput) (*workers.WorkerProfileDTO, error) {
	return &workers.WorkerProfileDTO{}, nil
}

type stubMessagesService struct{}

func (stubMessagesService) Send(ctx context.Context, senderID uuid.UUID, input messages.SendInput) (*messages.MessageDTO, error) {
	return &messages.MessageDTO{}, nil
}

func (stubMessagesService) ListConversation(ctx context.Context, userID, partnerID uuid.UUID, cursor string, limit int) (*messages.MessagePageDTO, error) {
	return &messages.MessagePageDTO{}, nil
}

func (stubMessagesService) ListConversations(ctx context.Context, userID uuid.UUID) ([]messages.ConversationDTO, error) {
	return nil, nil
}

func (stubMessagesService) MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubMessagesService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubSavedJobsService struct{}

func (stubSavedJobsService) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	return nil
}

func (stubSavedJobsService) Remove(ctx context.Context, userID, jobID uuid.UUID) error {
	return nil
}

func (stubSavedJobsService) List(ctx context.Context, userID uuid.UUID) ([]savedjobs.SavedJobDTO, error) {
	return nil, nil
}

type stubDevicesService struct{}

func (stubDevicesService) Register(ctx context.Context, userID uuid.UUID, token string, platform enums.DevicePlatform) (*models.Device, error) {
	return &models.Device{}, nil
}

func (stubDevicesService) Unregister(ctx context.Context, userID uuid.UUID, token string) error {
	return nil
}

func (stubDevicesService) List(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	return nil, nil
}

type stubReviewsService struct{}

func (stubReviewsService) ReviewWorker(ctx context.Context, ownerID, workerProfileID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	return &models.Review{}, nil
}

func (stubReviewsService) ReviewRestaurant(ctx context.Context, workerUserID, restaurantID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	return &models.Review{}, nil
}

func (stubReviewsService) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Review, reviews.RatingSummaryDTO, error) {
	return nil, reviews.RatingSummaryDTO{}, nil
}

func (stubReviewsService) ListForWorker(ctx context.Context, workerProfileID uuid.UUID) ([]models.Review, reviews.RatingSummaryDTO, error) {
	return nil, reviews.RatingSummaryDTO{}, nil
}

type stubTrainingService struct{}

func (stubTrainingService) ListModules(ctx context.Context, userID uuid.UUID, role enums.Role) ([]training.ModuleDTO, error) {
	return nil, nil
}

func (stubTrainingService) GetModule(ctx context.Context, userID, moduleID uuid.UUID) (*training.ModuleDTO, error) {
	return &training.ModuleDTO{}, nil
}

func (stubTrainingService) CompleteMaterial(ctx context.Context, userID, materialID uuid.UUID) error {
	return nil
}

type stubDashboardService struct{}

func (stubDashboardService) Stats(ctx context.Context, userID uuid.UUID, role enums.Role) (*dashboard.StatsDTO, error) {
	return &dashboard.StatsDTO{}, nil
}

func (stubDashboardService) Activity(ctx context.Context, userID uuid.UUID, role enums.Role) ([]dashboard.ActivityItemDTO, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		(*redis.Client)(nil),
		stubSessionManager{},
		stubAuthService{},
		stubRegisterService{},
		stubJobsService{},
		stubApplicationsService{},
		stubRestaurantsService{},
		stubWorkersService{},
		stubMessagesService{},
		stubNotificationsService{},
		stubSavedJobsService{},
		stubDevicesService{},
		stubReviewsService{},
		stubTrainingService{},
		stubDashboardService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestJobBoardIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public job list got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleWorker))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for private ping got %d", resp.Code)
	}
}

func TestJobCreationRequiresOwnerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	asWorker := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/mine", nil)
	asWorker.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleWorker))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asWorker)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for worker on owner route got %d", resp.Code)
	}

	asOwner := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/mine", nil)
	asOwner.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleRestaurantOwner))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asOwner)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner job list got %d", resp.Code)
	}
}

func TestSavedJobsRequireWorkerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	asOwner := httptest.NewRequest(http.MethodGet, "/api/v1/saved-jobs", nil)
	asOwner.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleRestaurantOwner))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asOwner)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for owner on worker route got %d", resp.Code)
	}

	asWorker := httptest.NewRequest(http.MethodGet, "/api/v1/saved-jobs", nil)
	asWorker.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleWorker))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asWorker)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for worker saved jobs got %d", resp.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}
