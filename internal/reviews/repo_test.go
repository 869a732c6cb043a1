package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

func setupReviewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE reviews (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  worker_profile_id TEXT NOT NULL,
  author_role TEXT NOT NULL,
  rating INTEGER NOT NULL,
  comment TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedReview(t *testing.T, repo *Repository, restaurantID, workerProfileID uuid.UUID, role enums.Role, rating int) {
	t.Helper()
	review := &models.Review{
		ID:              uuid.New(),
		RestaurantID:    restaurantID,
		WorkerProfileID: workerProfileID,
		AuthorRole:      role,
		Rating:          rating,
	}
	require.NoError(t, repo.Create(context.Background(), review))
}

func TestRepositoryListsSplitByAuthorRole(t *testing.T) {
	repo := NewRepository(setupReviewsTestDB(t))
	ctx := context.Background()

	restaurantID := uuid.New()
	workerProfileID := uuid.New()

	seedReview(t, repo, restaurantID, workerProfileID, enums.RoleRestaurantOwner, 5)
	seedReview(t, repo, restaurantID, workerProfileID, enums.RoleWorker, 3)

	forWorker, err := repo.ListForWorker(ctx, workerProfileID)
	require.NoError(t, err)
	require.Len(t, forWorker, 1)
	assert.Equal(t, enums.RoleRestaurantOwner, forWorker[0].AuthorRole)

	forRestaurant, err := repo.ListForRestaurant(ctx, restaurantID)
	require.NoError(t, err)
	require.Len(t, forRestaurant, 1)
	assert.Equal(t, enums.RoleWorker, forRestaurant[0].AuthorRole)
}

func TestRepositoryAverages(t *testing.T) {
	repo := NewRepository(setupReviewsTestDB(t))
	ctx := context.Background()

	restaurantID := uuid.New()
	workerProfileID := uuid.New()

	seedReview(t, repo, restaurantID, workerProfileID, enums.RoleRestaurantOwner, 4)
	seedReview(t, repo, restaurantID, workerProfileID, enums.RoleRestaurantOwner, 5)

	average, count, err := repo.AverageForWorker(ctx, workerProfileID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 4.5, average, 0.001)

	// No worker-authored reviews yet.
	average, count, err = repo.AverageForRestaurant(ctx, restaurantID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 0.0, average)
}
