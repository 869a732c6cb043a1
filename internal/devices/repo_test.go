package devices

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

func setupDevicesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE devices (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  token TEXT NOT NULL UNIQUE,
  platform TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestRepositoryUpsertReassignsToken(t *testing.T) {
	db := setupDevicesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	firstUser := uuid.New()
	secondUser := uuid.New()

	first := &models.Device{ID: uuid.New(), UserID: firstUser, Token: "tok-1", Platform: enums.DevicePlatformIOS}
	require.NoError(t, repo.Upsert(ctx, first))

	// Same token registered by another user moves the row.
	second := &models.Device{ID: uuid.New(), UserID: secondUser, Token: "tok-1", Platform: enums.DevicePlatformAndroid}
	require.NoError(t, repo.Upsert(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.Device{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	devices, err := repo.ListByUser(ctx, secondUser)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, enums.DevicePlatformAndroid, devices[0].Platform)

	former, err := repo.ListByUser(ctx, firstUser)
	require.NoError(t, err)
	assert.Empty(t, former)
}

func TestRepositoryDeleteByTokenScopedToUser(t *testing.T) {
	db := setupDevicesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	device := &models.Device{ID: uuid.New(), UserID: owner, Token: "tok-2", Platform: enums.DevicePlatformWeb}
	require.NoError(t, repo.Upsert(ctx, device))

	removed, err := repo.DeleteByToken(ctx, uuid.New(), "tok-2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	removed, err = repo.DeleteByToken(ctx, owner, "tok-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
