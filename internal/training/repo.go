package training

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// Repository encapsulates training persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a training repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListModulesByRole returns the role's modules with materials and
// prerequisites preloaded, in display order.
func (r *Repository) ListModulesByRole(ctx context.Context, role enums.Role) ([]models.TrainingModule, error) {
	var modules []models.TrainingModule
	err := r.db.WithContext(ctx).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Prerequisites").
		Where("target_role = ?", role).
		Order("position ASC, created_at ASC").
		Find(&modules).Error
	return modules, err
}

// FindModule loads one module with its materials and prerequisites.
func (r *Repository) FindModule(ctx context.Context, id uuid.UUID) (*models.TrainingModule, error) {
	var module models.TrainingModule
	err := r.db.WithContext(ctx).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Prerequisites").
		First(&module, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// FindMaterial loads one material.
func (r *Repository) FindMaterial(ctx context.Context, id uuid.UUID) (*models.TrainingMaterial, error) {
	var material models.TrainingMaterial
	if err := r.db.WithContext(ctx).First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// ListProgress returns the user's progress rows for the given modules.
func (r *Repository) ListProgress(ctx context.Context, userID uuid.UUID, moduleIDs []uuid.UUID) ([]models.TrainingProgress, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	var progress []models.TrainingProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND module_id IN ?", userID, moduleIDs).
		Find(&progress).Error
	return progress, err
}

// UpsertProgress records the user's state on a material. Completing an
// already-completed material keeps the original completion time.
func (r *Repository) UpsertProgress(ctx context.Context, progress *models.TrainingProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "material_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":       progress.Status,
				"completed_at": gorm.Expr("COALESCE(training_progress.completed_at, EXCLUDED.completed_at)"),
				"updated_at":   time.Now().UTC(),
			}),
		}).
		Create(progress).Error
}

type moduleCompletionRow struct {
	ModuleID uuid.UUID `gorm:"column:module_id"`
	Count    int64     `gorm:"column:count"`
}

// CountMaterialsByModule returns total material counts per module.
func (r *Repository) CountMaterialsByModule(ctx context.Context, moduleIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(moduleIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	var rows []moduleCompletionRow
	err := r.db.WithContext(ctx).
		Model(&models.TrainingMaterial{}).
		Select("module_id, COUNT(*) AS count").
		Where("module_id IN ?", moduleIDs).
		Group("module_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ModuleID] = row.Count
	}
	return counts, nil
}

// CountCompletedByModule returns completed-material counts per module for
// the user.
func (r *Repository) CountCompletedByModule(ctx context.Context, userID uuid.UUID, moduleIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(moduleIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	var rows []moduleCompletionRow
	err := r.db.WithContext(ctx).
		Model(&models.TrainingProgress{}).
		Select("module_id, COUNT(*) AS count").
		Where("user_id = ? AND module_id IN ? AND status = ?", userID, moduleIDs, enums.ProgressStatusCompleted).
		Group("module_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ModuleID] = row.Count
	}
	return counts, nil
}
