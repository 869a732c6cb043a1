package training

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftplate/shiftplate-backend/pkg/db/models"
	"github.com/shiftplate/shiftplate-backend/pkg/enums"
	pkgerrors "github.com/shiftplate/shiftplate-backend/pkg/errors"
)

type trainingRepository interface {
	ListModulesByRole(ctx context.Context, role enums.Role) ([]models.TrainingModule, error)
	FindModule(ctx context.Context, id uuid.UUID) (*models.TrainingModule, error)
	FindMaterial(ctx context.Context, id uuid.UUID) (*models.TrainingMaterial, error)
	ListProgress(ctx context.Context, userID uuid.UUID, moduleIDs []uuid.UUID) ([]models.TrainingProgress, error)
	UpsertProgress(ctx context.Context, progress *models.TrainingProgress) error
	CountMaterialsByModule(ctx context.Context, moduleIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	CountCompletedByModule(ctx context.Context, userID uuid.UUID, moduleIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// MaterialDTO is one learning item with the caller's completion state.
type MaterialDTO struct {
	ID         uuid.UUID          `json:"id"`
	Title      string             `json:"title"`
	Kind       enums.MaterialKind `json:"kind"`
	ContentURL *string            `json:"content_url,omitempty"`
	Position   int                `json:"position"`
	Completed  bool               `json:"completed"`
}

// ModuleDTO is a training module annotated with the caller's progress.
type ModuleDTO struct {
	ID                     uuid.UUID     `json:"id"`
	Title                  string        `json:"title"`
	Description            *string       `json:"description,omitempty"`
	IsRequired             bool          `json:"is_required"`
	Position               int           `json:"position"`
	Materials              []MaterialDTO `json:"materials"`
	CompletionPercentage   int           `json:"completion_percentage"`
	PrerequisitesCompleted bool          `json:"prerequisites_completed"`
}

// Service exposes training module listing and progress tracking.
type Service interface {
	ListModules(ctx context.Context, userID uuid.UUID, role enums.Role) ([]ModuleDTO, error)
	GetModule(ctx context.Context, userID, moduleID uuid.UUID) (*ModuleDTO, error)
	CompleteMaterial(ctx context.Context, userID, materialID uuid.UUID) error
}

type service struct {
	repo trainingRepository
}

// NewService builds a training service with the required repository.
func NewService(repo trainingRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "training repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListModules(ctx context.Context, userID uuid.UUID, role enums.Role) ([]ModuleDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}

	modules, err := s.repo.ListModulesByRole(ctx, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list training modules")
	}

	moduleIDs := collectModuleIDs(modules)
	totals, completed, progress, err := s.loadProgress(ctx, userID, moduleIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ModuleDTO, 0, len(modules))
	for i := range modules {
		items = append(items, buildModuleDTO(&modules[i], totals, completed, progress))
	}
	return items, nil
}

func (s *service) GetModule(ctx context.Context, userID, moduleID uuid.UUID) (*ModuleDTO, error) {
	if userID == uuid.Nil || moduleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user and module ids are required")
	}

	module, err := s.findModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	moduleIDs := collectModuleIDs([]models.TrainingModule{*module})
	totals, completed, progress, err := s.loadProgress(ctx, userID, moduleIDs)
	if err != nil {
		return nil, err
	}

	dto := buildModuleDTO(module, totals, completed, progress)
	return &dto, nil
}

// CompleteMaterial marks the material done for the user. Modules gate on
// their direct prerequisites only.
func (s *service) CompleteMaterial(ctx context.Context, userID, materialID uuid.UUID) error {
	if userID == uuid.Nil || materialID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user and material ids are required")
	}

	material, err := s.repo.FindMaterial(ctx, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "material not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load material")
	}

	module, err := s.findModule(ctx, material.ModuleID)
	if err != nil {
		return err
	}

	unlocked, err := s.prerequisitesCompleted(ctx, userID, module)
	if err != nil {
		return err
	}
	if !unlocked {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "module prerequisites not completed")
	}

	now := time.Now().UTC()
	progress := &models.TrainingProgress{
		UserID:      userID,
		ModuleID:    material.ModuleID,
		MaterialID:  material.ID,
		Status:      enums.ProgressStatusCompleted,
		CompletedAt: &now,
	}
	if err := s.repo.UpsertProgress(ctx, progress); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record progress")
	}
	return nil
}

// prerequisitesCompleted checks the module's direct prerequisites and stops
// at the first incomplete one.
func (s *service) prerequisitesCompleted(ctx context.Context, userID uuid.UUID, module *models.TrainingModule) (bool, error) {
	if len(module.Prerequisites) == 0 {
		return true, nil
	}

	prereqIDs := make([]uuid.UUID, 0, len(module.Prerequisites))
	for _, prerequisite := range module.Prerequisites {
		prereqIDs = append(prereqIDs, prerequisite.ID)
	}

	totals, err := s.repo.CountMaterialsByModule(ctx, prereqIDs)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count prerequisite materials")
	}
	completed, err := s.repo.CountCompletedByModule(ctx, userID, prereqIDs)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count prerequisite progress")
	}

	for _, id := range prereqIDs {
		if !moduleComplete(totals[id], completed[id]) {
			return false, nil
		}
	}
	return true, nil
}

func (s *service) loadProgress(ctx context.Context, userID uuid.UUID, moduleIDs []uuid.UUID) (map[uuid.UUID]int64, map[uuid.UUID]int64, map[uuid.UUID]bool, error) {
	totals, err := s.repo.CountMaterialsByModule(ctx, moduleIDs)
	if err != nil {
		return nil, nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count materials")
	}
	completed, err := s.repo.CountCompletedByModule(ctx, userID, moduleIDs)
	if err != nil {
		return nil, nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count progress")
	}
	rows, err := s.repo.ListProgress(ctx, userID, moduleIDs)
	if err != nil {
		return nil, nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list progress")
	}

	materialDone := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		if row.Status == enums.ProgressStatusCompleted {
			materialDone[row.MaterialID] = true
		}
	}
	return totals, completed, materialDone, nil
}

func (s *service) findModule(ctx context.Context, moduleID uuid.UUID) (*models.TrainingModule, error) {
	module, err := s.repo.FindModule(ctx, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "module not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load module")
	}
	return module, nil
}

func buildModuleDTO(module *models.TrainingModule, totals, completed map[uuid.UUID]int64, materialDone map[uuid.UUID]bool) ModuleDTO {
	materials := make([]MaterialDTO, 0, len(module.Materials))
	for _, material := range module.Materials {
		materials = append(materials, MaterialDTO{
			ID:         material.ID,
			Title:      material.Title,
			Kind:       material.Kind,
			ContentURL: material.ContentURL,
			Position:   material.Position,
			Completed:  materialDone[material.ID],
		})
	}

	prerequisitesCompleted := true
	for _, prerequisite := range module.Prerequisites {
		if !moduleComplete(totals[prerequisite.ID], completed[prerequisite.ID]) {
			prerequisitesCompleted = false
			break
		}
	}

	return ModuleDTO{
		ID:                     module.ID,
		Title:                  module.Title,
		Description:            module.Description,
		IsRequired:             module.IsRequired,
		Position:               module.Position,
		Materials:              materials,
		CompletionPercentage:   completionPercentage(totals[module.ID], completed[module.ID]),
		PrerequisitesCompleted: prerequisitesCompleted,
	}
}

// completionPercentage rounds to the nearest whole percent. Empty modules
// report zero.
func completionPercentage(total, completed int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// moduleComplete treats a module with no materials as satisfied so an empty
// prerequisite never locks its dependents.
func moduleComplete(total, completed int64) bool {
	return total == 0 || completed >= total
}

func collectModuleIDs(modules []models.TrainingModule) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(modules))
	for _, module := range modules {
		if _, ok := seen[module.ID]; !ok {
			seen[module.ID] = struct{}{}
			ids = append(ids, module.ID)
		}
		for _, prerequisite := range module.Prerequisites {
			if _, ok := seen[prerequisite.ID]; !ok {
				seen[prerequisite.ID] = struct{}{}
				ids = append(ids, prerequisite.ID)
			}
		}
	}
	return ids
}
