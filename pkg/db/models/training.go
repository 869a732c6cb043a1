package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftplate/shiftplate-backend/pkg/enums"
)

// TrainingModule is an onboarding unit composed of ordered materials.
// Prerequisites form a DAG; cycles are not validated anywhere.
type TrainingModule struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Description *string    `gorm:"column:description"`
	TargetRole  enums.Role `gorm:"column:target_role;type:user_role;not null"`
	IsRequired  bool       `gorm:"column:is_required;not null;default:false"`
	Position    int        `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Materials     []TrainingMaterial `gorm:"foreignKey:ModuleID"`
	Prerequisites []TrainingModule   `gorm:"many2many:training_module_prerequisites;joinForeignKey:ModuleID;joinReferences:PrerequisiteID"`
}

// TrainingMaterial is a single learning item inside a module.
type TrainingMaterial struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ModuleID   uuid.UUID          `gorm:"column:module_id;type:uuid;not null;index"`
	Title      string             `gorm:"column:title;not null"`
	Kind       enums.MaterialKind `gorm:"column:kind;type:material_kind;not null"`
	ContentURL *string            `gorm:"column:content_url"`
	Position   int                `gorm:"column:position;not null;default:0"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
}

// TrainingProgress tracks one user's state on one material.
type TrainingProgress struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID            `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_training_progress_user_material"`
	ModuleID    uuid.UUID            `gorm:"column:module_id;type:uuid;not null;index"`
	MaterialID  uuid.UUID            `gorm:"column:material_id;type:uuid;not null;uniqueIndex:idx_training_progress_user_material"`
	Status      enums.ProgressStatus `gorm:"column:status;type:progress_status;not null;default:'in_progress'"`
	CompletedAt *time.Time           `gorm:"column:completed_at"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
