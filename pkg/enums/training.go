package enums

import "fmt"

// ProgressStatus maps to the progress_status enum in Postgres.
type ProgressStatus string

const (
	ProgressStatusInProgress ProgressStatus = "in_progress"
	ProgressStatusCompleted  ProgressStatus = "completed"
)

var validProgressStatuses = []ProgressStatus{
	ProgressStatusInProgress,
	ProgressStatusCompleted,
}

func (s ProgressStatus) IsValid() bool {
	for _, candidate := range validProgressStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// MaterialKind maps to the material_kind enum in Postgres.
type MaterialKind string

const (
	MaterialKindVideo    MaterialKind = "video"
	MaterialKindDocument MaterialKind = "document"
	MaterialKindQuiz     MaterialKind = "quiz"
)

var validMaterialKinds = []MaterialKind{
	MaterialKindVideo,
	MaterialKindDocument,
	MaterialKindQuiz,
}

func (k MaterialKind) IsValid() bool {
	for _, candidate := range validMaterialKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseMaterialKind converts raw strings into MaterialKind.
func ParseMaterialKind(value string) (MaterialKind, error) {
	for _, candidate := range validMaterialKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid material kind %q", value)
}
