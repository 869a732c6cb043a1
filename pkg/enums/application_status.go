package enums

import "fmt"

// ApplicationStatus maps to the application_status enum in Postgres.
//
// There is deliberately no transition table: any status may be set from any
// other via a direct update. Gating lives with the callers (owners decide,
// workers may only withdraw).
type ApplicationStatus string

const (
	ApplicationStatusPending      ApplicationStatus = "pending"
	ApplicationStatusAccepted     ApplicationStatus = "accepted"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"
)

var validApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
	ApplicationStatusInterviewing,
	ApplicationStatusWithdrawn,
}

func (s ApplicationStatus) IsValid() bool {
	for _, candidate := range validApplicationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseApplicationStatus converts raw strings into ApplicationStatus.
func ParseApplicationStatus(value string) (ApplicationStatus, error) {
	for _, candidate := range validApplicationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid application status %q", value)
}
