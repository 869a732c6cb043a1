package enums

import "fmt"

// JobStatus maps to the job_status enum in Postgres.
type JobStatus string

const (
	JobStatusActive    JobStatus = "active"
	JobStatusFilled    JobStatus = "filled"
	JobStatusClosed    JobStatus = "closed"
	JobStatusCancelled JobStatus = "cancelled"
)

var validJobStatuses = []JobStatus{
	JobStatusActive,
	JobStatusFilled,
	JobStatusClosed,
	JobStatusCancelled,
}

func (s JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseJobStatus converts raw strings into JobStatus.
func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}
