package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shiftplate/shiftplate-backend/pkg/migrate"
)

func TestMigrationsDirectoryIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestCoreMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_core_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core tables migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE applications",
		"CREATE UNIQUE INDEX idx_applications_job_worker ON applications (job_id, worker_profile_id)",
		"status             application_status NOT NULL DEFAULT 'pending'",
		"reminded_at        timestamptz",
		"DROP TABLE IF EXISTS applications",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestEngagementMigrationContainsSavedJobsUnique(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_engagement_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no engagement tables migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE UNIQUE INDEX idx_saved_jobs_user_job ON saved_jobs (user_id, job_id)",
		"CREATE UNIQUE INDEX idx_devices_token ON devices (token)",
		"CHECK (rating BETWEEN 1 AND 5)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
