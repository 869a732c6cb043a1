package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPgconn(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "applications_job_worker_key"}
	wrapped := fmt.Errorf("insert application: %w", pgErr)

	if !IsUniqueViolation(wrapped, "") {
		t.Fatal("expected unique violation without constraint filter")
	}
	if !IsUniqueViolation(wrapped, "applications_job_worker_key") {
		t.Fatal("expected unique violation for matching constraint")
	}
	if IsUniqueViolation(wrapped, "other_constraint") {
		t.Fatal("constraint name must match when provided")
	}
}

func TestIsUniqueViolationIgnoresOtherPGCodes(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "applications_job_id_fkey"}
	if IsUniqueViolation(pgErr, "") {
		t.Fatal("foreign key violation is not a unique violation")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	err := errors.New(`ERROR: duplicate key value violates unique constraint "saved_jobs_user_job_key"`)
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected message fallback to detect duplicate key")
	}
	if !IsUniqueViolation(err, "saved_jobs_user_job_key") {
		t.Fatal("expected message fallback to match constraint name")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error is never a violation")
	}
}
