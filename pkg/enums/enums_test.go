package enums

import "testing"

func TestParseRole(t *testing.T) {
	role, err := ParseRole("worker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleWorker {
		t.Fatalf("expected worker, got %s", role)
	}
	if _, err := ParseRole("admin"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if Role("WORKER").IsValid() {
		t.Fatal("roles are case sensitive")
	}
}

func TestParseApplicationStatus(t *testing.T) {
	for _, raw := range []string{"pending", "accepted", "rejected", "interviewing", "withdrawn"} {
		status, err := ParseApplicationStatus(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !status.IsValid() {
			t.Fatalf("parsed status %q should be valid", raw)
		}
	}
	if _, err := ParseApplicationStatus("hired"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseNotificationType(t *testing.T) {
	kind, err := ParseNotificationType("shift_reminder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != NotificationTypeShiftReminder {
		t.Fatalf("expected shift_reminder, got %s", kind)
	}
	if NotificationType("push").IsValid() {
		t.Fatal("unexpected valid type")
	}
}

func TestJobStatusValidity(t *testing.T) {
	if !JobStatusActive.IsValid() {
		t.Fatal("active must be valid")
	}
	if JobStatus("open").IsValid() {
		t.Fatal("open is not a job status")
	}
}
