package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PolarWolf314/homebase/internal/audit"
)

func TestLogWithoutAuditLog(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "log")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(output, "No audit log found") {
		t.Errorf("Expected no log message, got: %s", output)
	}
}

func TestLogShowsPipelineStages(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "create-project", "demo"); err != nil {
		t.Fatalf("Failed to run create-project: %v", err)
	}
	if _, err := runCLI(t, "run", "BULK_RENAME", "-p", `{"folder":"~/x"}`); err == nil {
		t.Fatal("Expected BULK_RENAME to fail")
	}

	output, err := runCLI(t, "log")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	for _, status := range []string{"STARTED", "VALIDATED", "PLANNED", "POLICY_APPROVED", "COMPLETED"} {
		if !strings.Contains(output, status) {
			t.Errorf("Expected %s in log, got: %s", status, output)
		}
	}

	output, err = runCLI(t, "log", "--task", "bulk_rename", "-o", "json")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	var entries []audit.Entry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", output, err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected STARTED and VALIDATED for BULK_RENAME, got %d entries", len(entries))
	}
	if entries[0].Status != audit.StatusStarted || entries[1].Status != audit.StatusValidated {
		t.Errorf("Unexpected stages: %s, %s", entries[0].Status, entries[1].Status)
	}
}

func TestLogFiltersAndLimit(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "create-project", "demo"); err != nil {
		t.Fatalf("Failed to run create-project: %v", err)
	}

	output, err := runCLI(t, "log", "--status", "completed", "--oneline")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(output), "\n"); len(lines) != 1 {
		t.Errorf("Expected one COMPLETED line, got: %s", output)
	}

	output, err = runCLI(t, "log", "-n", "2", "--reverse", "-o", "json")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	var entries []audit.Entry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if len(entries) != 2 || entries[0].Status != audit.StatusCompleted {
		t.Errorf("Expected the two most recent entries, newest first: %+v", entries)
	}
}

func TestLogInvalidDate(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "create-project", "demo"); err != nil {
		t.Fatalf("Failed to run create-project: %v", err)
	}

	output, err := runCLI(t, "log", "--since", "last week")
	if err == nil {
		t.Fatal("Expected error for invalid date")
	}
	if !strings.Contains(output, "YYYY-MM-DD") {
		t.Errorf("Expected date format hint, got: %s", output)
	}
}
