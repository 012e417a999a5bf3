package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/PolarWolf314/homebase/internal/configs"
	"github.com/PolarWolf314/homebase/internal/task"
)

// setupAuditSettings points the audit log at a fresh temp directory.
func setupAuditSettings(t *testing.T) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "homebase-audit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	originalSettings := configs.HomebaseSettings
	configs.HomebaseSettings = configs.NewSettings(tempDir, filepath.Join(tempDir, "config", "homebase"))
	t.Cleanup(func() {
		configs.HomebaseSettings = originalSettings
	})

	return configs.HomebaseSettings.AuditLogPath
}

func TestLog_CreatesFileAndParent(t *testing.T) {
	logPath := setupAuditSettings(t)

	Log(Entry{
		TaskType: "ORGANIZE_DOWNLOADS",
		Params:   map[string]any{"source_dir": "~/Downloads"},
		Status:   StatusStarted,
	})

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	logPath := setupAuditSettings(t)

	Log(Entry{TaskType: "GENERATE_PASSWORD", Status: StatusStarted})
	Log(Entry{TaskType: "GENERATE_PASSWORD", Status: StatusValidated})
	Log(Entry{TaskType: "GENERATE_PASSWORD", Status: StatusPlanned})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSONWithRequiredFields(t *testing.T) {
	logPath := setupAuditSettings(t)

	Log(Entry{
		TaskType:  "CREATE_PROJECT_SCAFFOLD",
		Params:    map[string]any{"name": "demo", "location": "~/Projects"},
		Status:    StatusPolicyApproved,
		Details:   map[string]any{"affected_paths": 4},
		RequestID: "req-1",
	})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &raw); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	for _, field := range []string{"timestamp", "task_type", "params", "status", "details"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("Expected field %q in record, got %v", field, raw)
		}
	}
	if raw["status"] != "POLICY_APPROVED" {
		t.Errorf("Expected status POLICY_APPROVED, got %v", raw["status"])
	}
	if raw["request_id"] != "req-1" {
		t.Errorf("Expected request_id req-1, got %v", raw["request_id"])
	}
}

func TestLog_EmptyMapsAreObjects(t *testing.T) {
	logPath := setupAuditSettings(t)

	Log(Entry{TaskType: "AUTOFILL_APP", Status: StatusStarted})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, `"params":{}`) || !strings.Contains(line, `"details":{}`) {
		t.Errorf("Expected empty params and details objects, got %s", line)
	}
	if strings.Contains(line, `"request_id"`) {
		t.Errorf("Empty request_id should be omitted, got %s", line)
	}
}

func TestLog_TimestampFormat(t *testing.T) {
	logPath := setupAuditSettings(t)

	Log(Entry{TaskType: "SCAN_PASSWORD_FIELDS", Status: StatusStarted})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.Timestamp == "" {
		t.Errorf("Timestamp should be auto-set")
	}
	if !strings.HasSuffix(parsed.Timestamp, "Z") {
		t.Errorf("Timestamp should end with Z, got %s", parsed.Timestamp)
	}
	if !strings.Contains(parsed.Timestamp, ".") {
		t.Errorf("Timestamp should contain microseconds, got %s", parsed.Timestamp)
	}
}

func TestLog_UnwritableLocationDoesNotPanic(t *testing.T) {
	tempDir := t.TempDir()
	blocker := filepath.Join(tempDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	originalSettings := configs.HomebaseSettings
	// The config root is a regular file, so the parent cannot be created.
	configs.HomebaseSettings = configs.NewSettings(tempDir, blocker)
	defer func() {
		configs.HomebaseSettings = originalSettings
	}()

	Log(Entry{TaskType: "ORGANIZE_DOWNLOADS", Status: StatusStarted})
}

func TestLog_ConcurrentWritersKeepWholeLines(t *testing.T) {
	logPath := setupAuditSettings(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Log(Entry{TaskType: "ORGANIZE_DOWNLOADS", Status: StatusStarted})
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 20 {
		t.Errorf("Expected 20 intact records, got %d", len(entries))
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"timestamp":"2024-01-15T10:30:00.123456Z","task_type":"ORGANIZE_DOWNLOADS","params":{},"status":"STARTED","details":{}}
{"timestamp":"2024-01-15T10:30:00.223456Z","task_type":"ORGANIZE_DOWNLOADS","params":{},"status":"VALIDATED","details":{}}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Status != StatusStarted {
		t.Errorf("Expected first status STARTED, got %s", entries[0].Status)
	}
	if entries[1].Status != StatusValidated {
		t.Errorf("Expected second status VALIDATED, got %s", entries[1].Status)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"task_type":"GENERATE_PASSWORD","status":"STARTED"}
this is not valid json
{"task_type":"GENERATE_PASSWORD","status":"VALIDATED"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 valid entries (malformed should be skipped), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries([]byte{})
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if entries != nil {
		t.Errorf("Expected nil entries for empty data, got %v", entries)
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	setupAuditSettings(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries when no log exists, got %v", entries)
	}
}

func TestLogPath_FollowsSettings(t *testing.T) {
	originalSettings := configs.HomebaseSettings
	configs.HomebaseSettings = configs.NewSettings("/home/test", "/home/test/.config/homebase")
	defer func() {
		configs.HomebaseSettings = originalSettings
	}()

	expected := filepath.FromSlash("/home/test/.config/homebase/audit.jsonl")
	if path := LogPath(); path != expected {
		t.Errorf("Expected %s, got %s", expected, path)
	}
}

func TestNewEntry_CarriesRequest(t *testing.T) {
	req := task.New(task.AutofillApp{App: "spotify"})
	entry := NewEntry(req, StatusPlanned, map[string]any{"steps": "none (pure code action)"})

	if entry.TaskType != "AUTOFILL_APP" {
		t.Errorf("Expected task type AUTOFILL_APP, got %s", entry.TaskType)
	}
	if entry.Params["app"] != "spotify" {
		t.Errorf("Expected app param spotify, got %v", entry.Params["app"])
	}
	if entry.Status != StatusPlanned {
		t.Errorf("Expected status PLANNED, got %s", entry.Status)
	}
	if entry.Timestamp != "" {
		t.Errorf("Timestamp should be left for Log to fill, got %s", entry.Timestamp)
	}
}
