package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/homebase/internal/configs"
	"github.com/PolarWolf314/homebase/internal/task"
)

// TimestampFormat is RFC3339 in UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Status is the pipeline stage a record marks.
type Status string

const (
	StatusStarted        Status = "STARTED"
	StatusValidated      Status = "VALIDATED"
	StatusPlanned        Status = "PLANNED"
	StatusPolicyApproved Status = "POLICY_APPROVED"
	StatusCompleted      Status = "COMPLETED"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string         `json:"timestamp" yaml:"timestamp"`
	TaskType  string         `json:"task_type" yaml:"task_type"`
	Params    map[string]any `json:"params" yaml:"params"`
	Status    Status         `json:"status" yaml:"status"`
	Details   map[string]any `json:"details" yaml:"details"`

	// RequestID ties together the records of one pipeline run.
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
}

// NewEntry builds the record for one stage of req.
func NewEntry(req task.Request, status Status, details map[string]any) Entry {
	return Entry{
		TaskType: string(req.Type()),
		Params:   req.Fields(),
		Status:   status,
		Details:  details,
	}
}

// Log appends an entry to the audit log.
// If logging fails, the failure is swallowed. Operations should not fail just
// because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}
	if entry.Params == nil {
		entry.Params = map[string]any{}
	}
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	// One Write per record keeps concurrent appenders from splitting lines.
	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	if configs.HomebaseSettings == nil {
		return ""
	}
	return configs.HomebaseSettings.AuditLogPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
