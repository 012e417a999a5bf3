// Package audit records every pipeline stage transition.
//
// Each task request that enters the pipeline produces one record per stage it
// reaches: STARTED, VALIDATED, PLANNED, POLICY_APPROVED and COMPLETED. A
// rejected request therefore leaves a trail that stops at the last stage it
// passed.
//
// # Log Format
//
// The log is JSON Lines, one object per line, at:
//
//	$XDG_CONFIG_HOME/homebase/audit.jsonl
//
// Each entry contains:
//   - timestamp (RFC3339 with microseconds, UTC)
//   - task_type and params, exactly as requested
//   - status (the stage reached)
//   - details (stage-specific counters and flags)
//   - request_id (shared by all records of one run)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. Each call performs a single
// append of one line; there is no locking between processes.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
