// Package events persists upload lifecycle events and application log
// entries in an embedded SQLite database.
package events

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Upload status values.
const (
	StatusStarted   = "started"
	StatusUploaded  = "uploaded"
	StatusAnalysing = "analysing"
	StatusAnalysed  = "analysed"
	StatusError     = "error"
)

const schema = `
CREATE TABLE IF NOT EXISTS upload_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    upload_id TEXT NOT NULL UNIQUE,
    filename TEXT NOT NULL,
    user TEXT,
    session_id TEXT,
    status TEXT NOT NULL,
    uploaded_at TEXT,
    analysis_started_at TEXT,
    analysis_finished_at TEXT,
    error_msg TEXT
);
CREATE INDEX IF NOT EXISTS idx_upload_events_status ON upload_events(status);

CREATE TABLE IF NOT EXISTS log_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    level TEXT NOT NULL,
    event_type TEXT,
    message TEXT NOT NULL,
    details TEXT,
    user TEXT,
    session_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_log_entries_created_at ON log_entries(created_at);
`

// UploadEvent is one row of the upload_events table.
type UploadEvent struct {
	ID                 int64
	UploadID           string
	Filename           string
	User               string
	SessionID          string
	Status             string
	UploadedAt         string
	AnalysisStartedAt  string
	AnalysisFinishedAt string
	ErrorMsg           string
}

// LogEntry is one row of the log_entries table.
type LogEntry struct {
	ID        int64
	CreatedAt string
	Level     string
	EventType string
	Message   string
	Details   string
	User      string
	SessionID string
}

// Store wraps the events database.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the events database and applies the schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure events directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordUpload inserts a new upload event in the started state.
func (s *Store) RecordUpload(ctx context.Context, uploadID, filename, user, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO upload_events (upload_id, filename, user, session_id, status)
         VALUES (?, ?, ?, ?, ?)`,
		uploadID, filename, nullableString(user), nullableString(sessionID), StatusStarted)
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// MarkUploaded transitions an upload to the uploaded state.
func (s *Store) MarkUploaded(ctx context.Context, uploadID string) error {
	return s.updateStatus(ctx, uploadID, StatusUploaded, "uploaded_at")
}

// MarkAnalysisStarted transitions an upload into analysis.
func (s *Store) MarkAnalysisStarted(ctx context.Context, uploadID string) error {
	return s.updateStatus(ctx, uploadID, StatusAnalysing, "analysis_started_at")
}

// MarkAnalysisFinished records a successful analysis.
func (s *Store) MarkAnalysisFinished(ctx context.Context, uploadID string) error {
	return s.updateStatus(ctx, uploadID, StatusAnalysed, "analysis_finished_at")
}

// MarkAnalysisFailed records a failed analysis with its message.
func (s *Store) MarkAnalysisFailed(ctx context.Context, uploadID, errorMsg string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`UPDATE upload_events
         SET status = ?, analysis_finished_at = ?, error_msg = ?
         WHERE upload_id = ?`,
		StatusError, now, nullableString(errorMsg), uploadID)
	if err != nil {
		return fmt.Errorf("mark analysis failed: %w", err)
	}
	return nil
}

func (s *Store) updateStatus(ctx context.Context, uploadID, status, timeColumn string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	query := fmt.Sprintf("UPDATE upload_events SET status = ?, %s = ? WHERE upload_id = ?", timeColumn)
	if _, err := s.db.ExecContext(ctx, query, status, now, uploadID); err != nil {
		return fmt.Errorf("update upload status to %s: %w", status, err)
	}
	return nil
}

// LatestUploadEvent returns the most recent event for uploadID.
func (s *Store) LatestUploadEvent(ctx context.Context, uploadID string) (*UploadEvent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, upload_id, filename, user, session_id, status,
                uploaded_at, analysis_started_at, analysis_finished_at, error_msg
         FROM upload_events WHERE upload_id = ? ORDER BY id DESC LIMIT 1`,
		uploadID)
	event, err := scanUploadEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return event, err
}

// Log appends an application log entry.
func (s *Store) Log(ctx context.Context, level, eventType, message, details, user, sessionID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO log_entries (created_at, level, event_type, message, details, user, session_id)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		now, level, nullableString(eventType), message,
		nullableString(details), nullableString(user), nullableString(sessionID))
	if err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// RecentEntries returns the newest limit log entries, most recent first.
func (s *Store) RecentEntries(ctx context.Context, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, level, event_type, message, details, user, session_id
         FROM log_entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query log entries: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var (
			entry     LogEntry
			eventType sql.NullString
			details   sql.NullString
			user      sql.NullString
			sessionID sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.CreatedAt, &entry.Level, &eventType,
			&entry.Message, &details, &user, &sessionID); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entry.EventType = eventType.String
		entry.Details = details.String
		entry.User = user.String
		entry.SessionID = sessionID.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanUploadEvent(scanner interface{ Scan(dest ...any) error }) (*UploadEvent, error) {
	var (
		event      UploadEvent
		user       sql.NullString
		sessionID  sql.NullString
		uploadedAt sql.NullString
		startedAt  sql.NullString
		finishedAt sql.NullString
		errorMsg   sql.NullString
	)
	if err := scanner.Scan(&event.ID, &event.UploadID, &event.Filename, &user, &sessionID,
		&event.Status, &uploadedAt, &startedAt, &finishedAt, &errorMsg); err != nil {
		return nil, err
	}
	event.User = user.String
	event.SessionID = sessionID.String
	event.UploadedAt = uploadedAt.String
	event.AnalysisStartedAt = startedAt.String
	event.AnalysisFinishedAt = finishedAt.String
	event.ErrorMsg = errorMsg.String
	return &event, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
