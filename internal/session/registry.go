// Package session tracks active user sessions in a JSON registry with a
// per-user cap. The registry read-modify-write is guarded by a mutex
// within the process and an advisory flock across processes.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"ezygallery/internal/fileutil"
	"ezygallery/internal/services"
)

// DefaultLimit is the per-user active session cap.
const DefaultLimit = 5

// Entry is one active session.
type Entry struct {
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// Registry persists active sessions per user.
type Registry struct {
	path  string
	limit int
	mu    sync.Mutex
	lock  *flock.Flock
}

func NewRegistry(path string, limit int) *Registry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Registry{
		path:  path,
		limit: limit,
		lock:  flock.New(path + ".lock"),
	}
}

// Register records a session for user. It reports false when the user is
// already at the session cap. Re-registering an active session succeeds
// without consuming a slot.
func (r *Registry) Register(user, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.lockFile(); err != nil {
		return false, err
	}
	defer r.unlockFile()

	sessions, err := r.load()
	if err != nil {
		return false, err
	}

	entries := sessions[user]
	for _, entry := range entries {
		if entry.SessionID == sessionID {
			return true, nil
		}
	}
	if len(entries) >= r.limit {
		return false, nil
	}

	sessions[user] = append(entries, Entry{
		SessionID: sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err := r.save(sessions); err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops a session for user. The user key disappears from the
// registry once its last session is removed.
func (r *Registry) Remove(user, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.lockFile(); err != nil {
		return err
	}
	defer r.unlockFile()

	sessions, err := r.load()
	if err != nil {
		return err
	}

	entries := sessions[user]
	kept := entries[:0]
	for _, entry := range entries {
		if entry.SessionID != sessionID {
			kept = append(kept, entry)
		}
	}
	if len(kept) == 0 {
		delete(sessions, user)
	} else {
		sessions[user] = kept
	}
	return r.save(sessions)
}

// Active reports whether the session is currently registered for user.
func (r *Registry) Active(user, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.load()
	if err != nil {
		return false, err
	}
	for _, entry := range sessions[user] {
		if entry.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

// All returns a copy of the full registry.
func (r *Registry) All() (map[string][]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]Entry, len(sessions))
	for user, entries := range sessions {
		out[user] = append([]Entry(nil), entries...)
	}
	return out, nil
}

func (r *Registry) lockFile() error {
	if dir := filepath.Dir(r.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, "session", "lock registry", "create registry directory", err)
		}
	}
	if err := r.lock.Lock(); err != nil {
		return services.Wrap(services.ErrIO, "session", "lock registry", "acquire registry lock", err)
	}
	return nil
}

func (r *Registry) unlockFile() {
	_ = r.lock.Unlock()
}

// load reads the registry. A missing or corrupt file reads as empty; a
// corrupt registry is not worth failing every login over.
func (r *Registry) load() (map[string][]Entry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]Entry{}, nil
		}
		return nil, services.Wrap(services.ErrIO, "session", "read registry", r.path, err)
	}
	var sessions map[string][]Entry
	if err := json.Unmarshal(data, &sessions); err != nil || sessions == nil {
		return map[string][]Entry{}, nil
	}
	return sessions, nil
}

func (r *Registry) save(sessions map[string][]Entry) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrIO, "session", "encode registry", r.path, err)
	}
	if err := fileutil.WriteFileAtomic(r.path, append(data, '\n'), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "session", "write registry", r.path, err)
	}
	return nil
}
