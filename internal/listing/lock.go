package listing

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"ezygallery/internal/services"
)

// LockMarkerName is the marker file dropped next to a locked listing.
const LockMarkerName = ".lock"

// LockState captures both lock signals for a listing: the JSON fields and
// the on-disk marker. Either signal alone means the listing is locked, so
// a half-applied lock still fails closed.
type LockState struct {
	Locked        bool
	By            string
	At            string
	Reason        string
	FieldLocked   bool
	MarkerPresent bool
}

// LockInfo reads the lock state for the listing at listingPath. A missing
// listing document contributes no field signal; the marker is still
// honoured.
func LockInfo(listingPath string) (LockState, error) {
	var state LockState

	l, err := Read(listingPath)
	switch {
	case err == nil:
		state.FieldLocked = l.Locked
		state.By = l.LockedBy
		state.At = l.LockedAt
		state.Reason = l.LockReason
	case errors.Is(err, services.ErrNotFound):
		// Marker check below still applies.
	default:
		return state, err
	}

	marker := filepath.Join(filepath.Dir(listingPath), LockMarkerName)
	if _, err := os.Stat(marker); err == nil {
		state.MarkerPresent = true
	} else if !os.IsNotExist(err) {
		return state, services.Wrap(services.ErrIO, "lock", "stat marker", marker, err)
	}

	state.Locked = state.FieldLocked || state.MarkerPresent
	return state, nil
}

// UpdateLock applies or clears the lock on the listing at listingPath,
// keeping the JSON fields and the marker file in agreement.
func UpdateLock(listingPath string, locked bool, user, reason string) error {
	l, err := Read(listingPath)
	if err != nil {
		return err
	}

	if locked {
		l.Locked = true
		l.LockedBy = user
		l.LockedAt = time.Now().UTC().Format(time.RFC3339)
		l.LockReason = reason
	} else {
		l.Locked = false
		l.LockedBy = ""
		l.LockedAt = ""
		l.LockReason = ""
	}
	if err := Write(listingPath, l); err != nil {
		return err
	}

	marker := filepath.Join(filepath.Dir(listingPath), LockMarkerName)
	if locked {
		if err := os.WriteFile(marker, []byte(l.LockedAt+"\n"), 0o644); err != nil {
			return services.Wrap(services.ErrIO, "lock", "write marker", marker, err)
		}
		return nil
	}
	if err := os.Remove(marker); err != nil && !os.IsNotExist(err) {
		return services.Wrap(services.ErrIO, "lock", "remove marker", marker, err)
	}
	return nil
}
