// Package sku allocates and audits artwork SKUs. SKUs are sequential,
// formatted RJC-NNNN, and tracked in a small JSON file so allocation
// survives restarts. The tracker read-modify-write is guarded by a mutex
// within the process and an advisory flock across processes.
package sku

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"github.com/gofrs/flock"

	"ezygallery/internal/fileutil"
	"ezygallery/internal/services"
)

// Prefix is the SKU namespace for all artworks.
const Prefix = "RJC-"

var skuPattern = regexp.MustCompile(`^RJC-(\d{4,})$`)

type tracker struct {
	LastSKU int `json:"last_sku"`
}

// Allocator hands out sequential SKUs backed by a JSON tracker file.
type Allocator struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

func NewAllocator(trackerPath string) *Allocator {
	return &Allocator{
		path: trackerPath,
		lock: flock.New(trackerPath + ".lock"),
	}
}

// Format renders a sequence number as a SKU.
func Format(n int) string {
	return fmt.Sprintf("%s%04d", Prefix, n)
}

// Parse extracts the sequence number from a SKU. It reports false for
// anything that is not a well-formed sequential SKU.
func Parse(sku string) (int, bool) {
	m := skuPattern.FindStringSubmatch(sku)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// PeekNext returns the SKU the next assignment would produce without
// mutating the tracker. A missing tracker file reads as zero.
func (a *Allocator) PeekNext() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	last, err := a.readTracker()
	if err != nil {
		return "", err
	}
	return Format(last + 1), nil
}

// AssignNext increments the tracker and returns the newly assigned SKU.
// The tracker is only advanced once the new value is durably written, so
// a failed write does not skip a number.
func (a *Allocator) AssignNext() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.lockFile(); err != nil {
		return "", err
	}
	defer a.unlockFile()

	last, err := a.readTracker()
	if err != nil {
		return "", err
	}
	next := last + 1
	if err := a.writeTracker(next); err != nil {
		return "", err
	}
	return Format(next), nil
}

// Last returns the highest assigned sequence number.
func (a *Allocator) Last() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.readTracker()
}

func (a *Allocator) lockFile() error {
	if dir := filepath.Dir(a.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, "sku", "lock tracker", "create tracker directory", err)
		}
	}
	if err := a.lock.Lock(); err != nil {
		return services.Wrap(services.ErrIO, "sku", "lock tracker", "acquire tracker lock", err)
	}
	return nil
}

func (a *Allocator) unlockFile() {
	_ = a.lock.Unlock()
}

func (a *Allocator) readTracker() (int, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, services.Wrap(services.ErrIO, "sku", "read tracker", a.path, err)
	}
	var t tracker
	if err := json.Unmarshal(data, &t); err != nil {
		return 0, services.Wrap(services.ErrIO, "sku", "parse tracker", a.path, err)
	}
	if t.LastSKU < 0 {
		return 0, nil
	}
	return t.LastSKU, nil
}

func (a *Allocator) writeTracker(last int) error {
	data, err := json.MarshalIndent(tracker{LastSKU: last}, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrIO, "sku", "encode tracker", a.path, err)
	}
	if err := fileutil.WriteFileAtomic(a.path, append(data, '\n'), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "sku", "write tracker", a.path, err)
	}
	return nil
}
