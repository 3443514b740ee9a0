package sku

import (
	"fmt"
	"sort"
	"strings"
)

// AuditEntry names one artwork and the SKU it carries.
type AuditEntry struct {
	Source string
	SKU    string
}

// AuditReport summarizes SKU health across the gallery.
type AuditReport struct {
	// Problems lists human-readable findings in a stable order.
	Problems []string
	// MaxAssigned is the highest sequence number seen on disk.
	MaxAssigned int
	// TrackerBehind is set when an artwork carries a higher sequence
	// number than the tracker has recorded.
	TrackerBehind bool
}

// OK reports whether the audit found no problems.
func (r AuditReport) OK() bool {
	return len(r.Problems) == 0
}

// Audit checks every entry for format problems, duplicates, and sequence
// gaps, and compares the highest assigned number against the tracker.
func (a *Allocator) Audit(entries []AuditEntry) (AuditReport, error) {
	var report AuditReport

	seen := map[int][]string{}
	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry.SKU)
		if trimmed == "" {
			report.Problems = append(report.Problems, fmt.Sprintf("%s: missing SKU", entry.Source))
			continue
		}
		n, ok := Parse(trimmed)
		if !ok {
			report.Problems = append(report.Problems, fmt.Sprintf("%s: invalid SKU %q", entry.Source, trimmed))
			continue
		}
		seen[n] = append(seen[n], entry.Source)
		if n > report.MaxAssigned {
			report.MaxAssigned = n
		}
	}

	numbers := make([]int, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		if sources := seen[n]; len(sources) > 1 {
			sort.Strings(sources)
			report.Problems = append(report.Problems,
				fmt.Sprintf("duplicate SKU %s held by %s", Format(n), strings.Join(sources, ", ")))
		}
	}

	for i := 1; i < len(numbers); i++ {
		prev, cur := numbers[i-1], numbers[i]
		if cur > prev+1 {
			report.Problems = append(report.Problems,
				fmt.Sprintf("sequence gap between %s and %s", Format(prev), Format(cur)))
		}
	}

	last, err := a.readTrackerLocked()
	if err != nil {
		return report, err
	}
	if report.MaxAssigned > last {
		report.TrackerBehind = true
		report.Problems = append(report.Problems,
			fmt.Sprintf("tracker records %d but %s is already assigned", last, Format(report.MaxAssigned)))
	}

	return report, nil
}

func (a *Allocator) readTrackerLocked() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.readTracker()
}
