// Package store locates and enumerates artwork folders across the
// processed and finalised roots and owns the folder-level file layout.
package store
