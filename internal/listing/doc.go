// Package listing defines the artwork listing document, its JSON codec,
// field validation, and the per-listing lock protocol.
package listing
