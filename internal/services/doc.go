// Package services defines the shared error taxonomy and the helper used to
// run external tool processes with timeouts and output capture. Tool
// specific clients live in subpackages.
package services
