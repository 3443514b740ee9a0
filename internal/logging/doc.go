// Package logging provides slog construction and shared attribute helpers.
//
// Loggers are built from the application config: a human-readable console
// handler for interactive use and a JSON handler for machine consumption,
// both optionally teeing into a log file under the configured log
// directory. Component loggers carry a standardized "component" attribute
// that the console handler folds into the message prefix.
package logging
