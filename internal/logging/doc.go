// Package logging provides a simple leveled logging interface for the
// media gallery, backed by zerolog.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable, or
// DEBUG=true. Component returns a structured logger for packages that want
// key/value fields instead of printf-style messages.
package logging
