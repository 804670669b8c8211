// Package middleware provides HTTP middleware for the gallery API.
//
// It includes:
//   - Structured request logging through the "http" component logger
//   - Prometheus request metrics with bounded path labels
//   - Configurable filtering for health checks and blob requests
package middleware
