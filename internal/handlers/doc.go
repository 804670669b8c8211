// Package handlers provides the HTTP API of a gallery session.
//
// Every handler works on one [session.Session]. Gallery commands return the
// resulting session state as JSON, and domain errors map to status codes:
// invalid input is 400, a missing gallery or closed carousel is 409, a failed
// ingestion is 422 and a closed session is 503.
//
// Render handles are served by [Handlers.GetBlob] to loopback clients only.
package handlers
