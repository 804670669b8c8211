/*
Package filesystem provides resilient filesystem operations with automatic retry logic
for NFS stale file handle errors.

# Purpose

Ingestion reads every file of the chosen directory into memory. Galleries often live
on network mounts, where ESTALE (stale file handle) errors show up transiently when
the server side changes. This package wraps os.Stat, os.ReadDir and
os.ReadFile so that those transient errors are retried instead of failing the whole
ingestion.

# Usage

	info, err := filesystem.StatWithRetry("/nfs/photos/beach.jpg", filesystem.DefaultRetryConfig())

	entries, err := filesystem.ReadDirWithRetry("/nfs/photos", filesystem.DefaultRetryConfig())

	data, err := filesystem.ReadFileWithRetry("/nfs/photos/beach.jpg", filesystem.DefaultRetryConfig())

# Retry Behavior

The retry logic implements exponential backoff with the following defaults:
  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

Only NFS stale file handle errors (ESTALE) trigger retries. All other errors
fail immediately without retry attempts.
*/
package filesystem
