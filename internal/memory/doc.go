// Package memory manages the Go heap budget of the gallery.
//
// A loaded gallery holds every file's bytes in memory, so the process size
// tracks the size of the chosen directory. Two pieces keep that in check:
//
//   - [ConfigureFromEnv] sets GOMEMLIMIT from MEMORY_LIMIT and MEMORY_RATIO
//     (Kubernetes Downward API style) unless GOMEMLIMIT is already set.
//   - [Monitor] samples heap usage and, above the critical water mark,
//     holds ingestion at [Monitor.Wait] until usage drops below the resume
//     water mark.
//
// Typical wiring:
//
//	memory.ConfigureFromEnv()
//	mon := memory.NewMonitor(memory.DefaultConfig())
//	mon.Start()
//	defer mon.Stop()
//	ing := ingest.Ingestor{Gate: mon}
package memory
