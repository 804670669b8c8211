/*
Package workers sizes worker pools from the CPUs actually available to the
process.

runtime.NumCPU reports the host's CPUs even inside a container with a CPU
limit. GOMAXPROCS follows the cgroup limit since Go 1.19, so the helpers here
scale from it instead.

Ingestion reads file contents concurrently; it asks for an I/O-bound pool:

	ing := ingest.Ingestor{Workers: workers.ForIO(8)}

Operators can pin the count with INGEST_WORKERS:

	INGEST_WORKERS=2 media-gallery
*/
package workers
