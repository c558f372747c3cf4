// Package ingestion provides batch orchestration for video ingestion.
//
// The Ingestor type manages the ingestion workflow for a batch of
// video identifiers, including:
//   - Fetching transcripts through the transcript boundary
//   - Extracting recommended places from each transcript
//   - Appending the results to the session store
//
// Videos are processed concurrently using a worker pool. Per-video
// failures are contained and reported alongside successes rather than
// failing the whole batch.
package ingestion
