package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a session store is not provided.
	ErrStoreRequired = errors.New("session store required")

	// ErrFetcherRequired is returned when a transcript fetcher is not provided.
	ErrFetcherRequired = errors.New("transcript fetcher required")

	// ErrExtractorRequired is returned when an extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")
)
