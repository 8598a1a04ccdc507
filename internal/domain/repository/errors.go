package repository

import "errors"

// Sentinel error kinds surfaced by the core. Everything else degrades to a
// default-filled sub-report instead of failing the request.
var (
	// ErrInvalidParameter marks an unsupported caller-supplied parameter
	// combination; fatal to the whole request.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUpstreamFetch marks a data-supplier failure after retries; fatal for
	// the primary fetch, skippable for benchmark and horizon fetches.
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrNoData marks an empty supplier response for a symbol.
	ErrNoData = errors.New("no data for symbol")
)
