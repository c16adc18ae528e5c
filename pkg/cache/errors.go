package cache

import "errors"

// Backend failures. Remote backends wrap connection problems in
// [httputil.RetryableError] so the same backoff loop the dataset fetcher
// uses can repeat them.
//
// [httputil.RetryableError]: github.com/matzehuels/nestview/pkg/httputil.RetryableError
var (
	// ErrNetwork is returned when a remote backend cannot be reached.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("cache closed")
)
