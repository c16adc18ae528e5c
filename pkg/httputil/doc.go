// Package httputil fetches documents over HTTP for hosts that keep their
// container data behind a URL.
//
// # Client
//
// [Client.Get] performs a GET and returns the body, enforcing a size limit.
// Status codes map onto coded errors:
//
//   - 404: NOT_FOUND
//   - 429 and 5xx: retried, then UNREACHABLE
//   - other non-200: INVALID_INPUT
//
// # Retry
//
// [Retry] runs a function with exponential backoff and only repeats errors
// wrapped in [RetryableError]. Network failures and transient status codes
// are wrapped by the client; everything else fails fast.
//
// # Defaults
//
//   - Timeout: 30 seconds per attempt
//   - Attempts: 3, starting at 1 second and doubling
//   - Body limit: 8 MiB
package httputil
