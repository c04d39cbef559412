// Package fferr defines the error taxonomy shared by the upstream clients and
// the aggregation core. Callers branch on these sentinels with errors.Is; the
// concrete cause travels alongside via %w wrapping.
package fferr

import "errors"

var (
	// ErrTransport covers network and HTTP-level failures talking to a platform.
	ErrTransport = errors.New("transport failure")

	// ErrAuthentication means the stored credential was rejected or expired.
	ErrAuthentication = errors.New("authentication failure")

	// ErrDecoding means an upstream payload did not match its expected shape.
	ErrDecoding = errors.New("decoding failure")

	// ErrNotFound covers missing leagues, drafts, and player directory entries.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported means the platform does not support the requested query,
	// e.g. username lookup on ESPN.
	ErrUnsupported = errors.New("operation not supported")
)
