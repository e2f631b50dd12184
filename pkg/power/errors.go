package power

import "errors"

var (
	// ErrUnsupportedPlatform means no backend is registered for the
	// current OS family. Callers normally treat this as fatal.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrBackendUnavailable means one backend's required resource (bus,
	// daemon, device file, utility) is missing or broke. The
	// orchestrator moves on to the next candidate.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrAllBackendsFailed means every candidate backend for the
	// platform failed.
	ErrAllBackendsFailed = errors.New("all backends failed")
)
