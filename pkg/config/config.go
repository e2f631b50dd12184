package config

import "time"

// Config is the daemon/CLI configuration.
type Config interface {
	// SysfsRoot is the power-supply directory used by the sysfs
	// backend.
	SysfsRoot() string
	// AllowNonRootAccess makes the daemon socket world-accessible.
	AllowNonRootAccess() bool
	// BackendTimeout bounds a single backend query.
	BackendTimeout() time.Duration
	// PreferredBackends reorders a platform family's backends.
	PreferredBackends() map[string][]string

	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
