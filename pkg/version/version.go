package version

// Injected at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)
