package power

import (
	"context"

	pkgerrors "github.com/pkg/errors"
)

// Backend is one OS/subsystem-specific strategy for obtaining battery
// data. Query returns a Report, or an error (usually wrapping
// ErrBackendUnavailable) when the data source cannot be used at all.
// "No battery present" is a successful Report, never an error.
type Backend interface {
	Name() string
	Query(ctx context.Context) (*Report, error)
}

// Registry maps a platform family to the ordered list of backends
// that can service it.
type Registry struct {
	families map[string][]Backend
}

func NewRegistry() *Registry {
	return &Registry{families: map[string][]Backend{}}
}

// Register appends backends for a family, keeping declaration order.
func (r *Registry) Register(family string, backends ...Backend) {
	r.families[family] = append(r.families[family], backends...)
}

// BackendsFor resolves a raw platform identifier to its candidate
// backends, most capable first. The identifier is normalized so
// versioned identifiers like "freebsd11" select the same backends as
// their family name.
func (r *Registry) BackendsFor(platform string) ([]Backend, error) {
	family := NormalizePlatform(platform)
	backends := r.families[family]
	if len(backends) == 0 {
		return nil, pkgerrors.Wrapf(ErrUnsupportedPlatform, "no backend for %q (family %q)", platform, family)
	}
	return backends, nil
}

// NormalizePlatform strips the platform identifier at the first digit,
// making selection version-agnostic ("freebsd11" -> "freebsd").
func NormalizePlatform(platform string) string {
	for i := 0; i < len(platform); i++ {
		if platform[i] >= '0' && platform[i] <= '9' {
			return platform[:i]
		}
	}
	return platform
}

// Options tunes the default registry.
type Options struct {
	// SysfsRoot overrides the power-supply class directory. Empty
	// means DefaultSysfsRoot.
	SysfsRoot string

	// Preferred reorders a family's candidates: backends named here
	// are tried first, in the given order. Unknown names are ignored.
	Preferred map[string][]string
}

// DefaultRegistry builds the registry of built-in backends. For the
// linux family UPower is deliberately first: it is the standardized
// daemon interface, with the raw kernel counters in sysfs as the
// fallback when the daemon is unavailable.
func DefaultRegistry(opts Options) *Registry {
	if opts.SysfsRoot == "" {
		opts.SysfsRoot = DefaultSysfsRoot
	}

	r := NewRegistry()
	r.Register("linux", NewUPowerBackend(), NewSysfsBackend(opts.SysfsRoot))
	r.Register("freebsd", NewACPIConfBackend())
	r.Register("openbsd", NewAPMBackend())
	r.Register("darwin", NewPortableBackend())
	r.Register("windows", NewPortableBackend())

	for family, names := range opts.Preferred {
		r.families[family] = reorder(r.families[family], names)
	}

	return r
}

func reorder(backends []Backend, names []string) []Backend {
	if len(backends) == 0 || len(names) == 0 {
		return backends
	}

	byName := map[string]Backend{}
	for _, b := range backends {
		byName[b.Name()] = b
	}

	var out []Backend
	taken := map[string]bool{}
	for _, name := range names {
		if b, ok := byName[name]; ok && !taken[name] {
			out = append(out, b)
			taken[name] = true
		}
	}
	for _, b := range backends {
		if !taken[b.Name()] {
			out = append(out, b)
		}
	}
	return out
}
