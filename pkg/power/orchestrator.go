package power

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultBackendTimeout bounds a single backend call so one hung
// subprocess or bus call cannot stall the whole query.
const DefaultBackendTimeout = 10 * time.Second

// Attempt records one backend invocation for diagnostics.
type Attempt struct {
	Backend string
	Err     error
}

// Served returns the name of the backend that produced the result, or
// "" if no attempt succeeded.
func Served(attempts []Attempt) string {
	for _, a := range attempts {
		if a.Err == nil {
			return a.Backend
		}
	}
	return ""
}

// Orchestrator tries an ordered list of backends and returns the
// first real report. Backends signal definite failure with an error,
// so "no battery present" (a successful zero report) is never confused
// with "query mechanism broken".
type Orchestrator struct {
	backends []Backend
	timeout  time.Duration
}

func NewOrchestrator(backends []Backend) *Orchestrator {
	return &Orchestrator{
		backends: backends,
		timeout:  DefaultBackendTimeout,
	}
}

// SetTimeout overrides the per-backend call timeout. Zero or negative
// values are ignored.
func (o *Orchestrator) SetTimeout(d time.Duration) {
	if d > 0 {
		o.timeout = d
	}
}

// Query invokes each candidate in order and returns the first
// success, along with the attempt trace. When every backend fails the
// error wraps ErrAllBackendsFailed; individual failures are only
// visible through the trace.
func (o *Orchestrator) Query(ctx context.Context) (*Report, []Attempt, error) {
	var attempts []Attempt

	for _, b := range o.backends {
		qctx, cancel := context.WithTimeout(ctx, o.timeout)
		report, err := b.Query(qctx)
		cancel()

		if err != nil {
			logrus.WithField("backend", b.Name()).Debugf("backend failed: %v", err)
			attempts = append(attempts, Attempt{Backend: b.Name(), Err: err})
			continue
		}

		logrus.WithField("backend", b.Name()).Debug("backend served the query")
		attempts = append(attempts, Attempt{Backend: b.Name()})
		return report, attempts, nil
	}

	return nil, attempts, pkgerrors.Wrapf(ErrAllBackendsFailed, "%d backend(s) attempted", len(attempts))
}
