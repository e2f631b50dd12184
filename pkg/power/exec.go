package power

import (
	"context"
	"os/exec"
)

// runCommand is the exec hook used by the utility-based backends, so
// tests can substitute canned output.
type runCommand func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCmd(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
