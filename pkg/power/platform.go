package power

import (
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/host"
)

var (
	platformOnce sync.Once
	platformID   string
)

// CurrentPlatform returns the OS identifier used for backend
// selection. Detection is idempotent and side-effect free, so the
// result is memoized for the life of the process.
func CurrentPlatform() string {
	platformOnce.Do(func() {
		platformID = runtime.GOOS
		if info, err := host.Info(); err == nil && info.OS != "" {
			platformID = info.OS
		}
	})
	return platformID
}
