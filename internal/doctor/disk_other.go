//go:build !linux && !darwin && !freebsd && !windows

package doctor

import (
	"fmt"
	"runtime"
)

type statDisk struct{}

func (statDisk) FreeBytes(string) (uint64, error) {
	return 0, fmt.Errorf("disk check not supported on %s", runtime.GOOS)
}
