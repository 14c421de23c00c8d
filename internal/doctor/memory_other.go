//go:build !linux

package doctor

import (
	"fmt"
	"runtime"
)

type procMemory struct{}

func (procMemory) AvailableBytes() (uint64, error) {
	return 0, fmt.Errorf("memory check not supported on %s", runtime.GOOS)
}
