//go:build linux

package doctor

import (
	"os"
)

type procMemory struct{}

func (procMemory) AvailableBytes() (uint64, error) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0, err
	}
	return parseMemAvailable(data)
}
