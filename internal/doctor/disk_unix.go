//go:build linux || darwin || freebsd

package doctor

import (
	"golang.org/x/sys/unix"
)

type statDisk struct{}

// FreeBytes returns blocks available to unprivileged users times block size.
func (statDisk) FreeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
