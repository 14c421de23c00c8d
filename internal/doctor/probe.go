package doctor

import (
	"context"
	"time"
)

// PathFinder resolves executables on PATH.
type PathFinder interface {
	LookPath(name string) (string, error)
}

// CommandRunner runs a program and returns its standard output.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ContainerRuntime lists the status lines of containers whose name matches.
type ContainerRuntime interface {
	Statuses(ctx context.Context, name string) ([]string, error)
}

// Dialer opens and immediately closes a TCP connection.
type Dialer interface {
	Dial(ctx context.Context, address string, timeout time.Duration) error
}

// DiskProbe reports bytes available to the current user on the filesystem
// containing path.
type DiskProbe interface {
	FreeBytes(path string) (uint64, error)
}

// MemoryProbe reports system memory available for new work.
type MemoryProbe interface {
	AvailableBytes() (uint64, error)
}

// Probes bundles every collaborator the checks need.
type Probes struct {
	Paths       PathFinder
	Commands    CommandRunner
	Containers  ContainerRuntime
	Net         Dialer
	Disk        DiskProbe
	Memory      MemoryProbe
	DialTimeout time.Duration
	// Progress receives verbose detail lines from the checks; nil drops them.
	Progress func(format string, args ...any)
}

func (p Probes) progress(format string, args ...any) {
	if p.Progress != nil {
		p.Progress(format, args...)
	}
}

func (p Probes) dialTimeout() time.Duration {
	if p.DialTimeout <= 0 {
		return DefaultDialTimeout
	}
	return p.DialTimeout
}

// DefaultDialTimeout caps every TCP connect attempt.
const DefaultDialTimeout = time.Second
