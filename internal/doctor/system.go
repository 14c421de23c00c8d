package doctor

import (
	"context"
	"errors"
	"net"
	"os/exec"
	"strings"
	"time"
)

// SystemOptions configures the real collaborators.
type SystemOptions struct {
	// ContainerRuntime is the CLI queried for service status (default: docker).
	ContainerRuntime string
	// CommandTimeout bounds each subprocess; zero means no limit.
	CommandTimeout time.Duration
	// DialTimeout bounds each TCP connect; zero means DefaultDialTimeout.
	DialTimeout time.Duration
}

// SystemProbes returns collaborators backed by the operating system.
func SystemProbes(opts SystemOptions) Probes {
	runtimeBin := opts.ContainerRuntime
	if runtimeBin == "" {
		runtimeBin = "docker"
	}
	runner := execRunner{timeout: opts.CommandTimeout}
	return Probes{
		Paths:       execPathFinder{},
		Commands:    runner,
		Containers:  cliRuntime{binary: runtimeBin, runner: runner},
		Net:         netDialer{},
		Disk:        statDisk{},
		Memory:      procMemory{},
		DialTimeout: opts.DialTimeout,
	}
}

type execPathFinder struct{}

func (execPathFinder) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

type execRunner struct {
	timeout time.Duration
}

func (r execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return exec.CommandContext(ctx, name, args...).Output()
}

// cliRuntime queries a docker-compatible CLI:
//
//	docker ps --filter name=<service> --format {{.Status}}
type cliRuntime struct {
	binary string
	runner CommandRunner
}

func (c cliRuntime) Statuses(ctx context.Context, name string) ([]string, error) {
	out, err := c.runner.Output(ctx, c.binary, "ps", "--filter", "name="+name, "--format", "{{.Status}}")
	if err != nil {
		// A non-zero exit (daemon down, bad filter) still yields whatever was
		// printed; only a failure to start the CLI is an error.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
	}
	return parseStatusLines(string(out)), nil
}

func parseStatusLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

type netDialer struct{}

func (netDialer) Dial(ctx context.Context, address string, timeout time.Duration) error {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	return conn.Close()
}
