package doctor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/Aman-CERP/devdoctor/internal/config"
)

type fakePaths struct {
	missing map[string]bool
}

func (f *fakePaths) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

type fakeCommands struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeCommands) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, name)
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return []byte(f.outputs[name]), nil
}

type fakeContainers struct {
	statuses map[string][]string
	errs     map[string]error
	calls    []string
}

func (f *fakeContainers) Statuses(_ context.Context, name string) ([]string, error) {
	f.calls = append(f.calls, name)
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.statuses[name], nil
}

type fakeDialer struct {
	refused  map[string]bool
	errs     map[string]error
	calls    []string
	timeouts []time.Duration
}

func (f *fakeDialer) Dial(_ context.Context, address string, timeout time.Duration) error {
	f.calls = append(f.calls, address)
	f.timeouts = append(f.timeouts, timeout)
	if err := f.errs[address]; err != nil {
		return err
	}
	if f.refused[address] {
		return fmt.Errorf("dial tcp %s: connect: connection refused", address)
	}
	return nil
}

type fakeDisk struct {
	free uint64
	err  error
	path string
}

func (f *fakeDisk) FreeBytes(path string) (uint64, error) {
	f.path = path
	return f.free, f.err
}

type fakeMemory struct {
	avail uint64
	err   error
}

func (f *fakeMemory) AvailableBytes() (uint64, error) {
	return f.avail, f.err
}

// env bundles fakes describing a fully healthy machine for cfg.
type env struct {
	paths      *fakePaths
	commands   *fakeCommands
	containers *fakeContainers
	dialer     *fakeDialer
	disk       *fakeDisk
	memory     *fakeMemory
}

func healthyEnv(cfg *config.Config) *env {
	e := &env{
		paths:      &fakePaths{missing: map[string]bool{}},
		commands:   &fakeCommands{outputs: map[string]string{}, errs: map[string]error{}},
		containers: &fakeContainers{statuses: map[string][]string{}, errs: map[string]error{}},
		dialer:     &fakeDialer{refused: map[string]bool{}, errs: map[string]error{}},
		disk:       &fakeDisk{free: gb(50)},
		memory:     &fakeMemory{avail: gb(16)},
	}
	for _, t := range cfg.Tools {
		e.commands.outputs[t.Name] = fmt.Sprintf("%s version %s.0\n", t.Name, t.MinVersion)
	}
	for _, s := range cfg.Services {
		e.containers.statuses[s.Name] = []string{"Up 3 hours"}
	}
	return e
}

func (e *env) probes() Probes {
	return Probes{
		Paths:      e.paths,
		Commands:   e.commands,
		Containers: e.containers,
		Net:        e.dialer,
		Disk:       e.disk,
		Memory:     e.memory,
	}
}

func gb(n float64) uint64 {
	return uint64(n * bytesPerGB)
}

var errSpawn = errors.New("exec: \"docker\": executable file not found in $PATH")
