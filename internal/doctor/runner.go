package doctor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Aman-CERP/devdoctor/internal/config"
)

// Runner executes every configured check in a fixed order.
type Runner struct {
	cfg     *config.Config
	probes  Probes
	verbose bool
	output  io.Writer
	workDir string
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithVerbose enables "-> ..." progress lines.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) {
		r.verbose = verbose
	}
}

// WithOutput sets the writer for progress lines.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.output = w
	}
}

// WithProbes replaces the OS collaborators.
func WithProbes(p Probes) Option {
	return func(r *Runner) {
		r.probes = p
	}
}

// WithWorkDir sets the directory whose filesystem is checked for free space.
func WithWorkDir(dir string) Option {
	return func(r *Runner) {
		r.workDir = dir
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New creates a Runner for cfg. Without WithProbes it uses SystemProbes.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		output: os.Stdout,
		logger: slog.Default(),
		probes: SystemProbes(SystemOptions{
			ContainerRuntime: cfg.Checks.ContainerRuntime,
			CommandTimeout:   cfg.CommandTimeoutDuration(),
			DialTimeout:      cfg.DialTimeoutDuration(),
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes all checks and returns the populated report. Every check runs
// regardless of earlier results.
func (r *Runner) Run(ctx context.Context) *Report {
	report := NewReport()
	probes := r.probes
	probes.Progress = r.progress

	r.progress("Starting core tool checks...")
	for _, tool := range r.cfg.Tools {
		r.progress("Checking command: %s", tool.Name)
		_, findings := CheckCommand(ctx, probes, tool)
		r.record(report, "command", tool.Name, findings)
	}

	r.progress("Checking Docker services...")
	for _, svc := range r.cfg.Services {
		r.progress("Checking Docker service: %s on port %d", svc.Name, svc.Port)
		ok, findings := CheckService(ctx, probes, svc)
		if !ok && svc.DocsURL != "" {
			findings = append(findings, suggestionf("service:"+svc.Name, "Service docs: %s", svc.DocsURL))
		}
		r.record(report, "service", svc.Name, findings)
	}

	r.progress("Performing system checks...")
	dir := r.workingDir()
	r.progress("Checking disk space for %s", dir)
	r.record(report, "disk", dir, CheckDisk(ctx, probes, dir, r.cfg.Resources.MinDiskGB))

	if r.cfg.Resources.CheckMemory {
		r.progress("Checking available memory")
		r.record(report, "memory", "system", CheckMemory(ctx, probes, r.cfg.Resources.MinMemoryGB))
	}

	r.progress("Checking network connectivity")
	r.record(report, "network", fmt.Sprintf("%d hosts", len(r.cfg.Hosts)), CheckNetwork(ctx, probes, r.cfg.Hosts))

	r.logger.Debug("checks complete",
		slog.Int("issues", len(report.Issues)),
		slog.Int("warnings", len(report.Warnings)),
		slog.Int("suggestions", len(report.Suggestions)),
		slog.String("status", report.Status()))

	return report
}

func (r *Runner) record(report *Report, kind, target string, findings Findings) {
	report.Add(findings...)
	r.logger.Debug("check finished",
		slog.String("check", kind),
		slog.String("target", target),
		slog.Int("issues", findings.Count(SeverityIssue)),
		slog.Int("warnings", findings.Count(SeverityWarning)))
}

func (r *Runner) workingDir() string {
	if r.workDir != "" {
		return r.workDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (r *Runner) progress(format string, args ...any) {
	if !r.verbose {
		return
	}
	_, _ = fmt.Fprintf(r.output, "-> "+format+"\n", args...)
}
