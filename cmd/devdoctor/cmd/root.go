// Package cmd provides the CLI commands for devdoctor.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/devdoctor/internal/config"
	"github.com/Aman-CERP/devdoctor/internal/doctor"
	derrors "github.com/Aman-CERP/devdoctor/internal/errors"
	"github.com/Aman-CERP/devdoctor/internal/logging"
	"github.com/Aman-CERP/devdoctor/internal/ui"
	"github.com/Aman-CERP/devdoctor/pkg/version"
)

// ErrChecksFailed is returned when at least one check reported an issue.
var ErrChecksFailed = derrors.New(derrors.ErrCodeChecksFailed, "one or more checks reported issues", nil)

// newRunner is swapped in tests to inject fake probes.
var newRunner = doctor.New

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
	noColor    bool
	debug      bool
}

// NewRootCmd creates the root command for the devdoctor CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var (
		verbose    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "devdoctor",
		Short: "Check that a developer machine is ready to build and run the project",
		Long: `devdoctor inspects the local machine and reports what is missing or unhealthy:

  - Required tools on PATH and their versions
  - Docker services running with their ports open on localhost
  - Free disk space (and optionally available memory)
  - Outbound connectivity to package registries and code hosts

Every check runs; the report lists Issues, Warnings, and Suggestions.
The exit status is 0 when there are no issues and 1 otherwise.
Warnings never affect the exit status.`,
		Example: `  # Run all checks
  devdoctor

  # Show each check as it runs
  devdoctor -v

  # Machine-readable report
  devdoctor --json

  # Use a specific check table
  devdoctor --config ./ci/devdoctor.yaml`,
		Version:       version.Short(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts, verbose, jsonOutput)
		},
	}

	cmd.SetVersionTemplate("devdoctor version {{.Version}}\n")

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print each check as it runs")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (default: .devdoctor.yaml in the current directory)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.devdoctor/logs/")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// Execute runs the root command, writes any failure to stderr, and returns
// the process exit code.
func Execute() int {
	return executeRoot(NewRootCmd(), os.Stderr)
}

func executeRoot(root *cobra.Command, stderr io.Writer) int {
	c, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	// The report already explains failed checks.
	if !errors.Is(err, ErrChecksFailed) {
		writeError(stderr, c, err)
	}
	return 1
}

// writeError keeps --json runs machine-readable when the run itself fails.
func writeError(w io.Writer, c *cobra.Command, err error) {
	if asJSON, _ := c.Flags().GetBool("json"); asJSON {
		if data, jerr := derrors.FormatJSON(err); jerr == nil {
			fmt.Fprintln(w, string(data))
			return
		}
	}
	fmt.Fprint(w, derrors.FormatForCLI(err))
}

func runDoctor(cmd *cobra.Command, opts *rootOptions, verbose, jsonOutput bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wd, err := os.Getwd()
	if err != nil {
		return derrors.InternalError("failed to get current directory", err)
	}

	cfg, err := config.Load(wd, opts.configPath)
	if err != nil {
		return err
	}

	logger, cleanup := setupLogging(cfg, opts.debug)
	defer cleanup()

	out := cmd.OutOrStdout()
	styles := ui.StylesFor(out, opts.noColor)

	// Progress lines would corrupt JSON on stdout.
	progress := out
	if jsonOutput {
		progress = cmd.ErrOrStderr()
	}

	runner := newRunner(cfg,
		doctor.WithVerbose(verbose),
		doctor.WithOutput(progress),
		doctor.WithWorkDir(wd),
		doctor.WithLogger(logger),
	)

	if !jsonOutput {
		doctor.PrintHeader(out, styles)
	}

	start := time.Now()
	report := runner.Run(ctx)
	logger.Info("run finished",
		slog.String("status", report.Status()),
		slog.Int("issues", len(report.Issues)),
		slog.Int("warnings", len(report.Warnings)),
		slog.Duration("elapsed", time.Since(start)))

	if jsonOutput {
		if err := writeJSONReport(out, report, cfg.HelpLinks); err != nil {
			return err
		}
	} else {
		doctor.PrintReport(out, report, cfg.HelpLinks, styles)
	}

	stateDir := doctor.DefaultStateDir()
	if !report.Passed() {
		if err := doctor.ClearMarker(stateDir); err != nil {
			logger.Warn("failed to clear marker", slog.String("error", err.Error()))
		}
		return ErrChecksFailed
	}

	if verbose && !jsonOutput {
		if age := doctor.MarkerAge(stateDir); age > 0 {
			_, _ = fmt.Fprintf(out, "\nLast successful check: %s ago\n", formatDuration(age))
		}
	}
	if err := doctor.MarkPassed(stateDir); err != nil {
		// The marker is informational; a failed write must not fail the run.
		logger.Warn("failed to write marker", slog.Any("error", derrors.FormatForLog(err)))
	}

	return nil
}

// setupLogging returns a file logger at the configured level, or at debug
// level when --debug is set. On failure records are discarded.
func setupLogging(cfg *config.Config, debug bool) (*slog.Logger, func()) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	if debug {
		logCfg = logging.DebugConfig()
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return logging.Discard(), func() {}
	}
	logger = logger.With(slog.String("version", version.Short()))
	slog.SetDefault(logger)
	if debug {
		logger.Debug("debug logging enabled", slog.String("log_file", logCfg.FilePath))
	}
	return logger, cleanup
}

// jsonReport is the --json output document.
type jsonReport struct {
	Status      string            `json:"status"`
	Passed      bool              `json:"passed"`
	Issues      []string          `json:"issues"`
	Warnings    []string          `json:"warnings"`
	Suggestions []string          `json:"suggestions"`
	Findings    doctor.Findings   `json:"findings"`
	HelpLinks   []config.HelpLink `json:"help_links,omitempty"`
}

func writeJSONReport(w io.Writer, report *doctor.Report, links []config.HelpLink) error {
	doc := jsonReport{
		Status:      report.Status(),
		Passed:      report.Passed(),
		Issues:      report.Issues,
		Warnings:    report.Warnings,
		Suggestions: report.Suggestions,
		Findings:    report.Findings,
	}
	if !report.Clean() {
		doc.HelpLinks = links
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "less than a minute"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
