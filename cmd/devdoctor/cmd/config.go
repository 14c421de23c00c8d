package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/devdoctor/configs"
	"github.com/Aman-CERP/devdoctor/internal/config"
	derrors "github.com/Aman-CERP/devdoctor/internal/errors"
	"github.com/Aman-CERP/devdoctor/internal/output"
	"github.com/Aman-CERP/devdoctor/internal/ui"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage devdoctor configuration",
		Long: `Manage the check tables and thresholds devdoctor uses.

Configuration precedence (lowest to highest):
  1. Built-in defaults
  2. User config (~/.config/devdoctor/config.yaml)
  3. Project config (.devdoctor.yaml) or --config
  4. Environment variables (DEVDOCTOR_*)`,
		Example: `  # Create user config from template
  devdoctor config init

  # Create a project config with the full check tables
  devdoctor config init --project

  # Show effective configuration
  devdoctor config show

  # Print user config file path
  devdoctor config path`,
	}

	cmd.AddCommand(newConfigInitCmd(opts))
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from a template",
		Long: `Create a configuration file from the embedded template.

Without flags the user config is created at ~/.config/devdoctor/config.yaml
(or $XDG_CONFIG_HOME/devdoctor/config.yaml). With --project a .devdoctor.yaml
listing every tool, service, and host is created in the current directory.

An existing file is kept unless --force is given, in which case it is
backed up first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, opts, force, project)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (a backup is kept)")
	cmd.Flags().BoolVar(&project, "project", false, "Create .devdoctor.yaml in the current directory")

	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the configuration after merging all sources.

Use --source to inspect a single layer: defaults, user, or project.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, opts, jsonOutput, source)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, user, project, defaults")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func runConfigInit(cmd *cobra.Command, opts *rootOptions, force, project bool) error {
	out := output.New(cmd.OutOrStdout(), ui.StylesFor(cmd.OutOrStdout(), opts.noColor))

	dir := config.GetUserConfigDir()
	path := config.GetUserConfigPath()
	template := configs.UserConfigTemplate
	if project {
		wd, err := os.Getwd()
		if err != nil {
			return derrors.InternalError("failed to get current directory", err)
		}
		dir = wd
		path = filepath.Join(wd, ".devdoctor.yaml")
		template = configs.ProjectConfigTemplate
	}

	if _, err := os.Stat(path); err == nil {
		if !force {
			out.Warning("Configuration already exists")
			out.Statusf("📁", "Location: %s", path)
			return derrors.New(derrors.ErrCodeConfigExists,
				fmt.Sprintf("config file already exists: %s", path), nil).
				WithSuggestion("Use --force to overwrite it (a backup is kept)")
		}

		backup, err := config.BackupFile(path)
		if err != nil {
			return derrors.IOError("failed to back up existing config", err).WithDetail("path", path)
		}
		out.Statusf("💾", "Backup: %s", backup)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return derrors.IOError("failed to create config directory", err).WithDetail("dir", dir)
	}
	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return derrors.IOError("failed to write config file", err).WithDetail("path", path)
	}

	out.Success("Created configuration")
	out.Statusf("📁", "Location: %s", path)
	out.Newline()
	out.Status("📋", "Next steps:")
	out.Status("", "  1. Edit the file to match your project's toolchain")
	out.Status("", "  2. Run 'devdoctor config show' to verify")

	return nil
}

func runConfigShow(cmd *cobra.Command, opts *rootOptions, jsonOutput bool, source string) error {
	out := output.New(cmd.ErrOrStderr(), ui.StylesFor(cmd.ErrOrStderr(), opts.noColor))

	wd, err := os.Getwd()
	if err != nil {
		return derrors.InternalError("failed to get current directory", err)
	}

	var cfg *config.Config
	switch source {
	case "merged":
		cfg, err = config.Load(wd, opts.configPath)
	case "defaults":
		cfg = config.NewConfig()
	case "user":
		path := config.GetUserConfigPath()
		if !config.UserConfigExists() {
			out.Warning("No user configuration file found")
			out.Statusf("📁", "Expected at: %s", path)
			out.Status("💡", "Run 'devdoctor config init' to create one")
			return nil
		}
		cfg, err = config.LoadFile(path)
	case "project":
		path := opts.configPath
		if path == "" {
			path = config.ProjectConfigPath(wd)
		}
		if path == "" {
			out.Warning("No project configuration file found")
			out.Statusf("📁", "Expected at: %s", filepath.Join(wd, ".devdoctor.yaml"))
			out.Status("💡", "Run 'devdoctor config init --project' to create one")
			return nil
		}
		cfg, err = config.LoadFile(path)
	default:
		return derrors.ValidationError(fmt.Sprintf("unknown config source %q", source), nil).
			WithSuggestion("Use one of: merged, user, project, defaults")
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := cfg.JSON()
		if err != nil {
			return derrors.InternalError("failed to encode config", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return derrors.InternalError("failed to encode config", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
