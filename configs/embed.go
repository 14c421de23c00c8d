// Package configs provides embedded configuration templates for devdoctor.
//
// Templates are embedded at build time so `devdoctor config init` works from
// any distribution (go install, release binaries).
//
// Template files:
//   - user-config.example.yaml: machine-wide thresholds and runtime choice
//   - project-config.example.yaml: the full tool, service, and host tables
//
// Configuration hierarchy (see internal/config Load()):
//  1. Hardcoded defaults (config.NewConfig())
//  2. User config (~/.config/devdoctor/config.yaml)
//  3. Project config (.devdoctor.yaml) or --config
//  4. Environment variables (DEVDOCTOR_*)
package configs

import _ "embed"

// UserConfigTemplate is written by `devdoctor config init` to
// ~/.config/devdoctor/config.yaml.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written by `devdoctor config init --project` to
// .devdoctor.yaml in the current directory.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
