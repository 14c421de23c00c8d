package doctor

import (
	"context"
	"runtime"
	"strings"

	"github.com/Aman-CERP/devdoctor/internal/config"
)

// hostOS is used in search hints ("how to install X on linux").
var hostOS = runtime.GOOS

// CheckCommand verifies that tool is on PATH and, when a minimum version is
// configured, that its `--version` output satisfies the tool's matcher.
// It reports whether the executable was found.
func CheckCommand(ctx context.Context, p Probes, tool config.ToolSpec) (bool, Findings) {
	check := "command:" + tool.Name
	var findings Findings

	if _, err := p.Paths.LookPath(tool.Name); err != nil {
		findings = append(findings, issuef(check, "%s not found", tool.Name))
		if tool.DocsURL != "" {
			findings = append(findings,
				suggestionf(check, "Install %s: %s", tool.Name, tool.DocsURL),
				suggestionf(check, "Search: 'how to install %s on %s'", tool.Name, hostOS),
			)
		}
		return false, findings
	}

	if tool.MinVersion == "" {
		return true, nil
	}

	out, err := p.Commands.Output(ctx, tool.Name, "--version")
	if err != nil {
		return true, Findings{warningf(check, "Could not determine %s version", tool.Name)}
	}
	text := string(out)
	p.progress("Found %s version: %s", tool.Name, strings.TrimSpace(text))

	matcher, err := MatcherFor(tool.Match)
	if err != nil {
		return true, Findings{warningf(check, "Could not determine %s version: %v", tool.Name, err)}
	}
	ok, err := matcher.Match(text, tool.MinVersion)
	if err != nil {
		return true, Findings{warningf(check, "Could not determine %s version: %v", tool.Name, err)}
	}
	if !ok {
		findings = append(findings, warningf(check, "%s version might be too old (found: %s, want: %s)",
			tool.Name, strings.TrimSpace(text), tool.MinVersion))
		if tool.DocsURL != "" {
			findings = append(findings, suggestionf(check, "Upgrade guide: %s", tool.DocsURL))
		}
	}
	return true, findings
}
