package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/devdoctor/internal/config"
	"github.com/Aman-CERP/devdoctor/internal/ui"
)

// Title is printed once before any check runs.
const Title = "=== Development Environment Check ==="

// SuccessLine is the only output of a run without issues or warnings.
const SuccessLine = "✅ All checks passed!"

// PrintHeader writes the run title.
func PrintHeader(w io.Writer, styles ui.Styles) {
	_, _ = fmt.Fprintf(w, "\n%s\n\n", styles.Title.Render(Title))
}

// PrintReport writes the report sections in order: issues, warnings,
// suggestions, help links. A report with neither issues nor warnings prints
// a single success line.
func PrintReport(w io.Writer, report *Report, links []config.HelpLink, styles ui.Styles) {
	if report.Clean() {
		_, _ = fmt.Fprintln(w, styles.Success.Render(SuccessLine))
		return
	}

	if len(report.Issues) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", styles.Header.Render("🚨 Issues Found:"))
		for _, msg := range report.Issues {
			_, _ = fmt.Fprintf(w, "  %s\n", styles.Issue.Render("❌ "+msg))
		}
	}

	if len(report.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", styles.Header.Render("⚠️ Warnings:"))
		for _, msg := range report.Warnings {
			_, _ = fmt.Fprintf(w, "  %s\n", styles.Warning.Render("⚠️ "+msg))
		}
	}

	if len(report.Suggestions) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", styles.Header.Render("💡 Suggestions:"))
		for _, msg := range report.Suggestions {
			_, _ = fmt.Fprintf(w, "  %s\n", styles.Suggestion.Render(suggestionIcon(msg)+" "+msg))
		}
	}

	if len(links) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", styles.Header.Render("📚 For more help:"))
		for _, l := range links {
			_, _ = fmt.Fprintf(w, "  - %s: %s\n", l.Title, styles.Link.Render(l.URL))
		}
	}
}

func suggestionIcon(msg string) string {
	if strings.HasPrefix(msg, "Search:") {
		return "🔍"
	}
	return "📝"
}
