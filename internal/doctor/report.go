package doctor

import (
	"fmt"
)

// Severity classifies a Finding.
type Severity int

const (
	// SeverityIssue is a blocking problem; any issue fails the run.
	SeverityIssue Severity = iota
	// SeverityWarning is advisory and never affects the exit status.
	SeverityWarning
	// SeveritySuggestion is remediation text shown alongside issues and warnings.
	SeveritySuggestion
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityIssue:
		return "issue"
	case SeverityWarning:
		return "warning"
	case SeveritySuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name written by MarshalText.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "issue":
		*s = SeverityIssue
	case "warning":
		*s = SeverityWarning
	case "suggestion":
		*s = SeveritySuggestion
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}

// Finding is a single line of diagnostic output.
type Finding struct {
	Severity Severity `json:"severity"`
	// Check identifies the producer, e.g. "command:git" or "disk".
	Check   string `json:"check"`
	Message string `json:"message"`
}

// Findings is an ordered list of findings from one or more checks.
type Findings []Finding

func issuef(check, format string, args ...any) Finding {
	return Finding{Severity: SeverityIssue, Check: check, Message: fmt.Sprintf(format, args...)}
}

func warningf(check, format string, args ...any) Finding {
	return Finding{Severity: SeverityWarning, Check: check, Message: fmt.Sprintf(format, args...)}
}

func suggestionf(check, format string, args ...any) Finding {
	return Finding{Severity: SeveritySuggestion, Check: check, Message: fmt.Sprintf(format, args...)}
}

// Count returns how many findings have the given severity.
func (f Findings) Count(s Severity) int {
	n := 0
	for _, finding := range f {
		if finding.Severity == s {
			n++
		}
	}
	return n
}

// Report accumulates findings in insertion order.
// Entries are never removed or deduplicated.
type Report struct {
	Issues      []string `json:"issues"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
	Findings    Findings `json:"findings"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{
		Issues:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
		Findings:    Findings{},
	}
}

// Add appends findings to the matching buckets.
func (r *Report) Add(findings ...Finding) {
	for _, f := range findings {
		switch f.Severity {
		case SeverityIssue:
			r.Issues = append(r.Issues, f.Message)
		case SeverityWarning:
			r.Warnings = append(r.Warnings, f.Message)
		case SeveritySuggestion:
			r.Suggestions = append(r.Suggestions, f.Message)
		default:
			continue
		}
		r.Findings = append(r.Findings, f)
	}
}

// Passed reports whether no issue was recorded.
func (r *Report) Passed() bool {
	return len(r.Issues) == 0
}

// Clean reports whether there are neither issues nor warnings.
func (r *Report) Clean() bool {
	return len(r.Issues) == 0 && len(r.Warnings) == 0
}

// Status returns a summary string for machine-readable output.
func (r *Report) Status() string {
	switch {
	case !r.Passed():
		return "failed"
	case len(r.Warnings) > 0:
		return "passed_with_warnings"
	default:
		return "passed"
	}
}
