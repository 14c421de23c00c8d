package doctor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/Aman-CERP/devdoctor/internal/config"
)

// VersionMatcher decides whether `--version` output satisfies a wanted version.
type VersionMatcher interface {
	Match(output, want string) (bool, error)
}

// VersionMatcherFunc adapts a function to VersionMatcher.
type VersionMatcherFunc func(output, want string) (bool, error)

// Match implements VersionMatcher.
func (f VersionMatcherFunc) Match(output, want string) (bool, error) {
	return f(output, want)
}

// MatcherFor returns the matcher registered under name.
// An empty name selects substring matching.
func MatcherFor(name string) (VersionMatcher, error) {
	switch strings.ToLower(name) {
	case "", config.MatchSubstring:
		return VersionMatcherFunc(matchSubstring), nil
	case config.MatchExact:
		return VersionMatcherFunc(matchExact), nil
	case config.MatchSemver:
		return VersionMatcherFunc(matchSemver), nil
	case config.MatchRegex:
		return VersionMatcherFunc(matchRegex), nil
	default:
		return nil, fmt.Errorf("unknown version matcher %q", name)
	}
}

// matchSubstring is a literal substring test. It does not parse versions:
// "9.0" matches "19.0.1" and "3.15" rejects "3.22.1".
func matchSubstring(output, want string) (bool, error) {
	return strings.Contains(output, want), nil
}

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// extractVersion returns the first dotted version number in s.
func extractVersion(s string) (string, bool) {
	m := versionPattern.FindString(s)
	return m, m != ""
}

// canonical converts "3.15" or "v18.17.0" into a semver string like "v3.15.0".
func canonical(s string) (string, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("no version number in %q", strings.TrimSpace(s))
	}
	parts := make([]string, 3)
	for i := range parts {
		n := 0
		if m[i+1] != "" {
			var err error
			if n, err = strconv.Atoi(m[i+1]); err != nil {
				return "", fmt.Errorf("parse version %q: %w", m[0], err)
			}
		}
		parts[i] = strconv.Itoa(n)
	}
	v := "v" + strings.Join(parts, ".")
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid version %q", m[0])
	}
	return v, nil
}

func matchExact(output, want string) (bool, error) {
	found, ok := extractVersion(output)
	if !ok {
		return false, fmt.Errorf("no version number in %q", strings.TrimSpace(output))
	}
	return found == strings.TrimPrefix(strings.TrimSpace(want), "v"), nil
}

// matchSemver reports whether the first version in output is >= want.
func matchSemver(output, want string) (bool, error) {
	have, err := canonical(output)
	if err != nil {
		return false, err
	}
	floor, err := canonical(want)
	if err != nil {
		return false, err
	}
	return semver.Compare(have, floor) >= 0, nil
}

func matchRegex(output, want string) (bool, error) {
	re, err := regexp.Compile(want)
	if err != nil {
		return false, fmt.Errorf("bad version pattern: %w", err)
	}
	return re.MatchString(output), nil
}
