package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/devdoctor/internal/config"
)

func TestMatcherFor(t *testing.T) {
	for _, name := range []string{"", "substring", "exact", "semver", "regex", "SEMVER"} {
		m, err := MatcherFor(name)
		require.NoError(t, err, name)
		assert.NotNil(t, m, name)
	}

	_, err := MatcherFor("fuzzy")
	assert.Error(t, err)
}

func TestSubstringMatcher_KeepsNaiveSemantics(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		match  bool
	}{
		{"exact token present", "cmake version 3.15.7", "3.15", true},
		{"older version rejected", "cmake version 3.14.2", "3.15", false},
		{"newer version also rejected", "cmake version 3.22.1", "3.15", false},
		{"false positive inside larger number", "gcc (GCC) 19.0.1", "9.0", true},
		{"node prefix", "v14.0.0", "14.0", true},
	}

	m, err := MatcherFor(config.MatchSubstring)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := m.Match(tt.output, tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.match, ok)
		})
	}
}

func TestSemverMatcher(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		match   bool
		wantErr bool
	}{
		{"newer minor passes", "cmake version 3.22.1", "3.15", true, false},
		{"older minor fails", "cmake version 3.14.2", "3.15", false, false},
		{"equal passes", "Python 3.8.0", "3.8", true, false},
		{"major comparison is numeric", "gcc (GCC) 19.0.1", "9.0", true, false},
		{"v-prefixed output", "v18.17.0", "14.0", true, false},
		{"leading zeros normalised", "tool 03.015.0", "3.15", true, false},
		{"four components truncated", "docker-compose version 1.29.2.1", "1.29", true, false},
		{"no version in output", "command not understood", "1.0", false, true},
		{"bad wanted version", "git version 2.39.2", "latest", false, true},
	}

	m, err := MatcherFor(config.MatchSemver)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := m.Match(tt.output, tt.want)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.match, ok)
		})
	}
}

func TestExactMatcher(t *testing.T) {
	m, err := MatcherFor(config.MatchExact)
	require.NoError(t, err)

	ok, err := m.Match("git version 2.39.2", "2.39.2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match("git version 2.39.2", "v2.39.2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match("git version 2.39.2", "2.39")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.Match("no digits here", "1.0")
	assert.Error(t, err)
}

func TestRegexMatcher(t *testing.T) {
	m, err := MatcherFor(config.MatchRegex)
	require.NoError(t, err)

	ok, err := m.Match("node v20.11.0", `v(1[89]|2\d)\.`)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match("node v16.20.0", `v(1[89]|2\d)\.`)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.Match("anything", "([")
	assert.Error(t, err)
}

func TestVersionMatcherFunc(t *testing.T) {
	var m VersionMatcher = VersionMatcherFunc(func(output, want string) (bool, error) {
		return output == want, nil
	})

	ok, err := m.Match("a", "a")
	require.NoError(t, err)
	assert.True(t, ok)
}
