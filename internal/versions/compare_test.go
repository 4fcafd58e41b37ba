package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNewer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate string
		current   string
		expected  bool
	}{
		{name: "newer major version", candidate: "2.0.0", current: "1.0.0", expected: true},
		{name: "newer minor version", candidate: "1.2.0", current: "1.1.0", expected: true},
		{name: "newer patch version", candidate: "1.0.2", current: "1.0.1", expected: true},
		{name: "older version", candidate: "1.0.0", current: "2.0.0", expected: false},
		{name: "equal versions", candidate: "1.0.0", current: "1.0.0", expected: false},
		{name: "release beats prerelease", candidate: "1.0.0", current: "1.0.0-alpha", expected: true},
		{name: "prerelease loses to release", candidate: "1.0.0-alpha", current: "1.0.0", expected: false},
		{name: "newer prerelease", candidate: "1.0.0-beta", current: "1.0.0-alpha", expected: true},
		{name: "non-semver string comparison", candidate: "build-b", current: "build-a", expected: true},
		{name: "non-semver equal", candidate: "custom-v1", current: "custom-v1", expected: false},
		{name: "v prefix", candidate: "v2.0.0", current: "v1.0.0", expected: true},
		{name: "empty candidate", candidate: "", current: "1.0.0", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsNewer(tt.candidate, tt.current))
		})
	}
}

func TestIsPrerelease(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPrerelease("1.0.0-beta.1"))
	assert.False(t, IsPrerelease("1.0.0"))
	assert.False(t, IsPrerelease("not-semver"))
}

func TestLatest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		candidates        []string
		includePrerelease bool
		expected          string
	}{
		{name: "empty", candidates: nil, expected: ""},
		{name: "picks greatest", candidates: []string{"1.0.0", "2.1.0", "2.0.0"}, expected: "2.1.0"},
		{name: "skips prerelease by default", candidates: []string{"1.0.0", "2.0.0-rc.1"}, expected: "1.0.0"},
		{name: "includes prerelease when asked", candidates: []string{"1.0.0", "2.0.0-rc.1"}, includePrerelease: true, expected: "2.0.0-rc.1"},
		{name: "all prerelease filtered out", candidates: []string{"1.0.0-alpha"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Latest(tt.candidates, tt.includePrerelease))
		})
	}
}
