// Package versions provides version comparison helpers used when listing
// package updates.
package versions

import "github.com/Masterminds/semver/v3"

// IsNewer reports whether candidate is strictly greater than current.
// It uses semantic versioning when both strings are valid semver and falls
// back to lexicographic string comparison otherwise.
func IsNewer(candidate, current string) bool {
	candidateSemver, errCandidate := semver.NewVersion(candidate)
	currentSemver, errCurrent := semver.NewVersion(current)

	if errCandidate != nil || errCurrent != nil {
		return candidate > current
	}

	return candidateSemver.GreaterThan(currentSemver)
}

// IsPrerelease reports whether version carries a prerelease tag such as
// 1.2.0-beta.1. Non-semver strings are treated as stable releases.
func IsPrerelease(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return v.Prerelease() != ""
}

// Latest returns the greatest version in candidates, optionally excluding
// prereleases. It returns "" when candidates is empty or every candidate is
// filtered out.
func Latest(candidates []string, includePrerelease bool) string {
	latest := ""
	for _, c := range candidates {
		if !includePrerelease && IsPrerelease(c) {
			continue
		}
		if latest == "" || IsNewer(c, latest) {
			latest = c
		}
	}
	return latest
}
