// Package override extracts feed overrides from process invocation
// arguments. Overrides exist to force a specific feed during CI or
// debugging and take unconditional precedence over persisted configuration.
package override

import (
	"fmt"
	"strings"

	"github.com/feedworks/feedctl/internal/sources"
)

const (
	// sourceMarker is the flag name (without dashes, compared
	// case-insensitively) that starts a run of feed locations.
	sourceMarker = "source"

	// flagPrefix is the character that introduces a flag token and ends a
	// run of feed locations.
	flagPrefix = "-"

	// syntheticNameFormat names descriptors built from command-line tokens
	// deterministically so they cannot collide with configured feeds.
	syntheticNameFormat = "CMD_LINE_SRC_%d"
)

// scanState is the state of the token scanner.
type scanState int

const (
	stateIdle scanState = iota
	stateCollecting
)

// Scan walks args in order and returns a descriptor for every feed location
// supplied after a source marker, preserving first-seen order across
// repeated markers. A marker immediately followed by another flag
// contributes nothing; that is not an error. Scan performs no I/O.
func Scan(args []string) []sources.FeedDescriptor {
	var descriptors []sources.FeedDescriptor
	state := stateIdle

	for _, token := range args {
		if strings.HasPrefix(token, flagPrefix) {
			flag, inline, hasInline := strings.Cut(token, "=")
			if !isSourceMarker(flag) {
				state = stateIdle
				continue
			}
			state = stateCollecting
			// The --source=LOCATION flag form binds its value inline.
			if hasInline && inline != "" {
				name := fmt.Sprintf(syntheticNameFormat, len(descriptors))
				descriptors = append(descriptors, sources.NewFeedDescriptor(name, inline))
			}
			continue
		}

		if state == stateCollecting {
			name := fmt.Sprintf(syntheticNameFormat, len(descriptors))
			descriptors = append(descriptors, sources.NewFeedDescriptor(name, token))
		}
	}

	return descriptors
}

func isSourceMarker(token string) bool {
	return strings.EqualFold(strings.TrimLeft(token, flagPrefix), sourceMarker)
}
