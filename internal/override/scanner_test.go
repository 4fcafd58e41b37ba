package override

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedworks/feedctl/internal/sources"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		expected []sources.FeedDescriptor
	}{
		{
			name:     "no arguments",
			args:     []string{},
			expected: nil,
		},
		{
			name:     "no marker",
			args:     []string{"search", "--take", "5"},
			expected: nil,
		},
		{
			name: "single override before another flag",
			args: []string{"-Source", "A", "-Other"},
			expected: []sources.FeedDescriptor{
				{Name: "CMD_LINE_SRC_0", Location: "A"},
			},
		},
		{
			name: "multiple locations and repeated markers accumulate in order",
			args: []string{"-Source", "A", "B", "-Source", "C"},
			expected: []sources.FeedDescriptor{
				{Name: "CMD_LINE_SRC_0", Location: "A"},
				{Name: "CMD_LINE_SRC_1", Location: "B"},
				{Name: "CMD_LINE_SRC_2", Location: "C"},
			},
		},
		{
			name:     "marker immediately followed by another flag yields nothing",
			args:     []string{"-source", "--verbose"},
			expected: nil,
		},
		{
			name: "marker is matched case-insensitively with any dash count",
			args: []string{"--SOURCE", "https://feeds.example.com/api"},
			expected: []sources.FeedDescriptor{
				{Name: "CMD_LINE_SRC_0", Location: "https://feeds.example.com/api"},
			},
		},
		{
			name: "tokens before the first marker are ignored",
			args: []string{"A", "-source", "B"},
			expected: []sources.FeedDescriptor{
				{Name: "CMD_LINE_SRC_0", Location: "B"},
			},
		},
		{
			name: "inline flag form binds its value",
			args: []string{"--source=https://feeds.example.com/api"},
			expected: []sources.FeedDescriptor{
				{Name: "CMD_LINE_SRC_0", Location: "https://feeds.example.com/api"},
			},
		},
		{
			name: "inline form mixes with trailing locations and repeated markers",
			args: []string{"--source=A", "B", "-Source", "C"},
			expected: []sources.FeedDescriptor{
				{Name: "CMD_LINE_SRC_0", Location: "A"},
				{Name: "CMD_LINE_SRC_1", Location: "B"},
				{Name: "CMD_LINE_SRC_2", Location: "C"},
			},
		},
		{
			name:     "inline form with empty value yields nothing",
			args:     []string{"--source=", "--verbose"},
			expected: nil,
		},
		{
			name:     "other flag with inline value stays ignored",
			args:     []string{"--take=5", "A"},
			expected: nil,
		},
		{
			name: "other flag ends collection until next marker",
			args: []string{"-source", "A", "--take", "5", "-source", "B"},
			expected: []sources.FeedDescriptor{
				{Name: "CMD_LINE_SRC_0", Location: "A"},
				{Name: "CMD_LINE_SRC_1", Location: "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Scan(tt.args)
			require.Len(t, got, len(tt.expected))
			assert.Equal(t, tt.expected, got)
		})
	}
}
