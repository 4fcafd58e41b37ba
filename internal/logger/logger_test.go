package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
	}{
		{name: "default level", verbose: false},
		{name: "debug level", verbose: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.verbose)
			require.NotNil(t, log)

			assert.Equal(t, tt.verbose, log.Desugar().Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestHelpersBeforeInitialize(t *testing.T) {
	// The package default must be usable without an Initialize call so
	// library packages can log during tests.
	assert.NotPanics(t, func() {
		Debugf("debug %s", "message")
		Infof("info %s", "message")
		Warnf("warn %s", "message")
		Errorf("error %s", "message")
	})
}
