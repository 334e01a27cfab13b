package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"

	"github.com/sergeii/toolbelt/cmd/toolbelt/logging"
)

func TestProvide(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logging.Config
		wantErr error
	}{
		{
			"positive case - console/info",
			logging.Config{LogOutput: "console", LogLevel: "info"},
			nil,
		},
		{
			"positive case - json/error",
			logging.Config{LogOutput: "json", LogLevel: "error"},
			nil,
		},
		{
			"positive case - stderr/warn",
			logging.Config{LogOutput: "stderr", LogLevel: "warn"},
			nil,
		},
		{
			"positive case - default output",
			logging.Config{LogOutput: "", LogLevel: "debug"},
			nil,
		},
		{
			"positive case - case insensitive",
			logging.Config{LogOutput: "stdout", LogLevel: "INFO"},
			nil,
		},
		{
			"invalid logging level",
			logging.Config{LogOutput: "stdout", LogLevel: "critical"},
			logging.ErrInvalidLogLevel,
		},
		{
			"empty logging level",
			logging.Config{LogOutput: "stdout", LogLevel: ""},
			logging.ErrInvalidLogLevel,
		},
		{
			"invalid logging output",
			logging.Config{LogOutput: "text", LogLevel: "warn"},
			logging.ErrInvalidLogOutput,
		},
		{
			"invalid logging output and level",
			logging.Config{LogOutput: "out", LogLevel: "debug2"},
			logging.ErrInvalidLogLevel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := logging.Provide(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, result.Logger)
		})
	}
}

func TestFxLogger(t *testing.T) {
	logger := zerolog.Nop()

	debug := logging.FxLogger(&logger, zerolog.DebugLevel)
	assert.IsType(t, &fxevent.ConsoleLogger{}, debug)

	info := logging.FxLogger(&logger, zerolog.InfoLevel)
	assert.Equal(t, fxevent.NopLogger, info)
}

func TestProvide_Output(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		contains []string
		excludes []string
	}{
		{
			"json",
			"json",
			[]string{`"level":"warn"`, `"message":"disk is almost full"`, `"free":3`, `"caller":"logging_test.go:`},
			[]string{"should not be logged"},
		},
		{
			"plain console",
			"stdout",
			[]string{"WRN", "disk is almost full", "free=3", "logging_test.go:"},
			[]string{"should not be logged", "\x1b["},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			result, err := logging.Provide(logging.Config{LogOutput: tt.output, LogLevel: "warn", Writer: buf})
			require.NoError(t, err)
			assert.Equal(t, zerolog.WarnLevel, result.LogLevel)

			result.Logger.Info().Msg("should not be logged")
			result.Logger.Warn().Int("free", 3).Msg("disk is almost full")

			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, buf.String(), notWant)
			}
		})
	}
}
