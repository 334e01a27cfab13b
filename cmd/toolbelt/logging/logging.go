package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/sergeii/toolbelt/pkg/logutils"
)

var (
	ErrInvalidLogOutput = errors.New("logging: unknown output format")
	ErrInvalidLogLevel  = errors.New("logging: unknown level")
)

type Config struct {
	LogOutput string
	LogLevel  string
	// Writer replaces the process stream the output format writes to
	Writer io.Writer
}

type Result struct {
	fx.Out

	Logger   *zerolog.Logger
	LogLevel zerolog.Level
}

type outputFactory func(w io.Writer) io.Writer

func consoleOutput(color bool) outputFactory {
	return func(w io.Writer) io.Writer {
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !color}
	}
}

func jsonOutput(w io.Writer) io.Writer {
	return w
}

var outputs = map[string]struct {
	stream  io.Writer
	factory outputFactory
}{
	"":        {os.Stdout, consoleOutput(true)},
	"console": {os.Stdout, consoleOutput(true)},
	"stdout":  {os.Stdout, consoleOutput(false)},
	"stderr":  {os.Stderr, consoleOutput(false)},
	"json":    {os.Stderr, jsonOutput},
}

func parseLevel(raw string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLogLevel, raw)
	}
	return lvl, nil
}

func Provide(cfg Config) (Result, error) {
	lvl, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return Result{}, err
	}

	out, ok := outputs[strings.ToLower(cfg.LogOutput)]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidLogOutput, cfg.LogOutput)
	}
	stream := out.stream
	if cfg.Writer != nil {
		stream = cfg.Writer
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.CallerMarshalFunc = logutils.ShortCallerFormatter

	logger := zerolog.New(out.factory(stream)).
		Level(lvl).
		With().Timestamp().Caller().
		Logger()

	return Result{
		Logger:   &logger,
		LogLevel: lvl,
	}, nil
}

// NoGlobal silences the package level logger so that everything goes through the injected one
func NoGlobal() {
	log.Logger = zerolog.Nop()
}

func FxLogger(logger *zerolog.Logger, lvl zerolog.Level) fxevent.Logger {
	switch lvl { // nolint: exhaustive
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return &fxevent.ConsoleLogger{
			W: logger,
		}
	default:
		return fxevent.NopLogger
	}
}
