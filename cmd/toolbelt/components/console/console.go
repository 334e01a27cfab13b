package console

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/sergeii/toolbelt/cmd/toolbelt/application"
	"github.com/sergeii/toolbelt/cmd/toolbelt/build"
	"github.com/sergeii/toolbelt/cmd/toolbelt/commander"
	"github.com/sergeii/toolbelt/cmd/toolbelt/container"
	"github.com/sergeii/toolbelt/internal/console"
	"github.com/sergeii/toolbelt/internal/metrics"
)

type Config struct {
	Prompt string
	In     io.Reader
	Out    io.Writer
}

type Component struct {
	done chan struct{}
}

// Done is closed once the console session is over
func (c *Component) Done() <-chan struct{} {
	return c.done
}

func New(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg Config,
	uc container.Container,
	collector *metrics.Collector,
	logger *zerolog.Logger,
) *Component {
	component := &Component{
		done: make(chan struct{}),
	}
	repl := console.New(uc, collector, logger, console.Opts{
		Prompt: cfg.Prompt,
		In:     cfg.In,
		Out:    cfg.Out,
	})
	sessionCtx, cancelSession := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(component.done)
				if err := repl.Run(sessionCtx); err != nil {
					logger.Error().Err(err).Msg("Console session failed")
				}
				logger.Debug().Msg("Console session is over")
				if shutErr := shutdowner.Shutdown(); shutErr != nil {
					logger.Error().Err(shutErr).Msg("Failed to shut down after console session")
				}
			}()
			logger.Info().Msg("Console session started")
			return nil
		},
		OnStop: func(context.Context) error {
			// a read blocked on the terminal cannot be interrupted,
			// the session notices the cancellation on the next line
			cancelSession()
			logger.Info().Msg("Console stopped")
			return nil
		},
	})

	return component
}

type command struct {
	Prompt string `default:"toolbelt> " help:"Sets the prompt printed before every console command"`
}

func (c *command) Run(_ *commander.Globals, builder *application.Builder) error {
	app := builder.
		Add(
			fx.Supply(
				Config{
					Prompt: c.Prompt,
					In:     os.Stdin,
					Out:    os.Stdout,
				},
			),
			Module,
			fx.Invoke(func(logger *zerolog.Logger, _ *Component) {
				logger.Info().
					Str("version", build.Version).
					Str("commit", build.Commit).
					Str("built", build.Time).
					Msg("Starting console")
			}),
		).
		WithExporter().
		Build()
	app.Run()
	return nil
}

type CLI struct {
	Console command `cmd:"" help:"Start interactive console"`
}

var Module = fx.Module("console",
	fx.Provide(New),
)
