package api

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/sergeii/toolbelt/cmd/toolbelt/application"
	"github.com/sergeii/toolbelt/cmd/toolbelt/build"
	"github.com/sergeii/toolbelt/cmd/toolbelt/commander"
	"github.com/sergeii/toolbelt/internal/rest"
	"github.com/sergeii/toolbelt/internal/rest/api"
	"github.com/sergeii/toolbelt/internal/settings"
	"github.com/sergeii/toolbelt/pkg/http/httpserver"
)

type Config struct {
	HTTPListenAddr      string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPShutdownTimeout time.Duration
}

type Component struct{}

func New(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	router *gin.Engine,
	cfg Config,
	probeSettings settings.Settings,
	logger *zerolog.Logger,
) (*Component, error) {
	ready := make(chan struct{})

	if !WriteTimeoutCoversProbes(cfg.HTTPWriteTimeout, probeSettings) {
		logger.Warn().
			Dur("write_timeout", cfg.HTTPWriteTimeout).
			Dur("probe_timeout", probeSettings.HTTPTimeout).
			Msg("Probe requests are not bounded, slow probes may outlive the API write timeout")
	}

	svr, err := httpserver.New(
		cfg.HTTPListenAddr,
		httpserver.WithShutdownTimeout(cfg.HTTPShutdownTimeout),
		httpserver.WithReadTimeout(cfg.HTTPReadTimeout),
		httpserver.WithWriteTimeout(cfg.HTTPWriteTimeout),
		httpserver.WithHandler(router),
		httpserver.WithLogger(logger),
		httpserver.WithReadySignal(func(addr net.Addr) {
			logger.Info().Stringer("addr", addr).Msg("API server is ready to accept connections")
			close(ready)
		}),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up API server")
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			failed := make(chan error, 1)
			go func() {
				if serveErr := svr.ListenAndServe(); serveErr != nil {
					logger.Warn().Err(serveErr).Msg("API server exited prematurely")
					failed <- serveErr
					if shutErr := shutdowner.Shutdown(); shutErr != nil {
						logger.Error().Err(shutErr).Msg("Failed to handle premature API server shutdown")
					}
				}
			}()
			select {
			case <-ready:
				return nil
			case serveErr := <-failed:
				return serveErr
			}
		},
		OnStop: func(stopCtx context.Context) error {
			if stopErr := svr.Stop(stopCtx); stopErr != nil {
				logger.Error().Err(stopErr).Msg("Failed to stop API server gracefully")
				return stopErr
			}
			logger.Info().Msg("API server stopped")
			return nil
		},
	})

	return &Component{}, nil
}

// WriteTimeoutCoversProbes reports whether a single probe request is guaranteed
// to finish before the server gives up writing the response.
// Repeated probes (latency, rate limit) still multiply the per-request bound.
func WriteTimeoutCoversProbes(writeTimeout time.Duration, s settings.Settings) bool {
	if writeTimeout <= 0 {
		return true
	}
	return s.HTTPTimeout > 0 && s.HTTPTimeout < writeTimeout
}

// ListenAddress honours the PORT variable set by hosting platforms over the configured address
func ListenAddress(configured string) string {
	if port := os.Getenv("PORT"); port != "" {
		return net.JoinHostPort("", port)
	}
	return configured
}

type command struct {
	HTTPListenAddress   string        `default:":4321" env:"TOOLBELT_API_ADDRESS" help:"Sets the address where the API server listens for incoming http requests, PORT takes precedence"` // nolint:lll
	HTTPReadTimeout     time.Duration `default:"5s"    help:"Sets the maximum duration to read the request before timing out"`                                                         // nolint:lll
	HTTPWriteTimeout    time.Duration `default:"2m"    help:"Sets the maximum duration to write a response after reading the request, 0 disables it. A latency or rate limit run that takes longer is cut off without a result, so keep it above --http-timeout times the repeat count"` // nolint:lll
	HTTPShutdownTimeout time.Duration `default:"10s"   help:"Defines how long the server waits to gracefully close connections before exiting"`                                        // nolint:lll
}

func (c *command) Run(_ *commander.Globals, builder *application.Builder) error {
	listenAddr := ListenAddress(c.HTTPListenAddress)
	app := builder.
		Add(
			fx.Supply(
				Config{
					HTTPListenAddr:      listenAddr,
					HTTPReadTimeout:     c.HTTPReadTimeout,
					HTTPWriteTimeout:    c.HTTPWriteTimeout,
					HTTPShutdownTimeout: c.HTTPShutdownTimeout,
				},
			),
			Module,
			fx.Invoke(func(logger *zerolog.Logger, _ *Component) {
				logger.Info().
					Str("version", build.Version).
					Str("commit", build.Commit).
					Str("built", build.Time).
					Str("address", listenAddr).
					Msg("Starting API server")
			}),
		).
		WithExporter().
		Build()
	app.Run()
	return nil
}

type CLI struct {
	API command `cmd:"" help:"Start API server"`
}

var Module = fx.Module("api",
	fx.Provide(fx.Private, api.New),
	fx.Provide(rest.NewRouter),
	fx.Provide(New),
)
