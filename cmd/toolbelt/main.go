package main

import (
	"github.com/alecthomas/kong"
	"go.uber.org/fx"

	"github.com/sergeii/toolbelt/cmd/toolbelt/application"
	"github.com/sergeii/toolbelt/cmd/toolbelt/commander"
	"github.com/sergeii/toolbelt/cmd/toolbelt/components/api"
	"github.com/sergeii/toolbelt/cmd/toolbelt/components/console"
	"github.com/sergeii/toolbelt/cmd/toolbelt/components/exporter"
	"github.com/sergeii/toolbelt/cmd/toolbelt/logging"
	"github.com/sergeii/toolbelt/internal/settings"
)

// @title        Toolbelt API
// @version      1.0
// @description  Network diagnostics probes: connectivity, latency, headers, rate limits, TLS certificates and DNS
// @BasePath     /
func main() {
	cli := commander.CLI{}
	cli.Run.Plugins = kong.Plugins{
		&api.CLI{},
		&console.CLI{},
	}
	ctx := kong.Parse(
		&cli,
		kong.Name("toolbelt"),
		kong.Description("Network diagnostics toolbelt"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Summary:   true,
			Tree:      true,
			FlagsLast: true,
		}),
	)

	builder := application.NewBuilder(
		application.Module,
		fx.Supply(logging.Config{
			LogLevel:  cli.Globals.LogLevel,
			LogOutput: cli.Globals.LogOutput,
		}),
		fx.Supply(settings.Settings{
			HTTPTimeout:           cli.Globals.HTTPTimeout,
			HeadersTimeout:        cli.Globals.HeadersTimeout,
			MaxBodySize:           cli.Globals.MaxBodySize,
			RateLimitDefaultCount: cli.Globals.RateLimitCount,
			CertificatePort:       cli.Globals.CertificatePort,
			CertificateTimeout:    cli.Globals.CertificateTimeout,
			DNSTimeout:            cli.Globals.DNSTimeout,
		}),
		fx.Provide(logging.Provide),
		fx.WithLogger(logging.FxLogger),
		fx.Supply(exporter.Config{
			HTTPListenAddress:   cli.Globals.ExporterHTTPListenAddress,
			HTTPMetricsPath:     cli.Globals.ExporterHTTPMetricsPath,
			HTTPReadTimeout:     cli.Globals.ExporterHTTPReadTimeout,
			HTTPWriteTimeout:    cli.Globals.ExporterHTTPWriteTimeout,
			HTTPShutdownTimeout: cli.Globals.ExporterHTTPShutdownTimeout,
		}),
		exporter.Module,
	)

	if err := ctx.Run(&cli.Globals, builder); err != nil {
		ctx.FatalIfErrorf(err)
	}
}
