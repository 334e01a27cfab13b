package application

import (
	"net"

	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"

	"github.com/sergeii/toolbelt/cmd/toolbelt/components/exporter"
	"github.com/sergeii/toolbelt/cmd/toolbelt/container"
	"github.com/sergeii/toolbelt/cmd/toolbelt/logging"
	"github.com/sergeii/toolbelt/internal/core/usecases/inspectcertificate"
	"github.com/sergeii/toolbelt/internal/core/usecases/lookupdns"
	"github.com/sergeii/toolbelt/internal/core/usecases/reversedns"
	"github.com/sergeii/toolbelt/internal/metrics"
	"github.com/sergeii/toolbelt/internal/netclient"
	"github.com/sergeii/toolbelt/internal/settings"
	"github.com/sergeii/toolbelt/internal/validation"
)

type Resolvers struct {
	fx.Out

	Forward lookupdns.Resolver
	Reverse reversedns.Resolver
}

func provideResolvers() Resolvers {
	return Resolvers{
		Forward: net.DefaultResolver,
		Reverse: net.DefaultResolver,
	}
}

func provideFetcher(cfg settings.Settings) netclient.Fetcher {
	return netclient.New(netclient.Opts{
		Timeout:     cfg.HTTPTimeout,
		MaxBodySize: cfg.MaxBodySize,
	})
}

func provideCertificateOpts(cfg settings.Settings) inspectcertificate.Opts {
	return inspectcertificate.Opts{
		DefaultPort: cfg.CertificatePort,
		Timeout:     cfg.CertificateTimeout,
	}
}

type Builder struct {
	opts []fx.Option
}

func NewBuilder(opts ...fx.Option) *Builder {
	return &Builder{
		opts: opts,
	}
}

func (b *Builder) Add(opts ...fx.Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

func (b *Builder) WithExporter() *Builder {
	return b.Add(
		fx.Invoke(func(*exporter.Component) {}),
	)
}

func (b *Builder) Build() *fx.App {
	return fx.New(b.opts...)
}

var Module = fx.Module("application",
	fx.Invoke(logging.NoGlobal),
	fx.Provide(clockwork.NewRealClock),
	fx.Provide(validation.New),
	fx.Provide(metrics.New),
	fx.Provide(provideFetcher),
	fx.Provide(provideResolvers),
	fx.Provide(provideCertificateOpts),
	container.Module,
)
