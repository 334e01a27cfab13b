package testutils

import (
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/sergeii/toolbelt/cmd/toolbelt/application"
	"github.com/sergeii/toolbelt/cmd/toolbelt/components/api"
	"github.com/sergeii/toolbelt/internal/settings"
)

func NoLogging() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func ProvideSettings() settings.Settings {
	return settings.Settings{
		HTTPTimeout:           time.Second * 2,
		HeadersTimeout:        time.Second * 2,
		MaxBodySize:           1 << 20,
		RateLimitDefaultCount: 5,
		CertificatePort:       443,
		CertificateTimeout:    time.Second * 2,
		DNSTimeout:            time.Second * 2,
	}
}

func PrepareTestServer(tb fxtest.TB, extra ...fx.Option) (*httptest.Server, func()) {
	gin.SetMode(gin.ReleaseMode) // prevent gin from overwriting middlewares

	var router *gin.Engine
	fxopts := []fx.Option{
		fx.Provide(NoLogging),
		fx.Provide(ProvideSettings),
		application.Module,
		api.Module,
		fx.NopLogger,
		fx.Populate(&router),
	}
	fxopts = append(fxopts, extra...)

	app := fxtest.New(tb, fxopts...)
	app.RequireStart()

	ts := httptest.NewServer(router)

	return ts, func() {
		defer app.RequireStop() // nolint: errcheck
		defer ts.Close()
	}
}
