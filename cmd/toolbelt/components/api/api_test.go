package api_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/sergeii/toolbelt/cmd/toolbelt/application"
	"github.com/sergeii/toolbelt/cmd/toolbelt/components/api"
	"github.com/sergeii/toolbelt/internal/settings"
	tu "github.com/sergeii/toolbelt/internal/testutils"
)

func TestListenAddress(t *testing.T) {
	tests := []struct {
		name       string
		port       string
		configured string
		want       string
	}{
		{
			"configured address is used without PORT",
			"",
			":4321",
			":4321",
		},
		{
			"PORT takes precedence",
			"8080",
			":4321",
			":8080",
		},
		{
			"PORT replaces the configured host too",
			"8080",
			"127.0.0.1:4321",
			":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			assert.Equal(t, tt.want, api.ListenAddress(tt.configured))
		})
	}
}

func TestAPIComponent_Serves(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	app := fx.New(
		fx.Provide(tu.NoLogging),
		fx.Provide(tu.ProvideSettings),
		application.Module,
		fx.Supply(api.Config{
			HTTPListenAddr: addr,
		}),
		api.Module,
		fx.NopLogger,
		fx.Invoke(func(*api.Component) {}),
	)
	tu.MustNoErr(app.Start(context.TODO()))
	defer func() {
		tu.Ignore(app.Stop(context.TODO()))
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/", addr)) // nolint: noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello, World! The ee-tool-belt app is online.", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestWriteTimeoutCoversProbes(t *testing.T) {
	tests := []struct {
		name         string
		writeTimeout time.Duration
		probeTimeout time.Duration
		want         bool
	}{
		{"no write timeout", 0, 0, true},
		{"no write timeout with bounded probes", 0, time.Second, true},
		{"unbounded probes", time.Minute * 2, 0, false},
		{"probes bounded below write timeout", time.Minute * 2, time.Second * 10, true},
		{"probes bounded at write timeout", time.Second * 10, time.Second * 10, false},
		{"probes bounded above write timeout", time.Second * 5, time.Second * 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := api.WriteTimeoutCoversProbes(tt.writeTimeout, settings.Settings{HTTPTimeout: tt.probeTimeout})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIComponent_WarnsAboutUnboundedProbes(t *testing.T) {
	tests := []struct {
		name         string
		probeTimeout time.Duration
		wantWarning  bool
	}{
		{"unbounded probes", 0, true},
		{"bounded probes", time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := fx.New(
				fx.Provide(func() *zerolog.Logger {
					logger := zerolog.New(&buf)
					return &logger
				}),
				fx.Supply(settings.Settings{HTTPTimeout: tt.probeTimeout, RateLimitDefaultCount: 5}),
				application.Module,
				fx.Supply(api.Config{
					HTTPListenAddr:   "127.0.0.1:0",
					HTTPWriteTimeout: time.Minute,
				}),
				api.Module,
				fx.NopLogger,
				fx.Invoke(func(*api.Component) {}),
			)
			require.NoError(t, app.Err())

			if tt.wantWarning {
				assert.Contains(t, buf.String(), `"level":"warn"`)
				assert.Contains(t, buf.String(), "slow probes may outlive the API write timeout")
			} else {
				assert.NotContains(t, buf.String(), "write timeout")
			}
		})
	}
}
