package exporter_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/sergeii/toolbelt/cmd/toolbelt/application"
	"github.com/sergeii/toolbelt/cmd/toolbelt/components/exporter"
	"github.com/sergeii/toolbelt/cmd/toolbelt/container"
	"github.com/sergeii/toolbelt/internal/core/usecases/lookupdns"
	tu "github.com/sergeii/toolbelt/internal/testutils"
)

type staticResolver struct {
	addrs map[string][]net.IPAddr
}

func (r staticResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	addrs, ok := r.addrs[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return addrs, nil
}

func getMetrics(t *testing.T, addr net.Addr, path string) map[string]*dto.MetricFamily {
	resp, err := http.Get(fmt.Sprintf("http://%s%s", addr, path)) // nolint: noctx
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			panic(fmt.Sprintf("failed to close response body: %v", err))
		}
	}()
	assert.Equal(t, 200, resp.StatusCode)
	parser := expfmt.NewTextParser(model.UTF8Validation)
	mf, err := parser.TextToMetricFamilies(resp.Body)
	require.NoError(t, err)
	return mf
}

func TestExporter_ProbeMetrics(t *testing.T) {
	var component *exporter.Component
	var uc container.Container

	app := fx.New(
		fx.Provide(tu.NoLogging),
		fx.Provide(tu.ProvideSettings),
		application.Module,
		fx.Decorate(func(lookupdns.Resolver) lookupdns.Resolver {
			return staticResolver{
				addrs: map[string][]net.IPAddr{
					"example.com": {{IP: net.ParseIP("93.184.216.34")}},
				},
			}
		}),
		fx.Supply(exporter.Config{
			HTTPListenAddress: "localhost:0",
		}),
		exporter.Module,
		fx.NopLogger,
		fx.Populate(&component, &uc),
	)
	tu.MustNoErr(app.Start(context.TODO()))
	defer func() {
		tu.Ignore(app.Stop(context.TODO()))
	}()

	ctx := context.TODO()
	for range 2 {
		_, err := uc.LookupDNS.Execute(ctx, lookupdns.Request{Domain: "example.com"})
		require.NoError(t, err)
	}
	_, err := uc.LookupDNS.Execute(ctx, lookupdns.Request{Domain: "unknown.example.com"})
	require.Error(t, err)
	_, err = uc.LookupDNS.Execute(ctx, lookupdns.Request{Domain: ""})
	require.Error(t, err)

	mf := getMetrics(t, component.Addr(), exporter.DefaultMetricsPath)

	assert.True(t, mf["go_goroutines"].Metric[0].Gauge.GetValue() > 0)

	assert.Equal(t, 4, int(mf["probe_runs_total"].Metric[0].Counter.GetValue()))
	assert.Equal(t, "dns", mf["probe_runs_total"].Metric[0].Label[0].GetValue())

	errorsByKind := make(map[string]int)
	for _, m := range mf["probe_errors_total"].Metric {
		labels := make(map[string]string)
		for _, l := range m.Label {
			labels[l.GetName()] = l.GetValue()
		}
		assert.Equal(t, "dns", labels["kind"])
		errorsByKind[labels["error"]] = int(m.Counter.GetValue())
	}
	assert.Equal(t, map[string]int{"request": 1, "resolver": 1}, errorsByKind)

	assert.Equal(t, 4, int(mf["probe_duration_seconds"].Metric[0].Histogram.GetSampleCount()))
}

func TestExporter_CustomPath(t *testing.T) {
	var component *exporter.Component

	app := fx.New(
		fx.Provide(tu.NoLogging),
		fx.Provide(tu.ProvideSettings),
		application.Module,
		fx.Supply(exporter.Config{
			HTTPListenAddress: "localhost:0",
			HTTPMetricsPath:   "/internal/metrics",
		}),
		exporter.Module,
		fx.NopLogger,
		fx.Populate(&component),
	)
	tu.MustNoErr(app.Start(context.TODO()))
	defer func() {
		tu.Ignore(app.Stop(context.TODO()))
	}()

	mf := getMetrics(t, component.Addr(), "/internal/metrics")
	assert.Contains(t, mf, "promhttp_metric_handler_requests_total")

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", component.Addr())) // nolint: noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExporter_AddressInUse(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	app := fx.New(
		fx.Provide(tu.NoLogging),
		fx.Provide(tu.ProvideSettings),
		application.Module,
		fx.Supply(exporter.Config{
			HTTPListenAddress: occupied.Addr().String(),
		}),
		exporter.Module,
		fx.NopLogger,
		fx.Invoke(func(*exporter.Component) {}),
	)
	err = app.Start(context.TODO())
	require.Error(t, err)
	var opErr *net.OpError
	assert.True(t, errors.As(err, &opErr))
}
