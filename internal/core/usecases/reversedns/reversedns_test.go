package reversedns_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sergeii/toolbelt/internal/core/entities/probe"
	"github.com/sergeii/toolbelt/internal/core/usecases/reversedns"
	"github.com/sergeii/toolbelt/internal/metrics"
	"github.com/sergeii/toolbelt/internal/resolver"
	"github.com/sergeii/toolbelt/internal/settings"
	"github.com/sergeii/toolbelt/internal/testutils"
	"github.com/sergeii/toolbelt/internal/validation"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).([]string), args.Error(1) // nolint: forcetypeassert
}

func makeUseCase(r reversedns.Resolver) reversedns.UseCase {
	logger := zerolog.Nop()
	return reversedns.New(
		r,
		testutils.Must(validation.New()),
		metrics.New(),
		clockwork.NewFakeClock(),
		settings.Settings{DNSTimeout: time.Second},
		&logger,
	)
}

func TestReverseDNSUseCase_OK(t *testing.T) {
	tests := []struct {
		name  string
		ip    string
		names []string
		want  []string
	}{
		{
			"single name",
			"8.8.8.8",
			[]string{"dns.google."},
			[]string{"dns.google"},
		},
		{
			"order is preserved",
			"1.1.1.1",
			[]string{"one.one.one.one.", "cloudflare-dns.com."},
			[]string{"one.one.one.one", "cloudflare-dns.com"},
		},
		{
			"no names",
			"10.1.2.3",
			[]string{},
			[]string{},
		},
		{
			"ipv6",
			"2001:4860:4860::8888",
			[]string{"dns.google"},
			[]string{"dns.google"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(MockResolver)
			r.On("LookupAddr", mock.Anything, tt.ip).Return(tt.names, nil)

			uc := makeUseCase(r)
			result, err := uc.Execute(context.TODO(), reversedns.Request{IP: tt.ip})

			require.NoError(t, err)
			assert.Equal(t, tt.ip, result.IP)
			assert.Equal(t, tt.want, result.Hostnames)
		})
	}
}

func TestReverseDNSUseCase_Failure(t *testing.T) {
	r := new(MockResolver)
	r.On("LookupAddr", mock.Anything, "192.0.2.1").
		Return([]string(nil), &net.DNSError{Err: "no such host", Name: "1.2.0.192.in-addr.arpa.", IsNotFound: true})

	uc := makeUseCase(r)
	_, err := uc.Execute(context.TODO(), reversedns.Request{IP: "192.0.2.1"})

	probeErr, ok := probe.AsError(err)
	require.True(t, ok)
	assert.Equal(t, probe.ResolverError, probeErr.Kind)
	assert.Equal(t,
		"Error performing reverse DNS lookup for IP 192.0.2.1. Reason: lookup 1.2.0.192.in-addr.arpa.: no such host",
		probeErr.Message,
	)
	assert.Equal(t, resolver.ClassNotFound, probeErr.Reason)
}

func TestReverseDNSUseCase_InvalidIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
	}{
		{"empty", ""},
		{"hostname", "dns.google"},
		{"bad octet", "300.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(MockResolver)
			uc := makeUseCase(r)

			_, err := uc.Execute(context.TODO(), reversedns.Request{IP: tt.ip})

			assert.Equal(t, probe.RequestError, probe.KindOf(err))
			r.AssertNotCalled(t, "LookupAddr", mock.Anything, mock.Anything)
		})
	}
}
