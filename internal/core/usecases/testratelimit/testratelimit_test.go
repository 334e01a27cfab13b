package testratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sergeii/toolbelt/internal/core/entities/probe"
	"github.com/sergeii/toolbelt/internal/core/entities/report"
	"github.com/sergeii/toolbelt/internal/core/usecases/testratelimit"
	"github.com/sergeii/toolbelt/internal/metrics"
	"github.com/sergeii/toolbelt/internal/netclient"
	"github.com/sergeii/toolbelt/internal/settings"
	"github.com/sergeii/toolbelt/internal/testutils"
	"github.com/sergeii/toolbelt/internal/validation"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(
	ctx context.Context,
	rawURL string,
	_ ...netclient.FetchOption,
) (netclient.Response, error) {
	args := m.Called(ctx, rawURL)
	return args.Get(0).(netclient.Response), args.Error(1) // nolint: forcetypeassert
}

func makeUseCase(client netclient.Fetcher) (testratelimit.UseCase, *metrics.Collector) {
	logger := zerolog.Nop()
	collector := metrics.New()
	uc := testratelimit.New(
		client,
		testutils.Must(validation.New()),
		collector,
		clockwork.NewFakeClock(),
		settings.Settings{RateLimitDefaultCount: 5},
		&logger,
	)
	return uc, collector
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want testratelimit.Outcome
	}{
		{
			"success",
			nil,
			testratelimit.Success,
		},
		{
			"429 with standard text",
			&netclient.StatusError{StatusCode: 429, Status: "429 Too Many Requests"},
			testratelimit.RateLimited,
		},
		{
			"429 without the text",
			&netclient.StatusError{StatusCode: 429, Status: "429 Slow Down"},
			testratelimit.RateLimited,
		},
		{
			"text without 429",
			&netclient.StatusError{StatusCode: 503, Status: "503 Too Many Requests"},
			testratelimit.RateLimited,
		},
		{
			"text is part of a longer phrase",
			&netclient.StatusError{StatusCode: 400, Status: "400 Too Many Requests From Your IP"},
			testratelimit.RateLimited,
		},
		{
			"other status",
			&netclient.StatusError{StatusCode: 500, Status: "500 Internal Server Error"},
			testratelimit.Failed,
		},
		{
			"status code in text is ignored",
			&netclient.StatusError{StatusCode: 500, Status: "500 429"},
			testratelimit.Failed,
		},
		{
			"no response",
			&netclient.NoResponseError{Method: "GET", URL: "http://x", Err: errors.New("timeout")},
			testratelimit.Failed,
		},
		{
			"unclassified error",
			errors.New("boom"),
			testratelimit.Failed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testratelimit.Classify(tt.err))
		})
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 100, testratelimit.ParseCount("100"))
	assert.Equal(t, 7, testratelimit.ParseCount(" 7"))
	assert.Equal(t, 0, testratelimit.ParseCount(""))
	assert.Equal(t, 0, testratelimit.ParseCount("abc"))
	assert.Equal(t, 0, testratelimit.ParseCount("0"))
	assert.Equal(t, 0, testratelimit.ParseCount("-3"))
}

func TestTestRateLimitUseCase_CountsSumToTotal(t *testing.T) {
	ctx := context.TODO()
	outcomes := []error{
		nil,
		&netclient.StatusError{StatusCode: 429, Status: "429 Too Many Requests"},
		&netclient.NoResponseError{Method: "GET", URL: "http://x", Err: errors.New("refused")},
		nil,
		&netclient.StatusError{StatusCode: 503, Status: "503 Too Many Requests"},
		&netclient.StatusError{StatusCode: 500, Status: "500 Internal Server Error"},
		nil,
	}

	client := new(MockFetcher)
	for _, fetchErr := range outcomes {
		client.On("Fetch", ctx, "http://x").Return(netclient.Response{}, fetchErr).Once()
	}

	uc, collector := makeUseCase(client)
	result, err := uc.Execute(ctx, testratelimit.Request{URL: "http://x", Count: len(outcomes)})

	require.NoError(t, err)
	assert.Equal(t, report.RateLimit{
		TargetURL:           "http://x",
		TotalRequests:       7,
		SuccessfulRequests:  3,
		RateLimitedRequests: 2,
		FailedRequests:      2,
	}, result)
	assert.Equal(t,
		result.TotalRequests,
		result.SuccessfulRequests+result.RateLimitedRequests+result.FailedRequests,
	)
	client.AssertNumberOfCalls(t, "Fetch", 7)
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.RateLimitOutcomes.WithLabelValues("ratelimited")))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.RateLimitOutcomes.WithLabelValues("success")))
}

func TestTestRateLimitUseCase_DefaultCount(t *testing.T) {
	ctx := context.TODO()

	client := new(MockFetcher)
	client.On("Fetch", ctx, "http://x").Return(netclient.Response{StatusCode: 200}, nil)

	uc, _ := makeUseCase(client)
	result, err := uc.Execute(ctx, testratelimit.Request{URL: "http://x"})

	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalRequests)
	assert.Equal(t, 5, result.SuccessfulRequests)
	client.AssertNumberOfCalls(t, "Fetch", 5)
}

func TestTestRateLimitUseCase_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  testratelimit.Request
	}{
		{
			"no url",
			testratelimit.Request{Count: 3},
		},
		{
			"negative count",
			testratelimit.Request{URL: "http://x", Count: -1},
		},
		{
			"relative url",
			testratelimit.Request{URL: "/just/a/path", Count: 3},
		},
		{
			"bare host",
			testratelimit.Request{URL: "example.com", Count: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockFetcher)
			uc, _ := makeUseCase(client)

			_, err := uc.Execute(context.TODO(), tt.req)

			assert.Equal(t, probe.RequestError, probe.KindOf(err))
			client.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
		})
	}
}

func TestTestRateLimitUseCase_AlwaysLimited(t *testing.T) {
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	uc, _ := makeUseCase(netclient.New(netclient.Opts{}))
	result, err := uc.Execute(context.TODO(), testratelimit.Request{URL: ts.URL, Count: 10})

	require.NoError(t, err)
	assert.Equal(t, 10, result.TotalRequests)
	assert.Equal(t, 0, result.SuccessfulRequests)
	assert.Equal(t, 10, result.RateLimitedRequests)
	assert.Equal(t, 0, result.FailedRequests)
	assert.Equal(t, int64(10), hits.Load())
}

func TestTestRateLimitUseCase_CustomStatusLines(t *testing.T) {
	tests := []struct {
		name       string
		statusLine string
		want       report.RateLimit
	}{
		{
			"429 with a custom reason",
			"429 Slow Down",
			report.RateLimit{TotalRequests: 3, RateLimitedRequests: 3},
		},
		{
			"rate limit text on another status",
			"503 Too Many Requests",
			report.RateLimit{TotalRequests: 3, RateLimitedRequests: 3},
		},
		{
			"plain server error",
			"502 Bad Gateway",
			report.RateLimit{TotalRequests: 3, FailedRequests: 3},
		},
		{
			"ok",
			"200 OK",
			report.RateLimit{TotalRequests: 3, SuccessfulRequests: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svr := testutils.NewRawHTTPServer(tt.statusLine, "body")
			defer svr.Close()

			uc, _ := makeUseCase(netclient.New(netclient.Opts{}))
			result, err := uc.Execute(context.TODO(), testratelimit.Request{URL: svr.URL, Count: 3})

			require.NoError(t, err)
			tt.want.TargetURL = svr.URL
			assert.Equal(t, tt.want, result)
			assert.Equal(t, 3, svr.Hits())
		})
	}
}

func TestTestRateLimitUseCase_UnreachableCountsAsFailed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := ts.URL
	ts.Close()

	uc, _ := makeUseCase(netclient.New(netclient.Opts{}))
	result, err := uc.Execute(context.TODO(), testratelimit.Request{URL: addr, Count: 4})

	require.NoError(t, err)
	assert.Equal(t, 4, result.FailedRequests)
	assert.Equal(t, 4, result.TotalRequests)
}

func TestTestRateLimitUseCase_LargeBodiesDoNotCountAsFailed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limited") != "" {
			w.WriteHeader(http.StatusTooManyRequests)
		}
		w.Write([]byte(strings.Repeat("x", 1024))) // nolint: errcheck
	}))
	defer ts.Close()

	uc, _ := makeUseCase(netclient.New(netclient.Opts{MaxBodySize: 16}))

	result, err := uc.Execute(context.TODO(), testratelimit.Request{URL: ts.URL, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessfulRequests)

	result, err = uc.Execute(context.TODO(), testratelimit.Request{URL: ts.URL + "?limited=1", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RateLimitedRequests)
	assert.Equal(t, 0, result.FailedRequests)
}
