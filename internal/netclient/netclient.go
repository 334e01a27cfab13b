package netclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sergeii/toolbelt/internal/core/entities/header"
)

const defaultMaxBodySize = 10 << 20

var (
	ErrUnsupportedScheme = errors.New("unsupported protocol scheme")
	ErrMissingHost       = errors.New("no host in request URL")
	ErrBodyTooLarge      = errors.New("response body exceeds size limit")
)

// Fetcher performs a single GET request and returns the received response.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, opts ...FetchOption) (Response, error)
}

type Response struct {
	StatusCode     int
	Status         string
	Headers        header.List
	RequestHeaders header.List
	Body           []byte
}

// StatusText returns the reason phrase of the status line, e.g. "Too Many Requests".
func (r Response) StatusText() string {
	return statusText(r.StatusCode, r.Status)
}

type Opts struct {
	// Timeout bounds every request. Zero means no limit.
	Timeout     time.Duration
	MaxBodySize int64
	Transport   http.RoundTripper
}

type Client struct {
	http        *http.Client
	timeout     time.Duration
	maxBodySize int64
}

type fetchConfig struct {
	timeout     time.Duration
	anyStatus   bool
	discardBody bool
}

type FetchOption func(*fetchConfig)

// WithTimeout overrides the client timeout for a single request.
func WithTimeout(timeout time.Duration) FetchOption {
	return func(c *fetchConfig) {
		c.timeout = timeout
	}
}

// WithAnyStatus makes any received status code a successful outcome.
func WithAnyStatus() FetchOption {
	return func(c *fetchConfig) {
		c.anyStatus = true
	}
}

// WithDiscardBody drains the body without keeping it.
// Neither the response nor a status error carries a body then.
func WithDiscardBody() FetchOption {
	return func(c *fetchConfig) {
		c.discardBody = true
	}
}

func New(opts Opts) *Client {
	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		http: &http.Client{
			Transport: transport,
		},
		timeout:     opts.Timeout,
		maxBodySize: maxBodySize,
	}
}

func (c *Client) Fetch(ctx context.Context, rawURL string, opts ...FetchOption) (Response, error) {
	cfg := fetchConfig{timeout: c.timeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	target, err := parseURL(rawURL)
	if err != nil {
		return Response{}, &SetupError{Err: err}
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	rec := &headerRecorder{}
	trace := &httptrace.ClientTrace{
		// every redirect hop writes a new set of headers
		GotConn:          func(httptrace.GotConnInfo) { rec.reset() },
		WroteHeaderField: rec.add,
	}

	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), http.MethodGet, target.String(), nil)
	if err != nil {
		return Response{}, &SetupError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, &NoResponseError{Method: http.MethodGet, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp.Body, cfg.discardBody)
	if err != nil {
		if errors.Is(err, ErrBodyTooLarge) {
			return Response{}, err
		}
		return Response{}, &NoResponseError{Method: http.MethodGet, URL: rawURL, Err: err}
	}

	result := Response{
		StatusCode:     resp.StatusCode,
		Status:         resp.Status,
		Headers:        header.FromHTTP(resp.Header),
		RequestHeaders: rec.list(),
		Body:           body,
	}

	if !cfg.anyStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return result, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	return result, nil
}

// readBody never returns a partial body.
// A body over the limit is an error unless it is discarded anyway.
func (c *Client) readBody(body io.Reader, discard bool) ([]byte, error) {
	if discard {
		_, err := io.Copy(io.Discard, io.LimitReader(body, c.maxBodySize))
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(body, c.maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, fmt.Errorf("%w of %d bytes", ErrBodyTooLarge, c.maxBodySize)
	}
	return data, nil
}

func parseURL(rawURL string) (*url.URL, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(target.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, target.Scheme)
	}
	if target.Host == "" {
		return nil, ErrMissingHost
	}
	return target, nil
}

type headerRecorder struct {
	mutex  sync.Mutex
	fields header.List
}

func (r *headerRecorder) add(name string, values []string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, v := range values {
		r.fields.Add(name, v)
	}
}

func (r *headerRecorder) reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.fields = nil
}

func (r *headerRecorder) list() header.List {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	fields := make(header.List, len(r.fields))
	copy(fields, r.fields)
	return fields
}

func statusText(code int, status string) string {
	prefix := fmt.Sprintf("%d ", code)
	return strings.TrimPrefix(status, prefix)
}
