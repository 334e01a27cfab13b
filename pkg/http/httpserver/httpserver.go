package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultShutdownTimeout = time.Second * 30
	defaultReadTimeout     = time.Second * 30
	defaultWriteTimeout    = time.Second * 60
)

var ErrNotListening = errors.New("http server is not listening")

type serverConfig struct {
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	handler         http.Handler
	errorLog        *log.Logger
}

type HTTPServer struct {
	addr          *net.TCPAddr
	server        *http.Server
	cfg           *serverConfig
	closer        chan struct{}
	closeOnce     sync.Once
	readyCallback func(net.Addr)

	mu       sync.Mutex
	listener *net.TCPListener
}

type Option func(*HTTPServer) error

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *HTTPServer) error {
		if timeout > 0 {
			s.cfg.shutdownTimeout = timeout
		}
		return nil
	}
}

func WithReadTimeout(timeout time.Duration) Option {
	return func(s *HTTPServer) error {
		if timeout > 0 {
			s.cfg.readTimeout = timeout
		}
		return nil
	}
}

// WithWriteTimeout must leave enough room for the slowest probe,
// otherwise the response of a long latency run is cut off.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *HTTPServer) error {
		if timeout > 0 {
			s.cfg.writeTimeout = timeout
		}
		return nil
	}
}

func WithHandler(handler http.Handler) Option {
	return func(s *HTTPServer) error {
		s.cfg.handler = handler
		return nil
	}
}

// WithLogger routes net/http internal errors (tls handshakes, broken connections) into zerolog
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *HTTPServer) error {
		errLogger := logger.With().Str("component", "httpserver").Logger()
		s.cfg.errorLog = log.New(errorLogWriter{&errLogger}, "", 0)
		return nil
	}
}

type errorLogWriter struct {
	logger *zerolog.Logger
}

func (w errorLogWriter) Write(p []byte) (int, error) {
	w.logger.Warn().Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}

func WithReadySignal(cb func(net.Addr)) Option {
	return func(s *HTTPServer) error {
		s.readyCallback = cb
		return nil
	}
}

func New(addr string, opts ...Option) (*HTTPServer, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("http server: resolve %s: %w", addr, err)
	}
	cfg := &serverConfig{
		writeTimeout:    defaultWriteTimeout,
		readTimeout:     defaultReadTimeout,
		shutdownTimeout: defaultShutdownTimeout,
	}
	server := &HTTPServer{
		addr:   tcpAddr,
		cfg:    cfg,
		closer: make(chan struct{}),
	}
	for _, opt := range opts {
		if optErr := opt(server); optErr != nil {
			return nil, optErr
		}
	}
	server.server = &http.Server{
		Addr:              addr,
		Handler:           cfg.handler,
		ReadTimeout:       cfg.readTimeout,
		ReadHeaderTimeout: cfg.readTimeout,
		WriteTimeout:      cfg.writeTimeout,
		ErrorLog:          cfg.errorLog,
	}
	return server, nil
}

func (s *HTTPServer) ListenAndServe() error {
	fatal := make(chan error, 1)

	listener, err := net.ListenTCP("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	defer listener.Close()

	// signal to any possible watchers that we are ready to listen
	if s.readyCallback != nil {
		s.readyCallback(listener.Addr())
	}

	go func() {
		if err := s.server.Serve(listener); err != nil {
			fatal <- err
		}
	}()

	select {
	case err := <-fatal:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-s.closer:
		return nil
	}
}

func (s *HTTPServer) ListenAddr() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil, ErrNotListening
	}
	return s.listener.Addr(), nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.closer)
	})
	stopCtx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(stopCtx); err != nil {
		return fmt.Errorf("http server: shutdown %s: %w", s.addr, err)
	}
	return nil
}
