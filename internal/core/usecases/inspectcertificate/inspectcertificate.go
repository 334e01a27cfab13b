package inspectcertificate

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sergeii/toolbelt/internal/core/entities/dname"
	"github.com/sergeii/toolbelt/internal/core/entities/probe"
	"github.com/sergeii/toolbelt/internal/core/entities/report"
	"github.com/sergeii/toolbelt/internal/metrics"
	"github.com/sergeii/toolbelt/internal/validation"
)

const defaultPort = 443

var (
	ErrInvalidURL        = errors.New("invalid url")
	ErrInvalidPort       = errors.New("invalid port number")
	ErrNoPeerCertificate = errors.New("peer presented no certificate")
)

type Request struct {
	URL string `name:"url" validate:"required,absurl"`
}

type Opts struct {
	DefaultPort int
	// Timeout bounds dialing and the handshake, zero means no limit
	Timeout time.Duration
	// RootCAs is the trust store for verification, nil means the system pool
	RootCAs *x509.CertPool
}

type UseCase struct {
	validate *validator.Validate
	metrics  *metrics.Collector
	clock    clockwork.Clock
	opts     Opts
	logger   *zerolog.Logger
}

func New(
	validate *validator.Validate,
	metrics *metrics.Collector,
	clock clockwork.Clock,
	opts Opts,
	logger *zerolog.Logger,
) UseCase {
	if opts.DefaultPort == 0 {
		opts.DefaultPort = defaultPort
	}
	return UseCase{
		validate: validate,
		metrics:  metrics,
		clock:    clock,
		opts:     opts,
		logger:   logger,
	}
}

// IsExpired reports whether a certificate with the given expiry is no longer valid at now.
// A missing expiry is never treated as valid.
func IsExpired(validTo, now time.Time) bool {
	return validTo.IsZero() || validTo.Before(now)
}

// Execute connects to the host of the url, completes a TLS handshake and then
// verifies the presented chain against the trust store for that host.
func (uc UseCase) Execute(ctx context.Context, req Request) (_ report.Certificate, err error) {
	defer func(started time.Time) {
		uc.metrics.ObserveProbe(probe.Certificate, uc.clock.Since(started), err)
	}(uc.clock.Now())

	if validateErr := uc.validate.Struct(req); validateErr != nil {
		return report.Certificate{}, validation.RequestError(validateErr)
	}

	host, port, err := parseTarget(req.URL, uc.opts.DefaultPort)
	if err != nil {
		return report.Certificate{}, err
	}

	chain, err := uc.handshake(ctx, host, port)
	if err != nil {
		uc.logger.Info().
			Err(err).Str("host", host).Int("port", port).
			Msg("Failed to fetch certificate")
		return report.Certificate{}, probe.NewError(
			probe.TransportError,
			fmt.Sprintf("Error fetching SSL certificate. Reason: %s", err),
			err,
		).WithReason(err.Error())
	}

	now := uc.clock.Now()
	leaf := chain[0]
	if verifyErr := uc.verify(chain, host, now); verifyErr != nil {
		uc.logger.Info().
			Err(verifyErr).Str("host", host).Int("port", port).
			Msg("Certificate verification failed")
		return report.Certificate{}, probe.NewError(
			probe.VerificationError,
			"Certificate verification failed.",
			verifyErr,
		).WithReason(verifyErr.Error())
	}

	cert := report.Certificate{
		Host:      host,
		Port:      port,
		ValidFrom: leaf.NotBefore,
		ValidTo:   leaf.NotAfter,
		Issuer:    dname.FromPKIX(leaf.Issuer),
		Subject:   dname.FromPKIX(leaf.Subject),
		Expired:   IsExpired(leaf.NotAfter, now),
	}

	uc.logger.Debug().
		Str("host", host).Int("port", port).
		Time("until", cert.ValidTo).Bool("expired", cert.Expired).
		Msg("Certificate inspected")

	return cert, nil
}

func (uc UseCase) handshake(ctx context.Context, host string, port int) ([]*x509.Certificate, error) {
	if uc.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.Timeout)
		defer cancel()
	}

	dialer := &tls.Dialer{
		Config: &tls.Config{
			ServerName: host,
			// the chain is verified explicitly afterwards,
			// so that a bad certificate is told apart from a failed connection
			InsecureSkipVerify: true, // nolint: gosec
			MinVersion:         tls.VersionTLS12,
		},
	}

	uc.metrics.ProbeRequests.WithLabelValues(probe.Certificate.String()).Inc()
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return nil, fmt.Errorf("unexpected connection type %T", conn)
	}

	chain := tlsConn.ConnectionState().PeerCertificates
	if len(chain) == 0 {
		return nil, ErrNoPeerCertificate
	}

	return chain, nil
}

func (uc UseCase) verify(chain []*x509.Certificate, host string, now time.Time) error {
	intermediates := x509.NewCertPool()
	for _, cert := range chain[1:] {
		intermediates.AddCert(cert)
	}
	_, err := chain[0].Verify(x509.VerifyOptions{
		DNSName:       host,
		Roots:         uc.opts.RootCAs,
		Intermediates: intermediates,
		CurrentTime:   now,
	})
	return err
}

func parseTarget(rawURL string, defaultPort int) (string, int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", 0, invalidURL(err)
	}

	host := u.Hostname()
	if host == "" {
		return "", 0, invalidURL(fmt.Errorf("%w: no host in %q", ErrInvalidURL, rawURL))
	}

	port := defaultPort
	if rawPort := u.Port(); rawPort != "" {
		port, err = strconv.Atoi(rawPort)
		if err != nil {
			return "", 0, invalidPort(fmt.Errorf("%w: %w", ErrInvalidPort, err))
		}
	}

	if port <= 0 || port >= 65536 {
		return "", 0, invalidPort(fmt.Errorf("%w: %d", ErrInvalidPort, port))
	}

	return host, port, nil
}

func invalidURL(cause error) *probe.Error {
	if !errors.Is(cause, ErrInvalidURL) {
		cause = fmt.Errorf("%w: %w", ErrInvalidURL, cause)
	}
	return probe.NewError(
		probe.RequestError,
		fmt.Sprintf("Failed to fetch SSL details. Reason: %s", cause),
		cause,
	)
}

func invalidPort(cause error) *probe.Error {
	return probe.NewError(probe.RequestError, "Invalid port number.", cause)
}
