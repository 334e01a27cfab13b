package testutils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"math/big"
	"net"
	"sync"
	"time"
)

type CertOpts struct {
	NotBefore   time.Time
	NotAfter    time.Time
	CommonName  string
	DNSNames    []string
	IPAddresses []net.IP
}

type TestCertificates struct {
	CA   *x509.Certificate
	Pool *x509.CertPool
	Leaf tls.Certificate
}

// DefaultCertOpts describe a leaf valid from 2020-01-01 to 2099-01-01 for localhost.
func DefaultCertOpts() CertOpts {
	return CertOpts{
		NotBefore:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		NotAfter:    time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
		CommonName:  "localhost",
		DNSNames:    []string{"localhost"},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
	}
}

// GenerateCertificates issues a throwaway CA and a server leaf signed by it.
func GenerateCertificates(opts CertOpts) TestCertificates {
	caKey := Must(ecdsa.GenerateKey(elliptic.P256(), rand.Reader))
	caTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Country:      []string{"US"},
			Organization: []string{"Toolbelt"},
			CommonName:   "Toolbelt Test CA",
		},
		NotBefore:             time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		NotAfter:              time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	caDER := Must(x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, &caKey.PublicKey, caKey))
	ca := Must(x509.ParseCertificate(caDER))

	leafKey := Must(ecdsa.GenerateKey(elliptic.P256(), rand.Reader))
	leafTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject: pkix.Name{
			Organization: []string{"Toolbelt Test"},
			CommonName:   opts.CommonName,
		},
		NotBefore:   opts.NotBefore,
		NotAfter:    opts.NotAfter,
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:    opts.DNSNames,
		IPAddresses: opts.IPAddresses,
	}
	leafDER := Must(x509.CreateCertificate(rand.Reader, leafTmpl, ca, &leafKey.PublicKey, caKey))

	pool := x509.NewCertPool()
	pool.AddCert(ca)

	return TestCertificates{
		CA:   ca,
		Pool: pool,
		Leaf: tls.Certificate{
			Certificate: [][]byte{leafDER},
			PrivateKey:  leafKey,
		},
	}
}

// ServeTLS accepts TLS connections with the given certificate until closed.
// It returns the listen address, e.g. "127.0.0.1:54321".
func ServeTLS(cert tls.Certificate) (string, func()) {
	listener := Must(tls.Listen("tcp", "127.0.0.1:0", &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer conn.Close()
				if tlsConn, ok := conn.(*tls.Conn); ok {
					if err := tlsConn.Handshake(); err != nil {
						return
					}
				}
				io.Copy(io.Discard, conn) // nolint: errcheck
			}()
		}
	}()

	return listener.Addr().String(), func() {
		Ignore(listener.Close())
		wg.Wait()
	}
}
