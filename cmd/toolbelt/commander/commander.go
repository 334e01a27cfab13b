package commander

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sergeii/toolbelt/cmd/toolbelt/build"
)

type Globals struct {
	LogLevel  string `default:"info"    enum:"debug,info,warn,error"     env:"TOOLBELT_LOG_LEVEL"  help:"Sets the minimum severity level for log messages"` // nolint:lll
	LogOutput string `default:"console" enum:"console,stdout,stderr,json" env:"TOOLBELT_LOG_OUTPUT" help:"Specifies the format for log output"`                // nolint:lll

	HTTPTimeout    time.Duration `default:"0s"       help:"Bounds every probe request, 0 waits for as long as the remote end takes. Keep it below the API write timeout"` // nolint:lll
	HeadersTimeout time.Duration `default:"5s"       help:"Bounds the request issued when fetching headers"`                          // nolint:lll
	MaxBodySize    int64         `default:"10485760" help:"Limits the number of response body bytes kept by a probe"`                  // nolint:lll

	RateLimitCount int `default:"5" help:"Sets the number of requests sent by a rate limit test when no count is given"` // nolint:lll

	CertificatePort    int           `default:"443" help:"Sets the port used for certificate inspection when the url has none"` // nolint:lll
	CertificateTimeout time.Duration `default:"10s" help:"Bounds the connection and handshake of a certificate inspection"`      // nolint:lll

	DNSTimeout time.Duration `default:"5s" help:"Bounds forward and reverse DNS lookups, 0 leaves them to the resolver"` // nolint:lll

	ExporterHTTPListenAddress   string        `default:":9000"    env:"TOOLBELT_EXPORTER_ADDRESS" help:"Sets the address where the Prometheus exporter server listens for requests"` // nolint:lll
	ExporterHTTPMetricsPath     string        `default:"/metrics" help:"Sets the path metrics are served under"`                                                                     // nolint:lll
	ExporterHTTPReadTimeout     time.Duration `default:"5s"       help:"Sets the maximum duration to read the request before timing out"`                                            // nolint:lll
	ExporterHTTPWriteTimeout    time.Duration `default:"5s"       help:"Sets the maximum duration to write a response before timing out"`                                            // nolint:lll
	ExporterHTTPShutdownTimeout time.Duration `default:"10s"      help:"The amount of time the server will wait gracefully closing connections before exiting"`                      // nolint:lll
}

type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	version := fmt.Sprintf("Version: %s (%s) built at %s", build.Version, build.Commit, build.Time)
	fmt.Println(version) // nolint: forbidigo
	return nil
}

type RunCmd struct {
	kong.Plugins
}

type CLI struct {
	Globals

	Version VersionCmd `cmd:"" help:"Display the app version and exit"`
	Run     RunCmd     `cmd:""`
}
