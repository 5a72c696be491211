package cloudwatch

import (
	"errors"
	"net/http"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Config defines the configuration for a Client
type Config struct {
	// Service endpoint and API version sent as the Version parameter
	Endpoint       string
	APIVersion     string
	RequestTimeout time.Duration

	// Optional logger
	Logger *zap.Logger

	// Optional request signer and transport override. When Transport is set,
	// Endpoint, RequestTimeout, Signer and the DNS options are not used.
	Signer    Signer
	Transport Transport

	// DNS resolver options for the endpoint host (optional)
	DNSEnable     bool
	DNSCacheTTL   time.Duration
	DNSTimeout    time.Duration
	DNSUDPServers []string // e.g. ["1.1.1.1:53", "8.8.8.8:53"]
	DNSTLSServers []string // e.g. ["1.1.1.1:853", "9.9.9.9:853"]

	// Client instrumentation pushed via Prometheus remote write (optional)
	MetricsRemoteWriteURL string
	MetricsInterval       time.Duration
	MetricsNamespace      string
}

const (
	DefaultEndpoint   = "https://monitoring.amazonaws.com/"
	DefaultAPIVersion = "2010-08-01"
)

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:         DefaultEndpoint,
		APIVersion:       DefaultAPIVersion,
		RequestTimeout:   30 * time.Second,
		DNSCacheTTL:      10 * time.Minute,
		DNSTimeout:       800 * time.Millisecond,
		MetricsInterval:  15 * time.Second,
		MetricsNamespace: "cloudwatch_client",
	}
}

// envConfig mirrors the env-settable part of Config.
type envConfig struct {
	Endpoint       string        `env:"CLOUDWATCH_ENDPOINT,default=https://monitoring.amazonaws.com/"`
	APIVersion     string        `env:"CLOUDWATCH_API_VERSION,default=2010-08-01"`
	RequestTimeout time.Duration `env:"CLOUDWATCH_REQUEST_TIMEOUT,default=30s"`

	DNSEnable     bool          `env:"CLOUDWATCH_DNS_ENABLE,default=false"`
	DNSCacheTTL   time.Duration `env:"CLOUDWATCH_DNS_CACHE_TTL,default=10m"`
	DNSTimeout    time.Duration `env:"CLOUDWATCH_DNS_TIMEOUT,default=800ms"`
	DNSUDPServers []string      `env:"CLOUDWATCH_DNS_UDP_SERVERS"`
	DNSTLSServers []string      `env:"CLOUDWATCH_DNS_TLS_SERVERS"`

	MetricsRemoteWriteURL string        `env:"CLOUDWATCH_METRICS_REMOTE_WRITE_URL"`
	MetricsInterval       time.Duration `env:"CLOUDWATCH_METRICS_INTERVAL,default=15s"`
	MetricsNamespace      string        `env:"CLOUDWATCH_METRICS_NAMESPACE,default=cloudwatch_client"`
}

// ConfigFromEnv builds a Config from CLOUDWATCH_* environment variables.
// List variables are separated by ';'.
func ConfigFromEnv() (Config, error) {
	var ec envConfig
	if err := envdecode.Decode(&ec); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, eris.Wrap(err, "decoding cloudwatch config from environment")
	}

	cfg := DefaultConfig()
	cfg.Endpoint = pickString(ec.Endpoint, cfg.Endpoint)
	cfg.APIVersion = pickString(ec.APIVersion, cfg.APIVersion)
	cfg.RequestTimeout = pickDuration(ec.RequestTimeout, cfg.RequestTimeout)
	cfg.DNSEnable = ec.DNSEnable
	cfg.DNSCacheTTL = pickDuration(ec.DNSCacheTTL, cfg.DNSCacheTTL)
	cfg.DNSTimeout = pickDuration(ec.DNSTimeout, cfg.DNSTimeout)
	cfg.DNSUDPServers = ec.DNSUDPServers
	cfg.DNSTLSServers = ec.DNSTLSServers
	cfg.MetricsRemoteWriteURL = ec.MetricsRemoteWriteURL
	cfg.MetricsInterval = pickDuration(ec.MetricsInterval, cfg.MetricsInterval)
	cfg.MetricsNamespace = pickString(ec.MetricsNamespace, cfg.MetricsNamespace)
	return cfg, nil
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	c.Endpoint = pickString(c.Endpoint, def.Endpoint)
	c.APIVersion = pickString(c.APIVersion, def.APIVersion)
	c.RequestTimeout = pickDuration(c.RequestTimeout, def.RequestTimeout)
	c.DNSCacheTTL = pickDuration(c.DNSCacheTTL, def.DNSCacheTTL)
	c.DNSTimeout = pickDuration(c.DNSTimeout, def.DNSTimeout)
	c.MetricsInterval = pickDuration(c.MetricsInterval, def.MetricsInterval)
	c.MetricsNamespace = pickString(c.MetricsNamespace, def.MetricsNamespace)
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Signer adds authentication to an outbound request before it is sent.
type Signer interface {
	Sign(req *http.Request, params *ParameterMap) error
}

// SignerFunc adapts a function to Signer.
type SignerFunc func(req *http.Request, params *ParameterMap) error

func (f SignerFunc) Sign(req *http.Request, params *ParameterMap) error {
	return f(req, params)
}

func pickDuration(v time.Duration, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func pickString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
