// Package config loads and validates service configuration from struct
// defaults, an optional YAML file, and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

// envPrefix is the prefix for environment variable overrides
const envPrefix = "SEO_COPILOT_"

// Config holds all service configuration
type Config struct {
	// Server holds HTTP server settings
	Server Server `koanf:"server" json:"server"`
	// Analyzer holds page analysis settings
	Analyzer Analyzer `koanf:"analyzer" json:"analyzer"`
	// CORS holds the inbound origin allow-list
	CORS CORS `koanf:"cors" json:"cors"`
	// RateLimit holds analyze-endpoint throttling settings
	RateLimit RateLimit `koanf:"ratelimit" json:"ratelimit"`
	// Analytics holds the optional analytics webhook settings
	Analytics Analytics `koanf:"analytics" json:"analytics"`
}

// Server holds HTTP server settings
type Server struct {
	// Listen is the address the HTTP server binds to
	Listen string `koanf:"listen" json:"listen" default:":8090"`
	// ReadTimeout is the maximum duration for reading the request
	ReadTimeout time.Duration `koanf:"readtimeout" json:"readtimeout" default:"30s"`
	// WriteTimeout is the maximum duration for writing the response
	WriteTimeout time.Duration `koanf:"writetimeout" json:"writetimeout" default:"60s"`
	// ShutdownGracePeriod is how long in-flight requests get to finish on shutdown
	ShutdownGracePeriod time.Duration `koanf:"shutdowngraceperiod" json:"shutdowngraceperiod" default:"10s"`
	// MaxBodySize caps the size of inbound request bodies in bytes
	MaxBodySize int64 `koanf:"maxbodysize" json:"maxbodysize" default:"102400"`
	// Debug enables debug logging, set from the --debug flag
	Debug bool `koanf:"-" json:"-"`
	// Pretty enables human readable logging, set from the --pretty flag
	Pretty bool `koanf:"-" json:"-"`
}

// Analyzer holds page analysis settings
type Analyzer struct {
	// FetchTimeout bounds the outbound fetch of the target page
	FetchTimeout time.Duration `koanf:"fetchtimeout" json:"fetchtimeout" default:"30s"`
	// MaxResponseBytes caps the size of a fetched page body
	MaxResponseBytes int64 `koanf:"maxresponsebytes" json:"maxresponsebytes" default:"10485760"`
	// UserAgent is sent on outbound page fetches
	UserAgent string `koanf:"useragent" json:"useragent" default:"SEOCopilotBot/1.0"`
	// CheckConcurrency is the number of checks evaluated in parallel
	CheckConcurrency int `koanf:"checkconcurrency" json:"checkconcurrency" default:"8"`
}

// CORS holds the inbound origin allow-list
type CORS struct {
	// AllowedOrigins lists exact origins and single-label *.domain wildcards
	AllowedOrigins []string `koanf:"allowedorigins" json:"allowedorigins"`
}

// RateLimit holds analyze-endpoint throttling settings
type RateLimit struct {
	// RPS is the sustained number of analyze requests per second
	RPS float64 `koanf:"rps" json:"rps" default:"5"`
	// Burst is the maximum burst of analyze requests
	Burst int `koanf:"burst" json:"burst" default:"10"`
}

// Analytics holds the optional analytics webhook settings
type Analytics struct {
	// WebhookURL receives analysis outcome events, disabled when empty
	WebhookURL string `koanf:"webhookurl" json:"webhookurl" sensitive:"true"`
	// RequestTimeout bounds analytics webhook requests
	RequestTimeout time.Duration `koanf:"requesttimeout" json:"requesttimeout" default:"10s"`
}

// DefaultAllowedOrigins is applied when no allow-list is configured.
// go-defaults does not populate slice fields, so this lives in code.
var DefaultAllowedOrigins = []string{
	"https://webflow.com",
	"*.webflow-ext.com",
	"*.webflow.io",
	"http://localhost:1337",
	"http://localhost:5173",
}

// Load reads configuration from defaults, an optional YAML file, and
// SEO_COPILOT_* environment variables, in that order of precedence.
func Load(cfgFile *string) (*Config, error) {
	cfg := &Config{}
	defaults.SetDefaults(cfg)

	k := koanf.New(".")

	if cfgFile != nil && *cfgFile != "" {
		if _, err := os.Stat(*cfgFile); err == nil {
			if err := k.Load(file.Provider(*cfgFile), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyTransform), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = DefaultAllowedOrigins
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envKeyTransform maps SEO_COPILOT_SERVER_LISTEN to server.listen
func envKeyTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
}

// validate checks configuration invariants after loading
func (c *Config) validate() error {
	if c.Server.Listen == "" {
		return ErrListenRequired
	}

	if c.Server.MaxBodySize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxBodySize, c.Server.MaxBodySize)
	}

	if c.Analyzer.FetchTimeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidFetchTimeout, c.Analyzer.FetchTimeout)
	}

	if c.Analyzer.MaxResponseBytes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxResponseBytes, c.Analyzer.MaxResponseBytes)
	}

	if c.Analyzer.CheckConcurrency < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCheckConcurrency, c.Analyzer.CheckConcurrency)
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("%w: rps=%v burst=%d", ErrInvalidRateLimit, c.RateLimit.RPS, c.RateLimit.Burst)
	}

	return nil
}
