package glmock

import (
	"log/slog"
	"maps"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultProjectID is the project every new Client starts with.
const DefaultProjectID = "testid"

// Config holds the connection parameters accepted by the real client. They
// are stored verbatim and never validated or used for authentication.
type Config struct {
	URL                  string  `toml:"url" yaml:"url"`
	PrivateToken         string  `toml:"private_token" yaml:"private_token"`
	JobToken             string  `toml:"job_token" yaml:"job_token"`
	OAuthToken           string  `toml:"oauth_token" yaml:"oauth_token"`
	HTTPUsername         string  `toml:"http_username" yaml:"http_username"`
	HTTPPassword         string  `toml:"http_password" yaml:"http_password"`
	APIVersion           string  `toml:"api_version" yaml:"api_version"`
	UserAgent            string  `toml:"user_agent" yaml:"user_agent"`
	Timeout              float64 `toml:"timeout" yaml:"timeout"`
	PerPage              int     `toml:"per_page" yaml:"per_page"`
	SSLVerify            *bool   `toml:"ssl_verify" yaml:"ssl_verify"`
	RetryTransientErrors bool    `toml:"retry_transient_errors" yaml:"retry_transient_errors"`

	// Extra keeps options the fields above do not cover.
	Extra map[string]any `toml:"extra" yaml:"extra"`
}

func (c Config) clone() Config {
	out := c
	if c.SSLVerify != nil {
		v := *c.SSLVerify
		out.SSLVerify = &v
	}
	if c.Extra != nil {
		out.Extra = maps.Clone(c.Extra)
	}
	return out
}

// Client stands in for the GitLab API client.
type Client struct {
	cfg Config
	env *environment

	Projects *ResourceManager[*Project]
}

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

type Option func(*options)

// WithLogger sets the logger used for debug output. Logs are discarded by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer enables operation counters registered on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// NewClient returns a Client whose projects registry already holds
// DefaultProjectID.
func NewClient(cfg Config, opts ...Option) *Client {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	env := &environment{
		url:     cfg.URL,
		logger:  o.logger,
		metrics: newMetrics(o.registerer, o.logger),
	}
	c := &Client{
		cfg:      cfg.clone(),
		env:      env,
		Projects: newResourceManager(env, kindProjects, kindProjects, projectBuilder(env)),
	}
	c.Projects.Create(DefaultProjectID)

	return c
}

// Config returns a copy of the parameters the Client was built with.
func (c *Client) Config() Config {
	return c.cfg.clone()
}

// URL returns the configured base URL.
func (c *Client) URL() string {
	return c.cfg.URL
}
