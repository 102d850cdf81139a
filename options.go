package kappaml

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kappaml/kappaml-go/pkg/constants"
	"github.com/kappaml/kappaml-go/pkg/errors"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

// Option is a function that configures a Client
type Option func(*options) error

// options holds the client configuration built from Option values.
type options struct {
	apiKey       string
	baseURL      string
	httpTimeout  time.Duration
	timeoutSet   bool
	httpClient   *http.Client
	pollInterval time.Duration
	logger       *zerolog.Logger
}

// defaults returns the configuration used when no options are given.
func defaults() *options {
	return &options{
		httpTimeout:  constants.DefaultHTTPTimeout,
		pollInterval: constants.DeploymentPollInterval,
		logger:       logging.Default(),
	}
}

// apply applies the given options, stopping at the first failing one.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithAPIKey sets the API key explicitly. Without it the key is read from
// the KAPPAML_API_KEY environment variable.
func WithAPIKey(apiKey string) Option {
	return func(o *options) error {
		o.apiKey = apiKey
		return nil
	}
}

// WithBaseURL points the client at a different API endpoint, such as a
// staging deployment or a kappamltest server.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return errors.NewValidationError("base_url", url, "cannot be empty")
		}
		o.baseURL = url
		return nil
	}
}

// WithHTTPTimeout configures the per-request timeout (default 30s)
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return errors.NewValidationError("http_timeout", timeout, "must be positive")
		}
		o.httpTimeout = timeout
		o.timeoutSet = true
		return nil
	}
}

// WithHTTPClient supplies the *http.Client used for requests. The client
// works on a copy: hc keeps its own Timeout unless WithHTTPTimeout is also
// given, and Close does not touch hc's connection pool.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithPollInterval configures the delay between deployment status checks (default 5s)
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval <= 0 {
			return errors.NewValidationError("poll_interval", interval, "must be positive")
		}
		o.pollInterval = interval
		return nil
	}
}

// WithLogger sets the logger used for debug request traces
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// CreateOption configures a single CreateModel call.
type CreateOption func(*createOptions)

type createOptions struct {
	wait    bool
	timeout time.Duration
}

func defaultCreateOptions() *createOptions {
	return &createOptions{
		wait:    true,
		timeout: constants.DefaultDeploymentTimeout,
	}
}

func (o *createOptions) apply(opts ...CreateOption) *createOptions {
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithDeploymentWait configures whether CreateModel blocks until the model is deployed (default true)
func WithDeploymentWait(wait bool) CreateOption {
	return func(o *createOptions) {
		o.wait = wait
	}
}

// WithoutDeploymentWait makes CreateModel return as soon as the model is created.
func WithoutDeploymentWait() CreateOption {
	return WithDeploymentWait(false)
}

// WithDeploymentTimeout configures how long CreateModel waits for deployment (default 60s)
func WithDeploymentTimeout(timeout time.Duration) CreateOption {
	return func(o *createOptions) {
		o.timeout = timeout
	}
}
