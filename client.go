// Package kappaml is a Go client for the KappaML online machine-learning
// platform. It creates, deploys, trains, queries and deletes hosted
// online-learning models over the KappaML HTTP API.
//
// All computation happens server-side; the client issues authenticated JSON
// requests, translates status codes into the errors in pkg/errors, and waits
// for asynchronous deployments to finish.
//
// Example usage:
//
//	client, err := kappaml.New() // reads KAPPAML_API_KEY
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Create a model and wait until it is deployed
//	id, err := client.CreateModel(ctx, "my-model", kappaml.MLTypeRegression)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Learn from one observation, then predict
//	_, err = client.Learn(ctx, id, kappaml.Features{"x1": 1, "x2": 2}, 3.5)
//	prediction, err := client.Predict(ctx, id, kappaml.Features{"x1": 1, "x2": 2})
//
//	// Inspect metrics
//	metrics, err := client.GetMetrics(ctx, id)
package kappaml

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kappaml/kappaml-go/internal/config"
	"github.com/kappaml/kappaml-go/internal/transport"
	"github.com/kappaml/kappaml-go/pkg/errors"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Deployer manages the lifecycle of hosted models.
type Deployer interface {
	// CreateModel creates a model and, unless disabled, waits for it to deploy.
	CreateModel(ctx context.Context, name string, mlType MLType, opts ...CreateOption) (ModelID, error)

	// WaitForDeployment polls the model status until it is Deployed, Failed,
	// or the timeout elapses.
	WaitForDeployment(ctx context.Context, id ModelID, timeout time.Duration) error

	// DeleteModel deletes a model.
	DeleteModel(ctx context.Context, id ModelID) error
}

// Inspector reads model state from the service.
type Inspector interface {
	// GetModelStatus returns the current deployment status of a model.
	GetModelStatus(ctx context.Context, id ModelID) (Status, error)

	// GetModel returns the full model description.
	GetModel(ctx context.Context, id ModelID) (*Model, error)

	// GetMetrics returns the current metrics of a model.
	GetMetrics(ctx context.Context, id ModelID) (map[string]any, error)
}

// Learner feeds observations to a model and queries it.
type Learner interface {
	// Learn sends one observation to the model's incremental learning endpoint.
	Learn(ctx context.Context, id ModelID, features Features, target any) (map[string]any, error)

	// Predict returns the model's prediction for the given features.
	Predict(ctx context.Context, id ModelID, features Features) (any, error)
}

// Client is a KappaML API client. It is safe for concurrent use and must be
// closed to release its HTTP connections.
type Client interface {
	Deployer
	Inspector
	Learner

	// Close releases the underlying HTTP connections. It is idempotent; after
	// the first call every operation fails with errors.ErrClientClosed.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	transport    *transport.Client
	logger       *zerolog.Logger
	pollInterval time.Duration
}

// New creates a Client. The API key comes from WithAPIKey, or else from the
// KAPPAML_API_KEY environment variable; New fails with a *errors.ConfigError
// when neither provides one.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	apiKey, err := config.ResolveAPIKey(o.apiKey)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	topts := []transport.Option{transport.WithLogger(logger)}
	if o.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(o.httpClient))
	}
	if o.httpClient == nil || o.timeoutSet {
		topts = append(topts, transport.WithTimeout(o.httpTimeout))
	}
	tc := transport.New(config.ResolveBaseURL(o.baseURL), apiKey, topts...)

	return &client{
		transport:    tc,
		logger:       logger,
		pollInterval: o.pollInterval,
	}, nil
}

// Session creates a Client, hands it to fn and closes it when fn returns,
// whether fn succeeded or not.
func Session(ctx context.Context, fn func(context.Context, Client) error, opts ...Option) (err error) {
	c, err := New(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(ctx, c)
}

// Close implements Client.
func (c *client) Close() error {
	return c.transport.Close()
}

// do issues a per-model request and maps 404 to a NotFoundError and any
// other non-200 status to an APIError carrying the response body.
func (c *client) do(ctx context.Context, op, method string, id ModelID, body any, suffix ...string) (*transport.Response, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, errors.NewValidationError("model_id", id, "cannot be empty")
	}

	segments := append([]string{"models", string(id)}, suffix...)
	resp, err := c.transport.Do(ctx, method, body, segments...)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusNotFound:
		return nil, errors.NewNotFoundError("model", string(id))
	default:
		apiErr := errors.NewAPIError(op, resp.StatusCode, resp.Text())
		apiErr.Endpoint = resp.Endpoint
		return nil, apiErr
	}
}
