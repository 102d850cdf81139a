package kappaml

import (
	"context"
	"net/http"
	"strings"

	"github.com/kappaml/kappaml-go/pkg/errors"
)

// CreateModel creates a model named name for the given task type. By default
// it then waits up to 60s for the model to be deployed; see
// WithoutDeploymentWait and WithDeploymentTimeout. When the wait fails the
// returned ModelID is still set so the caller can inspect or delete the model.
func (c *client) CreateModel(ctx context.Context, name string, mlType MLType, opts ...CreateOption) (ModelID, error) {
	o := defaultCreateOptions().apply(opts...)

	if strings.TrimSpace(name) == "" {
		return "", errors.NewValidationError("name", name, "cannot be empty")
	}

	resp, err := c.transport.Do(ctx, http.MethodPost, createModelRequest{Name: name, MLType: mlType}, "models")
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		apiErr := errors.NewAPIError("create model", resp.StatusCode, resp.Text())
		apiErr.Endpoint = resp.Endpoint
		return "", apiErr
	}

	var created struct {
		ID ModelID `json:"id"`
	}
	if err := resp.Decode(&created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", errors.NewParseError("json", resp.Endpoint, "response has no model id", nil)
	}

	c.logger.Debug().
		Str("model_id", string(created.ID)).
		Str("name", name).
		Str("ml_type", string(mlType)).
		Msg("Model created")

	if o.wait {
		if err := c.WaitForDeployment(ctx, created.ID, o.timeout); err != nil {
			return created.ID, err
		}
	}

	return created.ID, nil
}

// GetModelStatus returns the deployment status of a model.
func (c *client) GetModelStatus(ctx context.Context, id ModelID) (Status, error) {
	resp, err := c.do(ctx, "get model status", http.MethodGet, id, nil)
	if err != nil {
		return "", err
	}

	var body struct {
		Status *Status `json:"status"`
	}
	if err := resp.Decode(&body); err != nil {
		return "", err
	}
	if body.Status == nil {
		return "", errors.NewParseError("json", resp.Endpoint, "response has no status", nil)
	}
	return *body.Status, nil
}

// GetModel returns the full description of a model.
func (c *client) GetModel(ctx context.Context, id ModelID) (*Model, error) {
	resp, err := c.do(ctx, "get model", http.MethodGet, id, nil)
	if err != nil {
		return nil, err
	}

	var model Model
	if err := resp.Decode(&model); err != nil {
		return nil, err
	}
	if model.ID == "" {
		model.ID = id
	}
	return &model, nil
}

// Learn sends one labelled observation to the model. The target is a number
// for regression or a label for classification. The response body is
// returned as decoded.
func (c *client) Learn(ctx context.Context, id ModelID, features Features, target any) (map[string]any, error) {
	resp, err := c.do(ctx, "learn", http.MethodPost, id, learnRequest{Features: features, Target: target}, "learn")
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}

// Predict returns the value of the "prediction" field of the response.
func (c *client) Predict(ctx context.Context, id ModelID, features Features) (any, error) {
	resp, err := c.do(ctx, "get prediction", http.MethodPost, id, predictRequest{Features: features}, "predict")
	if err != nil {
		return nil, err
	}

	var body map[string]any
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	prediction, ok := body["prediction"]
	if !ok {
		return nil, errors.NewParseError("json", resp.Endpoint, "response has no prediction", nil)
	}
	return prediction, nil
}

// GetMetrics returns the model's metrics as reported by the service.
func (c *client) GetMetrics(ctx context.Context, id ModelID) (map[string]any, error) {
	resp, err := c.do(ctx, "get metrics", http.MethodGet, id, nil, "metrics")
	if err != nil {
		return nil, err
	}

	var metrics map[string]any
	if err := resp.Decode(&metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// DeleteModel deletes a model.
func (c *client) DeleteModel(ctx context.Context, id ModelID) error {
	if _, err := c.do(ctx, "delete model", http.MethodDelete, id, nil); err != nil {
		return err
	}
	c.logger.Debug().Str("model_id", string(id)).Msg("Model deleted")
	return nil
}
