package errors_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	pkgerrors "github.com/kappaml/kappaml-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestConfigError(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		err := pkgerrors.NewConfigError("client", "API key must be provided", pkgerrors.ErrAPIKeyRequired)
		assert.Contains(t, err.Error(), "client")
		assert.Contains(t, err.Error(), "API key must be provided")
		assert.True(t, errors.Is(err, pkgerrors.ErrAPIKeyRequired))
		assert.True(t, pkgerrors.IsAPIKeyError(err))
		assert.True(t, pkgerrors.IsConfigError(err))
		assert.True(t, pkgerrors.IsKappaML(err))
	})

	t.Run("without component", func(t *testing.T) {
		err := &pkgerrors.ConfigError{Message: "bad base url"}
		assert.Equal(t, "configuration error: bad base url", err.Error())
	})
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("model", "m-123")
		assert.Equal(t, "model m-123 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
		assert.True(t, pkgerrors.IsKappaML(err))
		assert.False(t, pkgerrors.IsAPIError(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("learn: %w", pkgerrors.NewNotFoundError("model", "m-1"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestDeploymentError(t *testing.T) {
	t.Run("failed", func(t *testing.T) {
		err := pkgerrors.NewDeploymentFailedError("m-1")
		assert.Equal(t, "model m-1 deployment failed", err.Error())
		assert.True(t, pkgerrors.IsDeploymentFailed(err))
		assert.False(t, pkgerrors.IsTimeout(err))
		assert.True(t, pkgerrors.IsKappaML(err))
	})

	t.Run("timed out", func(t *testing.T) {
		err := pkgerrors.NewDeploymentTimeoutError("m-2", "Pending", time.Second)
		assert.Contains(t, err.Error(), "m-2")
		assert.Contains(t, err.Error(), "timed out after 1s")
		assert.Contains(t, err.Error(), "Pending")
		assert.True(t, pkgerrors.IsTimeout(err))
		assert.False(t, pkgerrors.IsDeploymentFailed(err))
	})

	t.Run("as", func(t *testing.T) {
		var de *pkgerrors.DeploymentError
		err := fmt.Errorf("create: %w", pkgerrors.NewDeploymentTimeoutError("m-3", "", time.Minute))
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "m-3", de.ModelID)
		assert.NotContains(t, de.Error(), "last status")
	})
}

func TestAPIError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := pkgerrors.NewAPIError("create model", 400, `{"detail":"bad ml_type"}`)
		assert.Contains(t, err.Error(), "create model")
		assert.Contains(t, err.Error(), "400")
		assert.Contains(t, err.Error(), "bad ml_type")
		assert.True(t, pkgerrors.IsAPIError(err))
		assert.True(t, pkgerrors.IsKappaML(err))
		assert.False(t, pkgerrors.IsNotFound(err))
	})

	t.Run("status classes", func(t *testing.T) {
		assert.True(t, errors.Is(pkgerrors.NewAPIError("", 401, ""), pkgerrors.ErrUnauthorized))
		assert.True(t, errors.Is(pkgerrors.NewAPIError("", 503, ""), pkgerrors.ErrServiceUnavailable))
		assert.False(t, errors.Is(pkgerrors.NewAPIError("", 400, ""), pkgerrors.ErrServiceUnavailable))
	})

	t.Run("wrapped transport error", func(t *testing.T) {
		base := errors.New("connection refused")
		err := pkgerrors.WrapAPI("predict", "https://api.kappaml.com/v1/models/x/predict", base)
		var apiErr *pkgerrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, base, apiErr.Unwrap())
		assert.Equal(t, "failed to predict: connection refused", apiErr.Error())
		assert.Nil(t, pkgerrors.WrapAPI("predict", "", nil))
	})
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("name", "", "cannot be empty")
	assert.Equal(t, "validation failed for field name: cannot be empty", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.False(t, pkgerrors.IsKappaML(err))
}

func TestParseAndIOErrors(t *testing.T) {
	base := errors.New("unexpected EOF")

	parseErr := pkgerrors.WrapParse("json", "create model response", base)
	assert.Contains(t, parseErr.Error(), "json parse error in create model response")
	assert.True(t, errors.Is(parseErr, base))
	assert.Nil(t, pkgerrors.WrapParse("json", "", nil))

	ioErr := pkgerrors.WrapIO("read", "response body", base)
	assert.Contains(t, ioErr.Error(), "IO error during read of response body")
	assert.True(t, errors.Is(ioErr, base))
	assert.Nil(t, pkgerrors.WrapIO("read", "", nil))
}
