package kappaml

import (
	"context"
	"fmt"
	"time"

	"github.com/kappaml/kappaml-go/pkg/errors"
)

// WaitForDeployment checks the model status once per poll interval until it
// is Deployed (nil), Failed (a DeploymentError matching ErrDeploymentFailed)
// or timeout has elapsed (a DeploymentError matching ErrTimeout). Errors from
// the status check itself are returned as is. There is no backoff: each
// iteration is one status check followed by one sleep, and the last sleep is
// cut short at the deadline.
func (c *client) WaitForDeployment(ctx context.Context, id ModelID, timeout time.Duration) error {
	log := c.logger.With().Str("model_id", string(id)).Logger()

	start := time.Now()
	deadline := start.Add(timeout)
	var last Status
	checks := 0

	for time.Now().Before(deadline) {
		status, err := c.GetModelStatus(ctx, id)
		if err != nil {
			return err
		}
		checks++
		last = status

		switch status {
		case StatusDeployed:
			log.Debug().
				Int("checks", checks).
				Dur("elapsed", time.Since(start)).
				Msg("Model deployed")
			return nil
		case StatusFailed:
			return errors.NewDeploymentFailedError(string(id))
		}

		log.Debug().Str("status", string(status)).Msg("Waiting for deployment")

		wait := c.pollInterval
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
		if err := sleep(ctx, wait); err != nil {
			return fmt.Errorf("waiting for model %s deployment: %w", id, err)
		}
	}

	return errors.NewDeploymentTimeoutError(string(id), string(last), timeout)
}

// sleep blocks for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
