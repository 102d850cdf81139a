package models

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/pkg/constants"
	"github.com/kappaml/kappaml-go/pkg/errors"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

// NewCreateCommand creates the models create subcommand.
func NewCreateCommand(app AppContext) *cobra.Command {
	var (
		mlType  string
		noWait  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a model",
		Long: `Create a model and, unless --no-wait is given, wait until the service
reports it as Deployed. The model id is printed even when the wait fails,
so the model can be inspected or deleted afterwards.`,
		Args: cobra.ExactArgs(1),
		Example: `  kappaml models create sales --type regression
  kappaml models create churn --type classification --timeout 2m
  kappaml models create draft --type regression --no-wait`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			name := args[0]
			ctx := logging.WithOperation(cmd.Context(), "create")
			logger := logging.FromContext(ctx)

			if !noWait && timeout <= 0 {
				return errors.NewValidationError("timeout", timeout, "must be positive")
			}
			opts := []kappaml.CreateOption{
				kappaml.WithDeploymentWait(!noWait),
				kappaml.WithDeploymentTimeout(timeout),
			}

			if !noWait {
				logger.Info().Str("name", name).Dur("timeout", timeout).Msg("Creating model and waiting for deployment")
			}

			id, err := client.CreateModel(ctx, name, kappaml.MLType(mlType), opts...)
			if err != nil {
				if id != "" {
					_ = write(cmd, app, map[string]any{"id": id.String(), "name": name, "ml_type": mlType})
					return fmt.Errorf("model %s: %w", id, err)
				}
				return err
			}

			result := map[string]any{
				"id":      id.String(),
				"name":    name,
				"ml_type": mlType,
			}
			if !noWait {
				result["status"] = kappaml.StatusDeployed.String()
			}
			return write(cmd, app, result)
		},
	}

	cmd.Flags().StringVarP(&mlType, "type", "t", string(kappaml.MLTypeRegression), "ML task type (regression, classification, ...)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Return as soon as the model is created")
	cmd.Flags().DurationVar(&timeout, "timeout", constants.DefaultDeploymentTimeout, "How long to wait for deployment")

	return cmd
}
