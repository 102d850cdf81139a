package models

import (
	"github.com/spf13/cobra"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

// NewStatusCommand creates the models status subcommand.
func NewStatusCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status MODEL_ID",
		Short: "Show the deployment status of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			id := kappaml.ModelID(args[0])

			status, err := client.GetModelStatus(logging.WithModel(cmd.Context(), args[0]), id)
			if err != nil {
				return err
			}
			return write(cmd, app, map[string]any{
				"id":     id.String(),
				"status": status.String(),
			})
		},
	}
}

// NewGetCommand creates the models get subcommand.
func NewGetCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get MODEL_ID",
		Short: "Show a model's full description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			model, err := client.GetModel(logging.WithModel(cmd.Context(), args[0]), kappaml.ModelID(args[0]))
			if err != nil {
				return err
			}
			return write(cmd, app, modelView(model))
		},
	}
}

// NewMetricsCommand creates the models metrics subcommand.
func NewMetricsCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics MODEL_ID",
		Short: "Show a model's current metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			metrics, err := client.GetMetrics(logging.WithModel(cmd.Context(), args[0]), kappaml.ModelID(args[0]))
			if err != nil {
				return err
			}
			return write(cmd, app, metrics)
		},
	}
}

// NewDeleteCommand creates the models delete subcommand.
func NewDeleteCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete MODEL_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a model",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			ctx := logging.WithModel(cmd.Context(), args[0])
			if err := client.DeleteModel(ctx, kappaml.ModelID(args[0])); err != nil {
				return err
			}
			logging.FromContext(ctx).Info().Msg("Model deleted")
			return write(cmd, app, map[string]any{
				"id":      args[0],
				"deleted": true,
			})
		},
	}
}

// modelView flattens a model and its extra fields for output.
func modelView(m *kappaml.Model) map[string]any {
	view := make(map[string]any, len(m.Extra)+4)
	for k, v := range m.Extra {
		view[k] = v
	}
	view["id"] = m.ID.String()
	view["status"] = m.Status.String()
	if m.Name != "" {
		view["name"] = m.Name
	}
	if m.MLType != "" {
		view["ml_type"] = string(m.MLType)
	}
	return view
}
