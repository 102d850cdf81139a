// Package models provides the commands that manage hosted models.
package models

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/internal/cmd/output"
)

// AppContext defines the interface that model commands need from the app.
type AppContext interface {
	Client() (kappaml.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the models command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "models [command]",
		GroupID: "core",
		Aliases: []string{"model"},
		Short:   "Create, inspect and delete hosted models",
		Long: `Manage models hosted on KappaML.

Available subcommands:
  create    - Create a model and wait for it to be deployed
  status    - Show the deployment status of a model
  get       - Show a model's full description
  metrics   - Show a model's current metrics
  delete    - Delete a model`,
		Example: `  kappaml models create sales --type regression
  kappaml models status 3f2a...
  kappaml models metrics 3f2a... -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown command: %s", args[0])
		},
	}

	cmd.AddCommand(NewCreateCommand(app))
	cmd.AddCommand(NewStatusCommand(app))
	cmd.AddCommand(NewGetCommand(app))
	cmd.AddCommand(NewMetricsCommand(app))
	cmd.AddCommand(NewDeleteCommand(app))

	return cmd
}

func write(cmd *cobra.Command, app AppContext, data any) error {
	return output.Write(cmd.OutOrStdout(), app.OutputFormat(), data)
}
