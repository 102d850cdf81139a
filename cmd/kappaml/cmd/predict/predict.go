// Package predict provides the command that queries a model.
package predict

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/internal/cmd/features"
	"github.com/kappaml/kappaml-go/internal/cmd/output"
	"github.com/kappaml/kappaml-go/pkg/errors"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

// AppContext defines the interface that the predict command needs from the app.
type AppContext interface {
	Client() (kappaml.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the predict command.
func NewCommand(app AppContext) *cobra.Command {
	var (
		featureList string
		featureJSON string
	)

	cmd := &cobra.Command{
		Use:     "predict MODEL_ID",
		GroupID: "core",
		Short:   "Get a model's prediction for a set of features",
		Args:    cobra.ExactArgs(1),
		Example: `  kappaml predict 3f2a... --features x1=1.5,x2=3
  kappaml predict 3f2a... --features-json '{"x1":1.5}' -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				feats kappaml.Features
				err   error
			)
			switch {
			case featureJSON != "":
				feats, err = features.ParseJSON(featureJSON)
			case featureList != "":
				feats, err = features.Parse(featureList)
			default:
				err = errors.NewValidationError("features", nil, "--features or --features-json is required")
			}
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			id := kappaml.ModelID(args[0])
			prediction, err := client.Predict(logging.WithModel(cmd.Context(), args[0]), id, feats)
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), map[string]any{
				"model_id":   id.String(),
				"prediction": prediction,
			})
		},
	}

	cmd.Flags().StringVarP(&featureList, "features", "f", "", "Features as key=value pairs separated by commas")
	cmd.Flags().StringVar(&featureJSON, "features-json", "", "Features as a JSON object")
	cmd.MarkFlagsMutuallyExclusive("features", "features-json")

	return cmd
}
