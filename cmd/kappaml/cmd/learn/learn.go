// Package learn provides the command that feeds observations to a model.
package learn

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/internal/cmd/features"
	"github.com/kappaml/kappaml-go/internal/cmd/output"
	"github.com/kappaml/kappaml-go/pkg/errors"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

// AppContext defines the interface that the learn command needs from the app.
type AppContext interface {
	Client() (kappaml.Client, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the learn command.
func NewCommand(app AppContext) *cobra.Command {
	var (
		featureList string
		featureJSON string
		target      string
	)

	cmd := &cobra.Command{
		Use:     "learn MODEL_ID",
		GroupID: "core",
		Short:   "Send one labelled observation to a model",
		Long: `Learn updates a model incrementally with one observation.

Features are given as comma-separated key=value pairs or as a JSON object.
Values that look like numbers or booleans are sent as such; everything else
is sent as a string. The target follows the same rule.`,
		Args: cobra.ExactArgs(1),
		Example: `  kappaml learn 3f2a... --features x1=1.5,x2=3 --target 4.2
  kappaml learn 3f2a... --features-json '{"city":"paris"}' --target yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("target") {
				return errors.NewValidationError("target", nil, "--target is required")
			}
			feats, err := parseFeatures(featureList, featureJSON)
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			ctx := logging.WithModel(cmd.Context(), args[0])
			result, err := client.Learn(ctx, kappaml.ModelID(args[0]), feats, features.ParseValue(target))
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Debug().Int("features", len(feats)).Msg("Observation sent")

			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), result)
		},
	}

	cmd.Flags().StringVarP(&featureList, "features", "f", "", "Features as key=value pairs separated by commas")
	cmd.Flags().StringVar(&featureJSON, "features-json", "", "Features as a JSON object")
	cmd.Flags().StringVar(&target, "target", "", "Target value (number or label)")
	cmd.MarkFlagsMutuallyExclusive("features", "features-json")

	return cmd
}

// parseFeatures reads exactly one of the two feature flags.
func parseFeatures(list, raw string) (kappaml.Features, error) {
	switch {
	case raw != "":
		return features.ParseJSON(raw)
	case list != "":
		return features.Parse(list)
	default:
		return nil, errors.NewValidationError("features", nil, "--features or --features-json is required")
	}
}
