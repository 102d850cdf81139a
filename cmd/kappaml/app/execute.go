package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kappaml/kappaml-go/cmd/kappaml/cmd/learn"
	"github.com/kappaml/kappaml-go/cmd/kappaml/cmd/models"
	"github.com/kappaml/kappaml-go/cmd/kappaml/cmd/predict"
	"github.com/kappaml/kappaml-go/cmd/kappaml/cmd/version"
	"github.com/kappaml/kappaml-go/internal/cmd/output"
	"github.com/kappaml/kappaml-go/pkg/constants"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

// Execute runs the kappaml CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)

	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "kappaml",
		Short:   "KappaML online machine learning CLI",
		Version: a.version,
		Long: `kappaml manages models hosted on the KappaML platform.

Models learn incrementally from one observation at a time and can be
queried for predictions at any point. The API key is read from --api-key,
the KAPPAML_API_KEY environment variable, a .env file or ~/.kappaml.yaml.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.kappaml.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to a rotating file instead of stderr")
	rootCmd.PersistentFlags().String("api-key", "", "KappaML API key (default is $"+constants.APIKeyEnvVar+")")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL (default is "+constants.DefaultBaseURL+")")

	rootCmd.SetVersionTemplate("kappaml {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		if err := a.config.ReadConfigFile(path); err != nil {
			return err
		}
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)
	if v := mustGetString(cmd, "log-file"); v != "" {
		a.config.LogOutput = v
	}
	if v := mustGetString(cmd, "api-key"); v != "" {
		a.config.APIKey = v
	}
	if v := mustGetString(cmd, "base-url"); v != "" {
		a.config.BaseURL = v
	}

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// registerCommands adds all subcommands to the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(models.NewCommand(a))
	rootCmd.AddCommand(learn.NewCommand(a))
	rootCmd.AddCommand(predict.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
