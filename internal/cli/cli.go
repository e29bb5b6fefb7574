package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vk/tmpltbank/internal/app"
)

// EnvPrefix is the prefix of environment variables that stand in for flags,
// e.g. TMPLTBANK_OUTPUT_DIR for --output-dir.
const EnvPrefix = "TMPLTBANK"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const long = `tmpltbank - plans the template bank stage of an analysis workflow.

Reads the workflow configuration (.ini, .yaml, or .hcl; later files override
earlier ones), decides how template banks are obtained, and writes a manifest
of the planned jobs and the banks they produce.`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var (
		cfg *app.Config
		ran bool
	)
	cmd := &cobra.Command{
		Use:           "tmpltbank [flags] [CONFIG...]",
		Short:         "Plan the template bank stage of a workflow",
		Long:          long,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			ran = true
			paths := append(v.GetStringSlice("config"), positional...)
			if len(paths) == 0 {
				slog.Debug("No configuration given, printing usage and exiting.")
				return cmd.Usage()
			}

			c, err := app.NewConfig(app.Config{
				ConfigPaths:  paths,
				SegmentsPath: v.GetString("segments"),
				DatafindPath: v.GetString("datafind"),
				OutputDir:    v.GetString("output-dir"),
				ManifestPath: v.GetString("manifest"),
				Tags:         v.GetStringSlice("tag"),
				LogFormat:    v.GetString("log-format"),
				LogLevel:     v.GetString("log-level"),
			})
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			cfg = c
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringSliceP("config", "c", nil, "Configuration file or HCL directory. Repeatable.")
	flags.String("segments", "", "YAML file of science segments per instrument. Defaults to the whole analysis span.")
	flags.String("datafind", "", "YAML file of data-availability artifacts.")
	flags.StringP("output-dir", "o", "", "Directory the planned banks are written to.")
	flags.StringP("manifest", "m", "-", "Where to write the manifest; '-' is standard output.")
	flags.StringSliceP("tag", "t", nil, "Tag selecting [section-TAG] overrides. Repeatable.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	if err := v.BindPFlags(flags); err != nil {
		return nil, false, err
	}

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran || cfg == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
