// Package cli implements the olapq command line client for Tesseract OLAP
// servers: schema exploration, member listings and ad hoc data queries.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datawheel/olap-client-go/pkg/config"
	"github.com/datawheel/olap-client-go/pkg/tesseract"
	"github.com/datawheel/olap-client-go/pkg/transport"
)

// Version is set at build time via ldflags.
var Version = "dev"

// app carries the resolved configuration and the server client shared by
// every subcommand.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	server *tesseract.Server
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		serverURL  string
		locale     string
		verbose    bool
	)
	shared := &app{}

	rootCmd := &cobra.Command{
		Use:           "olapq",
		Short:         "Query Tesseract OLAP servers from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Flags beat environment variables, which beat the config file.
			cfg, err := config.Load(configPath)
			if err != nil && serverURL == "" {
				return err
			}
			if cfg == nil {
				cfg = &config.Config{}
			}
			if serverURL != "" {
				cfg.Server.URL = serverURL
			}
			if locale != "" {
				cfg.Server.Locale = locale
			}
			if cfg.Server.Dialect == "" {
				cfg.Server.Dialect = config.DialectTesseract
			}
			if cfg.Server.TimeoutSeconds <= 0 {
				cfg.Server.TimeoutSeconds = 30
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Server.Dialect != config.DialectTesseract {
				return fmt.Errorf("dialect %q has no schema endpoint, only %q servers can be browsed",
					cfg.Server.Dialect, config.DialectTesseract)
			}

			logger := zap.NewNop()
			if verbose {
				if logger, err = zap.NewDevelopment(); err != nil {
					return fmt.Errorf("failed to create logger: %w", err)
				}
			}

			shared.cfg = cfg
			shared.logger = logger
			shared.server = tesseract.NewServer(cfg.Server.URL, logger,
				transport.WithTimeout(cfg.Timeout()),
				transport.WithRetry(cfg.RetryPolicy()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "base URL of the OLAP server (overrides config)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "locale for localized labels (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	rootCmd.AddCommand(newCubesCmd(shared))
	rootCmd.AddCommand(newDescribeCmd(shared))
	rootCmd.AddCommand(newMembersCmd(shared))
	rootCmd.AddCommand(newQueryCmd(shared))
	return rootCmd
}
