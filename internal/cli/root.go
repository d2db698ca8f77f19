// Package cli implements the agprobe command tree.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agprobe/agprobe/internal/config"
	"github.com/agprobe/agprobe/internal/logging"
	"github.com/agprobe/agprobe/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "agprobe",
	Short: "agprobe - query a running Antigravity/Windsurf IDE's language server",
	Long: `Discover the local language server of a running Antigravity or Windsurf
IDE and query it without any extension API.

The HTTPS port is parsed from the application's log file; the CSRF token
the server requires is extracted by scanning the readable memory of the
running process. Nothing is written to the target and nothing discovered
is persisted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var logLevelFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newDiscoverCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// setup loads configuration and builds the root logger, honoring the
// --log-level flag over config and environment.
func setup() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	return cfg, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("agprobe version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
