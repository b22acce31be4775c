// cmd/planpick/main.go
//
// Entry point for planpick. It resolves configuration, then hands a Request
// to the app package:
//
//	planpick              open the most recent plan
//	planpick -i           pick a plan interactively
//	planpick path/to.md   open a specific file

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kingrea/planpick/internal/app"
	"github.com/kingrea/planpick/internal/config"
	apperrors "github.com/kingrea/planpick/internal/errors"
	"github.com/kingrea/planpick/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootFlags struct {
	command     string
	interactive bool
	configPath  string
	logFile     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "planpick [path]",
		Short: "Open the most recent plan file",
		Long: `planpick finds markdown plans in ~/.claude/plans and opens the newest one
with the configured command. The file's absolute path is appended to the command.`,
		Args:         cobra.MaximumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}
	cmd.Flags().StringVarP(&flags.command, "command", "c", config.DefaultCommand, "Command to open the file (receives absolute path as argument)")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Interactive mode: list files with fuzzy selection")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/planpick/config.yaml)")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Append diagnostic logs to this file")
	return cmd
}

func run(cmd *cobra.Command, flags *rootFlags, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("command") {
		cfg.Command = flags.command
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = flags.logFile
	}

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		return apperrors.IO(err, "open log file")
	}
	defer logger.Close()

	req := app.Request{Interactive: flags.interactive}
	if len(args) == 1 {
		req.Path = args[0]
	}

	// The picker handles ctrl+c itself while it runs; this context covers a
	// SIGTERM delivered during the session.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	return app.New(cfg, app.WithLogger(logger)).Run(ctx, req)
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, apperrors.ConfigurationWithCause(err, "failed to determine home directory")
	}
	if flags.configPath != "" {
		return config.Load(home, flags.configPath, true)
	}
	return config.Load(home, config.DefaultPath(home, os.Getenv("XDG_CONFIG_HOME")), false)
}
