package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pypulse/pypulse/internal/cmd"
	"github.com/pypulse/pypulse/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

func Execute() error {
	logger, err := configureLogger()
	if err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}

	rootCmd, err := NewRootCmd(logger)
	if err != nil {
		return fmt.Errorf("error creating root command: %w", err)
	}

	return rootCmd.Execute()
}

func NewRootCmd(logger hclog.Logger) (*cobra.Command, error) {
	baseCmd := &cmd.BaseCmd{}
	baseCmd.SetLogger(logger)

	c := &RootCmd{
		BaseCmd: baseCmd,
	}

	rootCmd := &cobra.Command{
		Use:          "pypulse <command> [args]",
		Short:        "'pypulse' surfaces PyPI package metadata and maintenance scores, as a CLI and an MCP server.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	daemonCmd, err := NewDaemonCmd(baseCmd)
	if err != nil {
		return nil, err
	}
	searchCmd, err := NewSearchCmd(baseCmd)
	if err != nil {
		return nil, err
	}
	infoCmd, err := NewInfoCmd(baseCmd)
	if err != nil {
		return nil, err
	}

	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'pypulse' CLI searches the PyPI registry, reports package metadata and
derives maintenance scores from release history. The daemon command exposes the
same capabilities as MCP tools over stdio, with an optional HTTP API.`
}

func configureLogger() (hclog.Logger, error) {
	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If PYPULSE_LOG_PATH is not set, don't log anywhere.
	// Stdout is reserved for the MCP protocol and command output.
	logOutput := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "pypulse",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func getLogLevel() string {
	lvl := strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return "info"
	}
}
