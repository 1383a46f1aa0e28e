package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pypulse/pypulse/internal/cmd"
	cmdopts "github.com/pypulse/pypulse/internal/cmd/options"
	"github.com/pypulse/pypulse/internal/cmd/output"
	"github.com/pypulse/pypulse/internal/packages"
	"github.com/pypulse/pypulse/internal/printer"
	"github.com/pypulse/pypulse/internal/registry"
	"github.com/pypulse/pypulse/internal/registry/options"
)

// InfoCmd should be used to represent the 'info' command.
type InfoCmd struct {
	*cmd.BaseCmd
	Version         string
	Format          cmd.OutputFormat
	registryBuilder registry.Builder
}

// NewInfoCmd creates a newly configured (Cobra) command.
func NewInfoCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InfoCmd{
		BaseCmd:         baseCmd,
		Format:          cmd.FormatText,
		registryBuilder: opts.RegistryBuilder,
	}

	allowedFormats := cmd.AllowedOutputFormats()

	cobraCommand := &cobra.Command{
		Use:   "info <package-name>",
		Short: "Shows PyPI package metadata and its maintenance score",
		Long: "Shows metadata for a PyPI package, including its release history and a " +
			"maintenance score derived from release recency and frequency.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Version,
		"version",
		"",
		"Optional, specify the exact version of the package to report",
	)

	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Output format, one of: %s", allowedFormats.String()),
	)

	return cobraCommand, nil
}

// formatHandler returns the output handler for the configured format.
func (c *InfoCmd) formatHandler(w io.Writer) (output.Handler[packages.Detail], error) {
	switch c.Format {
	case cmd.FormatJSON:
		return output.NewJSONHandler[packages.Detail](w, 2), nil
	case cmd.FormatYAML:
		return output.NewYAMLHandler[packages.Detail](w, 2), nil
	case cmd.FormatText:
		return output.NewTextHandler[packages.Detail](w, &printer.DetailPrinter{}), nil
	default:
		return nil, fmt.Errorf("no handler for output format: %s", c.Format)
	}
}

// run is configured (via NewInfoCmd) to be called by the Cobra framework when the command is executed.
func (c *InfoCmd) run(cobraCmd *cobra.Command, args []string) error {
	handler, err := c.formatHandler(cobraCmd.OutOrStdout())
	if err != nil {
		return err
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return handler.HandleError(fmt.Errorf("package name is required and cannot be empty"))
	}
	name := strings.TrimSpace(args[0])

	reg, err := c.registryBuilder.Build()
	if err != nil {
		return handler.HandleError(err)
	}

	var opts []options.ResolveOption
	if strings.TrimSpace(c.Version) != "" {
		opts = append(opts, options.WithResolveVersion(c.Version))
	}

	detail, err := reg.Resolve(cobraCmd.Context(), name, opts...)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(detail)
}
