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

// SearchCmd should be used to represent the 'search' command.
type SearchCmd struct {
	*cmd.BaseCmd
	Limit           int
	Format          cmd.OutputFormat
	registryBuilder registry.Builder
}

// NewSearchCmd creates a newly configured (Cobra) command.
func NewSearchCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &SearchCmd{
		BaseCmd:         baseCmd,
		Format:          cmd.FormatText,
		registryBuilder: opts.RegistryBuilder,
	}

	allowedFormats := cmd.AllowedOutputFormats()

	cobraCommand := &cobra.Command{
		Use:   "search <query>",
		Short: "Searches the PyPI registry for matching packages",
		Long: "Searches the PyPI registry for packages whose names are similar to the query, " +
			"returning results ordered by descending similarity.",
		RunE: c.run,
	}

	cobraCommand.Flags().IntVar(
		&c.Limit,
		"limit",
		options.DefaultSearchLimit,
		fmt.Sprintf("Maximum number of results to return (1-%d)", options.MaxSearchLimit),
	)

	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Output format, one of: %s", allowedFormats.String()),
	)

	return cobraCommand, nil
}

// formatHandler returns the output handler for the configured format.
func (c *SearchCmd) formatHandler(w io.Writer) (output.Handler[packages.Package], error) {
	switch c.Format {
	case cmd.FormatJSON:
		return output.NewJSONHandler[packages.Package](w, 2), nil
	case cmd.FormatYAML:
		return output.NewYAMLHandler[packages.Package](w, 2), nil
	case cmd.FormatText:
		return output.NewTextHandler[packages.Package](w, printer.NewPackageResultsPrinter(&printer.PackagePrinter{})), nil
	default:
		return nil, fmt.Errorf("no handler for output format: %s", c.Format)
	}
}

// run is configured (via NewSearchCmd) to be called by the Cobra framework when the command is executed.
func (c *SearchCmd) run(cobraCmd *cobra.Command, args []string) error {
	handler, err := c.formatHandler(cobraCmd.OutOrStdout())
	if err != nil {
		return err
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return handler.HandleError(fmt.Errorf("query is required and cannot be empty"))
	}
	query := strings.TrimSpace(args[0])

	reg, err := c.registryBuilder.Build()
	if err != nil {
		return handler.HandleError(err)
	}

	results, err := reg.Search(cobraCmd.Context(), query, options.WithSearchLimit(c.Limit))
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(results...)
}
